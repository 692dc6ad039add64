// Package viewer opens neuroglancer links in a browser.
package viewer

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/janelia-flyem/wintermute/wm"
)

// Launcher starts an external program to show a URL.
type Launcher struct {
	// Command is the program and leading arguments; the URL is appended.
	// If empty, the platform's default URL handler is used.
	Command []string

	// start runs the command without waiting for it.
	start func(cmd *exec.Cmd) error
}

// DefaultCommand returns the program that opens URLs on this platform.
func DefaultCommand() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler"}
	default:
		return []string{"xdg-open"}
	}
}

// Open hands the URL to the viewer and returns once the program has started.
// The program's own outcome is not tracked.
func (l Launcher) Open(url string) error {
	args := l.Command
	if len(args) == 0 {
		args = DefaultCommand()
	}
	argv := append(append([]string{}, args[1:]...), url)
	cmd := exec.Command(args[0], argv...)
	start := l.start
	if start == nil {
		start = startDetached
	}
	if err := start(cmd); err != nil {
		return fmt.Errorf("unable to launch viewer %q: %v", args[0], err)
	}
	wm.Debugf("Launched %s for %d byte URL\n", args[0], len(url))
	return nil
}

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	// reap the child so it does not linger as a zombie
	go cmd.Wait()
	return nil
}
