// Command-line interface for querying a synapse table and building neuroglancer links.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/janelia-flyem/wintermute/config"
	"github.com/janelia-flyem/wintermute/viewer"
	"github.com/janelia-flyem/wintermute/wm"
)

var (
	// Display usage if true.
	showHelp = flag.Bool("help", false, "")

	// Run in verbose mode if true.
	runVerbose = flag.Bool("verbose", false, "")

	// TOML configuration file.
	configFile = flag.String("config", "", "")

	// Table locations override the configuration.
	edgeFile = flag.String("edges", "", "")
	cellFile = flag.String("cells", "", "")

	// URL prefix overrides the configuration.
	urlPrefix = flag.String("prefix", "", "")
)

const helpMessage = `
wintermute finds synaptic partners of cells and builds neuroglancer links to them

Usage: wintermute [options] <command>

      -config     =string   TOML configuration file.
      -edges      =string   Synapse edge table (csv, tsv, optionally .gz or .zst).
      -cells      =string   Cell table with cell_id and cell_type columns.
      -prefix     =string   Viewer URL prefix.
      -verbose    (flag)    Run in verbose mode.
  -h, -help       (flag)    Show help message

Commands:

	about
	help
	stats
	neighbors <cell id> [mode=all|in|out] [type=E|I]
	synapses  <pre id> <post id>
	url       <cell id> [mode=all|in|out] [type=E|I] [at=x,y,z] [open=true]
	goto      <pre id> <post id> [index=0 | near=x,y,z] [open=true]
	decode    <url> [prefix=...]
	encode    [prefix=...]       (reads a viewer record from standard input)

"url" selects the cell and its neighbors in the configured base view.
"goto" selects both cells and centers the view on one of their synapses, picked by
its position in the edge table or as the one closest to a point.
`

var usage = func() {
	fmt.Print(helpMessage)
}

func main() {
	flag.BoolVar(showHelp, "h", false, "Show help message")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() >= 1 && strings.ToLower(flag.Args()[0]) == "help" {
		*showHelp = true
	}
	if *showHelp || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}
	if *runVerbose {
		wm.SetLogMode(wm.DebugMode)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	cfg.Logging.SetLogger()
	defer wm.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := &session{
		cfg:      cfg,
		out:      os.Stdout,
		in:       os.Stdin,
		launcher: viewer.Launcher{Command: cfg.Viewer.Command},
	}
	if err := s.DoCommand(ctx, wm.Command(flag.Args())); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		wm.Shutdown()
		os.Exit(1)
	}
}

// loadConfig reads the optional TOML file and applies command-line overrides.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			return cfg, err
		}
	}
	if *edgeFile != "" {
		cfg.Data.Edges = *edgeFile
	}
	if *cellFile != "" {
		cfg.Data.Cells = *cellFile
	}
	if *urlPrefix != "" {
		cfg.Viewer.Prefix = *urlPrefix
	}
	return cfg, nil
}

// session carries the configuration and lazily loaded tables for one command.
type session struct {
	cfg      config.Config
	out      io.Writer
	in       io.Reader
	launcher viewer.Launcher
}
