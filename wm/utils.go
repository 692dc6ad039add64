package wm

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/blang/semver"
)

// Version is the semantic version of this wintermute release.
var Version = semver.MustParse("0.3.0")

// ConvertToAbsolute returns an absolute path for 'path', interpreting relative
// paths as relative to 'baseDir'.  An empty path stays empty.
func ConvertToAbsolute(path, baseDir string) (string, error) {
	if path == "" || filepath.IsAbs(path) {
		return path, nil
	}
	abs, err := filepath.Abs(filepath.Join(baseDir, path))
	if err != nil {
		return "", fmt.Errorf("unable to make %q absolute: %v", path, err)
	}
	return abs, nil
}

// FileExists returns true if the path names an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
