// Package config reads the wintermute TOML configuration.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/janelia-flyem/wintermute/ngurl"
	"github.com/janelia-flyem/wintermute/wm"
)

// DefaultBaseURL is a pinky40 view used when no base URL is configured.  Its view and
// zoom settings are reused for every generated link.
const DefaultBaseURL = "https://neuroglancer-demo.appspot.com/#!{'layers':{'image':{'type':'image'_'source':'precomputed://gs://neuroglancer/pinky40_v11/image'}_'segmentation':{'type':'segmentation'_'source':'precomputed://gs://neuroglancer/pinky40_v11/watershed_mst_trimmed_sem_remap'_'selectedAlpha':0.24_'segments':['131506448'_'52089750']}}_'navigation':{'pose':{'position':{'voxelSize':[4_4_40]_'voxelCoordinates':[41382_21986_755]}_'orientation':[0.7071067690849304_0.7071067690849304_0_0]}_'zoomFactor':1.8315638888734185}_'perspectiveOrientation':[-0.12623633444309235_-0.9713204503059387_0.19054898619651794_0.06551143527030945]_'perspectiveZoom':60.653065971263395_'showSlices':false_'layout':'xy-3d'}"

// Config is the parsed TOML configuration.
type Config struct {
	Viewer  ViewerConfig
	Data    DataConfig
	Logging wm.LogConfig
}

// ViewerConfig describes the neuroglancer deployment links are made for.
type ViewerConfig struct {
	Prefix  string
	BaseURL string
	// Command launches a URL, e.g., ["firefox", "--new-tab"].  The URL is appended.
	Command []string
}

// DataConfig locates the input tables.
type DataConfig struct {
	Edges string
	Cells string
}

// Default returns the configuration used without a TOML file.
func Default() Config {
	return Config{
		Viewer: ViewerConfig{
			Prefix:  ngurl.DefaultPrefix,
			BaseURL: DefaultBaseURL,
		},
	}
}

// Load reads a TOML file over the defaults.  Relative paths in [data] and
// [logging] are taken relative to the directory of the TOML file.
func Load(path string) (Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return c, fmt.Errorf("could not decode TOML config %q: %v", path, err)
	}
	for _, key := range md.Undecoded() {
		wm.Warningf("Ignoring unknown setting %q in config %q\n", key.String(), path)
	}
	if err := c.convertPathsToAbsolute(path); err != nil {
		return c, err
	}
	return c, nil
}

// Some settings in the TOML can be given as relative paths.
// This function converts them in-place to absolute paths,
// assuming the given paths were relative to the TOML file's own directory.
func (c *Config) convertPathsToAbsolute(configPath string) error {
	var err error

	configDir := filepath.Dir(configPath)

	// [data].edges
	if c.Data.Edges, err = wm.ConvertToAbsolute(c.Data.Edges, configDir); err != nil {
		return fmt.Errorf("Error converting edges setting to absolute path: %v", err)
	}

	// [data].cells
	if c.Data.Cells, err = wm.ConvertToAbsolute(c.Data.Cells, configDir); err != nil {
		return fmt.Errorf("Error converting cells setting to absolute path: %v", err)
	}

	// [logging].logfile
	if c.Logging.Logfile, err = wm.ConvertToAbsolute(c.Logging.Logfile, configDir); err != nil {
		return fmt.Errorf("Error converting logfile setting to absolute path: %v", err)
	}
	return nil
}

// BaseRecord decodes the configured base URL into the record that generated
// links start from.  The base URL is read with its own prefix, so it may come
// from a different deployment than Viewer.Prefix, which is used only for output.
func (c Config) BaseRecord() (*ngurl.Map, error) {
	prefix, found := ngurl.SplitPrefix(c.Viewer.BaseURL)
	if !found {
		return nil, fmt.Errorf("bad base URL in configuration: no %q before the viewer state", ngurl.StateMarker)
	}
	base, err := ngurl.Decode(c.Viewer.BaseURL, prefix)
	if err != nil {
		return nil, fmt.Errorf("bad base URL in configuration: %w", err)
	}
	return base, nil
}

// Validate checks that the tables needed for queries are configured.
func (c Config) Validate() error {
	if c.Data.Edges == "" {
		return fmt.Errorf("no edge table given; set [data] edges or use -edges")
	}
	if c.Data.Cells == "" {
		return fmt.Errorf("no cell table given; set [data] cells or use -cells")
	}
	for _, path := range []string{c.Data.Edges, c.Data.Cells} {
		if !wm.FileExists(path) {
			return fmt.Errorf("table %q does not exist", path)
		}
	}
	return nil
}
