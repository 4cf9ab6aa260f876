// Package config loads optional defaults for the command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "SEMTIME_CONFIG"

// Config holds flag defaults. Zero values mean "not set".
type Config struct {
	Timezone   string `yaml:"timezone" toml:"timezone"`
	Timestamps string `yaml:"timestamps" toml:"timestamps"`
	Output     string `yaml:"output" toml:"output"`
	Color      string `yaml:"color" toml:"color"`
	Jobs       int    `yaml:"jobs" toml:"jobs"`
}

// names are the file names searched for, in order, by Discover.
var names = []string{"config.yaml", "config.yml", "config.toml"}

// Load reads the config file at path. The format is chosen by extension.
func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("error parsing %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("error parsing %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %q (expected .yaml, .yml or .toml)", ext)
	}

	if cfg.Jobs < 0 {
		return cfg, fmt.Errorf("%s: jobs must be positive, got %d", path, cfg.Jobs)
	}

	return cfg, nil
}

// Discover returns the path of the config file to use: $SEMTIME_CONFIG if
// set, otherwise the first existing file under the user config directory
// (e.g. ~/.config/semtime/config.yaml). It returns "" when there is none.
func Discover() string {
	if path := os.Getenv(EnvPath); path != "" {
		return path
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return find(filepath.Join(dir, "semtime"))
}

func find(dir string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		} else if !errors.Is(err, fs.ErrNotExist) {
			return path // let Load report the problem
		}
	}
	return ""
}
