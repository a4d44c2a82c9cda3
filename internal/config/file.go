package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk YAML shape. Zero values mean "keep the
// default".
type fileConfig struct {
	Theme        string              `yaml:"theme"`
	HighContrast bool                `yaml:"high_contrast"`
	GutterWidth  int                 `yaml:"gutter_width"`
	TabSize      int                 `yaml:"tab_size"`
	Keybindings  map[string][]string `yaml:"keybindings"`
	LogFile      string              `yaml:"log_file"`
	LogLevel     string              `yaml:"log_level"`
}

// DefaultPath returns the user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gblame", "config.yaml")
}

// Load reads the config file at path, falling back to DefaultPath when
// path is empty. A missing file yields the defaults; a present but
// unreadable or invalid file is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = DefaultPath()
	}

	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.Theme != "" {
		cfg.ThemePreset = ThemePreset(fc.Theme)
	}
	cfg.HighContrast = fc.HighContrast
	cfg.Theme = ThemeForPreset(cfg.ThemePreset, cfg.HighContrast)
	if fc.GutterWidth > 0 {
		cfg.GutterWidth = fc.GutterWidth
	}
	if fc.TabSize > 0 {
		cfg.TabSize = fc.TabSize
	}
	if len(fc.Keybindings) > 0 {
		cfg.Keybindings = MergeKeybindings(fc.Keybindings)
	}
	if fc.LogFile != "" {
		cfg.LogFile = fc.LogFile
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	return cfg, nil
}
