package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file.
const FileName = ".tally.yaml"

// Constants for default values.
const (
	DefaultTagScope      = "global"
	DefaultOnSourceError = "abort"
	DefaultFormat        = "auto"
	DefaultTheme         = "default"
	DefaultOutputDir     = ""
	DefaultWorkers       = 4
	DefaultLogLevel      = "info"
)

// FileConfig is the content of .tally.yaml. Pointer fields distinguish an
// explicit false or zero from an absent key.
type FileConfig struct {
	TagScope       string `yaml:"tag_scope"`
	OnSourceError  string `yaml:"on_source_error"`
	SkippedFails   *bool  `yaml:"skipped_fails"`
	UndefinedFails *bool  `yaml:"undefined_fails"`
	Format         string `yaml:"format"`
	Theme          string `yaml:"theme"`
	NoColor        *bool  `yaml:"no_color"`
	OutputDir      string `yaml:"output_dir"`
	Workers        *int   `yaml:"workers"`
	LogLevel       string `yaml:"log_level"`
}

// LoadFile reads a config file. An empty path searches the working
// directory, then the user config directory; finding nothing is not an
// error and yields an empty FileConfig with path "".
func LoadFile(path string) (*FileConfig, string, error) {
	explicit := path != ""
	if !explicit {
		path = findConfigPath()
		if path == "" {
			return &FileConfig{}, "", nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return &FileConfig{}, "", nil
		}
		return nil, "", fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, "", fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, path, nil
}

// findConfigPath checks the local directory first, then the XDG config
// directory.
func findConfigPath() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdgPath := filepath.Join(configHome, "tally", FileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}
