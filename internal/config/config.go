package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CliFlags holds the values of command-line flags.
type CliFlags struct {
	ConfigPath string
	ThemeName  string
	NoColor    bool
	Width      int
	Group      string
	Classes    []string
	Debug      bool

	// Flags to track if they were explicitly set by the user
	NoColorSet bool
	WidthSet   bool
	GroupSet   bool
	DebugSet   bool
}

// AppConfig represents the contents of .leftright.yaml.
type AppConfig struct {
	Theme   string   `yaml:"theme"`
	NoColor bool     `yaml:"no_color"`
	Width   int      `yaml:"width"`
	Group   string   `yaml:"group"`
	Classes []string `yaml:"classes"`
	Debug   bool     `yaml:"debug"`
}

// Constants for default values.
const (
	ConfigFileName = ".leftright.yaml"
	DefaultTheme   = "default"
	DefaultGroup   = "package"
)

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Theme: DefaultTheme,
		Group: DefaultGroup,
	}
}

// LoadConfig reads the config file at path, or searches for one when path
// is empty. It returns the path actually read, "" when none was found.
// A missing file is only an error when path was given explicitly.
func LoadConfig(path string) (*AppConfig, string, error) {
	appCfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = getConfigPath()
		if path == "" {
			return appCfg, "", nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return appCfg, "", nil
		}
		return nil, "", fmt.Errorf("reading config file: %w", err)
	}

	var fileCfg AppConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fileCfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, "", fmt.Errorf("parsing config file %s: %w", path, err)
	}

	// Merge YAML settings onto the defaults
	if fileCfg.Theme != "" {
		appCfg.Theme = fileCfg.Theme
	}
	if fileCfg.Group != "" {
		appCfg.Group = fileCfg.Group
	}
	appCfg.NoColor = fileCfg.NoColor
	appCfg.Width = fileCfg.Width
	appCfg.Classes = fileCfg.Classes
	appCfg.Debug = fileCfg.Debug

	return appCfg, path, nil
}

// getConfigPath tries to find the .leftright.yaml configuration file.
// It checks the working directory first, then the user config directory.
func getConfigPath() string {
	if _, err := os.Stat(ConfigFileName); err == nil {
		return ConfigFileName
	}

	configHome, err := os.UserConfigDir()
	// An empty or root config dir is not usable here.
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdgPath := filepath.Join(configHome, "leftright", ConfigFileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}
