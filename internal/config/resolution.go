package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dkoosis/leftright/pkg/render"
	"github.com/dkoosis/leftright/pkg/stream"
)

// Sources recorded in ResolvedConfig.
const (
	SourceCLI     = "cli"
	SourceEnv     = "env"
	SourceFile    = "file"
	SourceDefault = "default"
)

// ResolvedConfig holds the final resolved configuration after applying all priority rules.
type ResolvedConfig struct {
	ThemeName string
	NoColor   bool
	Width     int // 0 means probe the terminal
	Group     stream.Group
	Classes   []string
	Debug     bool

	// Resolution metadata (for debugging)
	ConfigPath    string
	ThemeSource   string
	NoColorSource string
	WidthSource   string
	GroupSource   string
	DebugSource   string
}

// ResolveConfig resolves configuration from all sources with explicit priority order:
// CLI flags, then environment, then the config file, then defaults.
func ResolveConfig(cliFlags CliFlags) (*ResolvedConfig, error) {
	appCfg, path, err := LoadConfig(cliFlags.ConfigPath)
	if err != nil {
		return nil, err
	}
	fileSource := SourceDefault
	if path != "" {
		fileSource = SourceFile
	}

	resolved := &ResolvedConfig{
		ThemeName:     appCfg.Theme,
		NoColor:       appCfg.NoColor,
		Width:         appCfg.Width,
		Classes:       appCfg.Classes,
		Debug:         appCfg.Debug,
		ConfigPath:    path,
		ThemeSource:   fileSource,
		NoColorSource: fileSource,
		WidthSource:   fileSource,
		GroupSource:   fileSource,
		DebugSource:   fileSource,
	}
	groupName := appCfg.Group

	// Theme: CLI > ENV > file > default
	if cliFlags.ThemeName != "" {
		resolved.ThemeName = cliFlags.ThemeName
		resolved.ThemeSource = SourceCLI
	} else if env := os.Getenv("LEFTRIGHT_THEME"); env != "" {
		resolved.ThemeName = env
		resolved.ThemeSource = SourceEnv
	}

	// NoColor: CLI > ENV > file > default
	if cliFlags.NoColorSet {
		resolved.NoColor = cliFlags.NoColor
		resolved.NoColorSource = SourceCLI
	} else if envNoColor := getEnvBool("LEFTRIGHT_NO_COLOR", "NO_COLOR"); envNoColor != nil {
		resolved.NoColor = *envNoColor
		resolved.NoColorSource = SourceEnv
	}

	// Width: CLI > ENV > file > default
	if cliFlags.WidthSet {
		resolved.Width = cliFlags.Width
		resolved.WidthSource = SourceCLI
	} else if env := os.Getenv("LEFTRIGHT_WIDTH"); env != "" {
		w, err := strconv.Atoi(strings.TrimSpace(env))
		if err != nil {
			return nil, fmt.Errorf("invalid LEFTRIGHT_WIDTH %q: %w", env, err)
		}
		resolved.Width = w
		resolved.WidthSource = SourceEnv
	}

	// Group: CLI > file > default
	if cliFlags.GroupSet {
		groupName = cliFlags.Group
		resolved.GroupSource = SourceCLI
	}
	if resolved.Group, err = stream.ParseGroup(groupName); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Classes: CLI > file
	if len(cliFlags.Classes) > 0 {
		resolved.Classes = cliFlags.Classes
	}

	// Debug: CLI > ENV > file > default
	if cliFlags.DebugSet {
		resolved.Debug = cliFlags.Debug
		resolved.DebugSource = SourceCLI
	} else if os.Getenv("LEFTRIGHT_DEBUG") != "" {
		resolved.Debug = true
		resolved.DebugSource = SourceEnv
	}

	if err := validateResolvedConfig(resolved); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return resolved, nil
}

// getEnvBool reads a boolean from environment variables, trying multiple keys.
// Returns nil if none are set, or a pointer to the boolean value.
func getEnvBool(keys ...string) *bool {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			if b, err := strconv.ParseBool(val); err == nil {
				return &b
			}
		}
	}
	return nil
}

// validateResolvedConfig validates the resolved configuration and returns errors for invalid states.
func validateResolvedConfig(cfg *ResolvedConfig) error {
	if err := render.ValidateTheme(cfg.ThemeName); err != nil {
		return err
	}
	if cfg.Width < 0 {
		return fmt.Errorf("width must not be negative, got: %d", cfg.Width)
	}
	return nil
}
