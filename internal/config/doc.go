// Package config handles configuration loading and merging for leftright.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--no-color, --width, --theme, --group, --class, --debug)
//  2. Environment variables (LEFTRIGHT_NO_COLOR, NO_COLOR, LEFTRIGHT_WIDTH,
//     LEFTRIGHT_THEME, LEFTRIGHT_DEBUG)
//  3. YAML config file (.leftright.yaml in the working directory or
//     ~/.config/leftright/.leftright.yaml, or the file named by --config)
//  4. Hardcoded defaults
//
// When a higher-priority source sets a value, it overrides any lower-priority values.
//
// # Key Configuration Options
//
//   - NoColor: Disables colors in the columns and the summary
//   - Width: Fixes the terminal width instead of probing the terminal
//   - Theme: Selects the summary and column colors (default, orca or mono)
//   - Group: What the left column names, "package" or "test"
//   - Classes: Class names to size the left column for up front, which lets
//     results render as they arrive
//
// # Environment Variables
//
//   - LEFTRIGHT_NO_COLOR or NO_COLOR: Set to "true" or "1" to disable colors
//   - LEFTRIGHT_WIDTH: Terminal width in cells
//   - LEFTRIGHT_THEME: Theme name
//   - LEFTRIGHT_DEBUG: Set to any non-empty value to enable debug output
package config
