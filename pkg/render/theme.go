// Package render styles the run summary and maps themes onto the
// two-column palette.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors and icons for terminal rendering.
type Theme struct {
	Name    string
	Passed  lipgloss.Style
	Failed  lipgloss.Style
	Errored lipgloss.Style
	Skipped lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Icons   ThemeIcons
}

// ThemeIcons defines the icon set for a theme.
type ThemeIcons struct {
	Pass  string
	Fail  string
	Empty string
}

// DefaultTheme returns a vibrant color theme.
func DefaultTheme() Theme {
	return Theme{
		Name:    "default",
		Passed:  lipgloss.NewStyle().Foreground(lipgloss.Color("34")),  // green
		Failed:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // red
		Errored: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // orange
		Skipped: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),  // blue
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("242")), // gray
		Bold:    lipgloss.NewStyle().Bold(true),
		Icons:   ThemeIcons{Pass: "✓", Fail: "✗", Empty: "○"},
	}
}

// OrcaTheme returns a muted, professional theme.
func OrcaTheme() Theme {
	return Theme{
		Name:    "orca",
		Passed:  lipgloss.NewStyle().Foreground(lipgloss.Color("108")), // sage green
		Failed:  lipgloss.NewStyle().Foreground(lipgloss.Color("167")), // muted red
		Errored: lipgloss.NewStyle().Foreground(lipgloss.Color("179")), // muted gold
		Skipped: lipgloss.NewStyle().Foreground(lipgloss.Color("75")),  // pale blue
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")), // lighter gray
		Bold:    lipgloss.NewStyle().Bold(true),
		Icons:   ThemeIcons{Pass: "✓", Fail: "✗", Empty: "·"},
	}
}

// MonoTheme returns a monochrome theme (no colors).
func MonoTheme() Theme {
	return Theme{
		Name:    "mono",
		Passed:  lipgloss.NewStyle(),
		Failed:  lipgloss.NewStyle(),
		Errored: lipgloss.NewStyle(),
		Skipped: lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle(),
		Bold:    lipgloss.NewStyle().Bold(true),
		Icons:   ThemeIcons{Pass: "+", Fail: "x", Empty: "-"},
	}
}

// ThemeNames lists the themes ThemeByName knows.
var ThemeNames = []string{"default", "orca", "mono"}

// ThemeByName returns a theme by name, defaulting to DefaultTheme.
func ThemeByName(name string) Theme {
	switch name {
	case "orca":
		return OrcaTheme()
	case "mono":
		return MonoTheme()
	default:
		return DefaultTheme()
	}
}

// ValidateTheme reports an error for names ThemeByName would not recognize.
func ValidateTheme(name string) error {
	for _, n := range ThemeNames {
		if n == name {
			return nil
		}
	}
	return fmt.Errorf("unknown theme %q (want one of %s)", name, strings.Join(ThemeNames, ", "))
}
