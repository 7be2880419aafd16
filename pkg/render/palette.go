package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/leftright/pkg/leftright"
)

const (
	sentinel = "\x00"
	sgrReset = "\x1b[0m"
)

// Palette carries a theme's colors into the two-column display: failures
// use the theme's Failed style, errors Errored, dots Passed.
type Palette struct {
	starts map[leftright.Color]string
	bold   string
	reset  string
}

var _ leftright.Palette = Palette{}

// NewPalette extracts the opening escape sequences of t's styles. Styles
// that render without escapes, as on a terminal lipgloss cannot color,
// yield empty strings.
func NewPalette(t Theme) Palette {
	p := Palette{
		starts: map[leftright.Color]string{
			leftright.Red:    opening(t.Failed),
			leftright.Green:  opening(t.Passed),
			leftright.Yellow: opening(t.Errored),
		},
		bold: opening(t.Bold),
	}
	if p.bold != "" {
		p.reset = sgrReset
	}
	for _, s := range p.starts {
		if s != "" {
			p.reset = sgrReset
		}
	}
	return p
}

func opening(s lipgloss.Style) string {
	prefix, _, _ := strings.Cut(s.Render(sentinel), sentinel)
	return prefix
}

func (p Palette) Start(c leftright.Color) string { return p.starts[c] }
func (p Palette) Bold() string { return p.bold }
func (p Palette) Reset() string { return p.reset }
