package leftright

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Renderer produces the column fragments for one run. It owns no output:
// every method returns the text to print.
type Renderer struct {
	state       *RunState
	geo         *Geometry
	palette     Palette
	interactive bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithPalette sets the escape sequences used for color and bold.
func WithPalette(p Palette) Option {
	return func(r *Renderer) { r.palette = p }
}

// WithInteractive tells the renderer whether output goes to a terminal.
// When it does not, dots are plain and text is not wrapped.
func WithInteractive(tty bool) Option {
	return func(r *Renderer) { r.interactive = tty }
}

// NewRenderer creates a renderer around state and geo. It defaults to ANSI
// colors on an interactive terminal.
func NewRenderer(state *RunState, geo *Geometry, opts ...Option) *Renderer {
	r := &Renderer{
		state:       state,
		geo:         geo,
		palette:     ANSIPalette{},
		interactive: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the run state the renderer reads and updates.
func (r *Renderer) State() *RunState { return r.state }

// Geometry returns the column geometry.
func (r *Renderer) Geometry() *Geometry { return r.geo }

// Palette returns the palette in use.
func (r *Renderer) Palette() Palette { return r.palette }

// Interactive reports whether output is treated as a terminal.
func (r *Renderer) Interactive() bool { return r.interactive }

// JustifyLeft right-justifies s into the left column and appends the
// separator. Text wider than the column is kept whole.
func (r *Renderer) JustifyLeft(s string) string {
	return lipgloss.PlaceHorizontal(r.geo.LeftSideWidth(), lipgloss.Right, s) +
		strings.Repeat(" ", MidSeparator)
}

// LeftColumn returns the justified name of c, or "" when c is the class
// last written to the left column.
func (r *Renderer) LeftColumn(c Class) string {
	if c.Name == r.state.LastPrintedClass {
		return ""
	}
	r.state.LastPrintedClass = c.Name
	return r.JustifyLeft(FormatClassName(c.Name))
}

// messageWidth is the width failure text is wrapped to; 0 disables wrapping.
func (r *Renderer) messageWidth() int {
	if !r.interactive {
		return 0
	}
	return r.geo.RightSideWidth() - MidSeparator - RightMargin
}

// F formats the current fault in color; failures use Red.
func (r *Renderer) F(c Color) string {
	if r.state.Fault == nil {
		return ""
	}
	className := ""
	if r.state.Class != nil {
		className = r.state.Class.Name
	}
	return FormatFault(r.state.Fault.LongDisplay(), className, r.messageWidth(), r.palette, c)
}

// E formats the current fault as an error.
func (r *Renderer) E() string {
	return r.F(Yellow)
}

// MarkSkipped records a skipped test.
func (r *Renderer) MarkSkipped() {
	r.state.MarkSkipped()
}
