package leftright

import (
	"errors"
	"os"
	"strconv"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Class is a test class as seen by the renderer: a display name and the
// names of its test methods. The renderer never mutates it.
type Class struct {
	Name    string
	Methods []string
}

// WidthProbe reports the terminal width in columns.
type WidthProbe func() (int, error)

var errNoWidth = errors.New("terminal width unavailable")

// FileProbe queries the terminal size of an open file descriptor.
func FileProbe(f *os.File) WidthProbe {
	return func() (int, error) {
		if f == nil {
			return 0, errNoWidth
		}
		w, _, err := term.GetSize(int(f.Fd()))
		return w, err
	}
}

// ControllingTTYProbe asks the controlling terminal directly. It still
// works when stdout is redirected but the process has a terminal.
func ControllingTTYProbe() WidthProbe {
	return func() (int, error) {
		tty, err := os.Open("/dev/tty")
		if err != nil {
			return 0, err
		}
		defer tty.Close()
		w, _, err := term.GetSize(int(tty.Fd()))
		return w, err
	}
}

// EnvProbe reads a column count from an environment variable such as COLUMNS.
func EnvProbe(name string) WidthProbe {
	return func() (int, error) {
		v := os.Getenv(name)
		if v == "" {
			return 0, errNoWidth
		}
		return strconv.Atoi(v)
	}
}

// FixedWidth always reports w.
func FixedWidth(w int) WidthProbe {
	return func() (int, error) { return w, nil }
}

// DefaultProbes returns the probe chain used for out: the direct query on
// out, then the controlling terminal, then $COLUMNS.
func DefaultProbes(out *os.File) []WidthProbe {
	return []WidthProbe{FileProbe(out), ControllingTTYProbe(), EnvProbe("COLUMNS")}
}

// Geometry resolves the terminal width and the two column widths derived
// from it. Both the terminal width and the left width are computed once and
// then cached; a resize during a run is not picked up.
type Geometry struct {
	probes  []WidthProbe
	classes []Class

	width         int
	widthResolved bool
	left          int
	leftResolved  bool
}

// NewGeometry creates a resolver that tries probes in order.
func NewGeometry(probes ...WidthProbe) *Geometry {
	return &Geometry{probes: probes}
}

// Register adds classes to the set the left column is sized for. It must
// happen before the first LeftSideWidth call; later registrations do not
// change the cached width.
func (g *Geometry) Register(classes ...Class) {
	g.classes = append(g.classes, classes...)
}

// Classes returns the registered classes.
func (g *Geometry) Classes() []Class {
	return g.classes
}

// TerminalWidth returns the first positive width reported by a probe, or 0
// when none succeeds.
func (g *Geometry) TerminalWidth() int {
	if g.widthResolved {
		return g.width
	}
	g.widthResolved = true
	for _, probe := range g.probes {
		if probe == nil {
			continue
		}
		if w, err := probe(); err == nil && w > 0 {
			g.width = w
			break
		}
	}
	return g.width
}

// LeftSideWidth is the widest formatted class name plus LeftMargin.
func (g *Geometry) LeftSideWidth() int {
	if g.leftResolved {
		return g.left
	}
	g.leftResolved = true
	for _, c := range g.classes {
		if w := runewidth.StringWidth(FormatClassName(c.Name)) + LeftMargin; w > g.left {
			g.left = w
		}
	}
	return g.left
}

// RightSideWidth is what the terminal leaves after the left column. It is
// negative when the terminal is narrower than the longest class name.
func (g *Geometry) RightSideWidth() int {
	return g.TerminalWidth() - g.LeftSideWidth()
}
