package leftright

// Color names a foreground color used by the renderer.
type Color int

const (
	Default Color = iota
	Red
	Green
	Yellow
)

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	default:
		return "default"
	}
}

// Palette turns colors and bold into escape sequences. The message
// formatter and the dot emitter receive one instead of emitting escapes
// themselves.
type Palette interface {
	Start(c Color) string
	Bold() string
	Reset() string
}

// Paint wraps s in c's start sequence and a reset.
func Paint(p Palette, c Color, s string) string {
	return p.Start(c) + s + p.Reset()
}

// ANSIPalette emits SGR escape sequences.
type ANSIPalette struct{}

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
)

func (ANSIPalette) Start(c Color) string {
	switch c {
	case Red:
		return "\033[31m"
	case Green:
		return "\033[32m"
	case Yellow:
		return "\033[33m"
	default:
		return ""
	}
}

func (ANSIPalette) Bold() string  { return ansiBold }
func (ANSIPalette) Reset() string { return ansiReset }

// PlainPalette emits nothing; used for NO_COLOR and redirected output.
type PlainPalette struct{}

func (PlainPalette) Start(Color) string { return "" }
func (PlainPalette) Bold() string       { return "" }
func (PlainPalette) Reset() string      { return "" }
