// Package leftright renders test progress as two terminal columns.
//
// The left column names the test class under execution; the right column
// carries progress dots for passing tests and wrapped, highlighted text for
// failures and errors:
//
//	 Parser ..............................
//	        ..........
//	  Lexer Tokenize [lexer_test.go:41]:
//	        expected "ident", got "number"
//	        ....
//
// Callers register every class with a Geometry before rendering starts, build
// a Renderer around a fresh RunState, and drive it (usually through a
// Reporter) once per test in execution order. The Reporter tracks whether the
// current output row is open itself; RunState.PreviousFailed only reports how
// the last test ended.
package leftright

// Column spacing, in cells.
const (
	MidSeparator = 1
	RightMargin  = 1
	LeftMargin   = 1
)
