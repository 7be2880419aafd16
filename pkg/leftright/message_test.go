package leftright

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	red   = "\033[31m"
	bold  = "\033[1m"
	reset = "\033[0m"
)

func TestDropLabelLine(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"failure label", []string{"Failure:", "test_foo(X)"}, []string{"test_foo(X)"}},
		{"error label", []string{"  Error:  ", "boom"}, []string{"boom"}},
		{"no label", []string{"test_foo(X)", "body"}, []string{"test_foo(X)", "body"}},
		{"label with text kept", []string{"Error: connection refused"}, []string{"Error: connection refused"}},
		{"only label", []string{"Failure:"}, []string{}},
		{"empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dropLabelLine(tt.in)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("dropLabelLine mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStripTestPrefix(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"test_foo(X)", "foo(X)"},
		{"TestFoo(X)", "Foo(X)"},
		{"test: should work. :", "should work. :"},
		{"test.bar", "bar"},
		{"TEST_upper", "upper"},
		{"test  spaced", "spaced"},
		{"a test_foo", "a test_foo"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripTestPrefix(tt.in), "input %q", tt.in)
	}
}

func TestStripClassName(t *testing.T) {
	assert.Equal(t, "foo [a.go:1]:", stripClassName("foo(MyClassTest) [a.go:1]:", "MyClassTest"))
	assert.Equal(t, "foo(Other)", stripClassName("foo(Other)", "MyClassTest"))
	assert.Equal(t, "foo(X.Y)", stripClassName("foo(X.Y)", ""))
	assert.Equal(t, "a(b)", stripClassName("a(b)(b)", "b"), "only the first occurrence")
	assert.Equal(t, "foo", stripClassName("foo(a.b)", "a.b"), "class name is literal, not a pattern")
}

func TestCollapseSeparator(t *testing.T) {
	assert.Equal(t, "should work:", collapseSeparator("should work. :"))
	assert.Equal(t, "should work:rest", collapseSeparator("should work. : rest"))
	assert.Equal(t, "plain: text", collapseSeparator("plain: text"))
}

func TestFormatFault_StripsStructuralNoise(t *testing.T) {
	out := FormatFault("Failure:\ntest_foo(MyClassTest)", "MyClassTest", 0, ANSIPalette{}, Red)
	plain := stripANSI(out)
	first := strings.SplitN(plain, "\n", 2)[0]

	assert.NotContains(t, first, "Failure:")
	assert.NotContains(t, first, "(MyClassTest)")
	assert.False(t, strings.HasPrefix(strings.ToLower(first), "test"))
	assert.Equal(t, "foo", first)
}

func TestFormatFault_ColorEnvelope(t *testing.T) {
	out := FormatFault("Failure:\ntest_a(X):\nplain body", "X", 0, ANSIPalette{}, Red)
	assert.True(t, strings.HasPrefix(out, red))
	assert.True(t, strings.HasSuffix(out, reset+"\n"))
	assert.Equal(t, red+"a:\nplain body"+reset+"\n", out)
}

func TestFormatFault_HighlightsQuotedSpans(t *testing.T) {
	out := FormatFault("check(X):\nwanted `abc` but got \"xyz\"", "X", 0, ANSIPalette{}, Red)

	assert.Equal(t, 1, strings.Count(out, bold+"`abc`"+reset+red))
	assert.Equal(t, 1, strings.Count(out, bold+`"xyz"`+reset+red))

	// Formatting again starts from the raw description: no double wrapping.
	again := FormatFault("check(X):\nwanted `abc` but got \"xyz\"", "X", 0, ANSIPalette{}, Red)
	assert.Equal(t, out, again)
	assert.Equal(t, 2, strings.Count(out, bold))
}

func TestFormatFault_HighlightsBacktickApostropheSpan(t *testing.T) {
	out := FormatFault("undefined method `name' for nil", "", 0, ANSIPalette{}, Red)
	assert.Contains(t, out, bold+"`name'"+reset+red)
}

func TestFormatFault_FileReferences(t *testing.T) {
	out := FormatFault("Failure:\nTestParse(parser) [parser_test.go:12]:\nparser_test.go:30: mismatch", "parser", 0, ANSIPalette{}, Red)

	assert.Contains(t, out, "[parser_test.go:12]", "bracketed reference is left alone")
	assert.NotContains(t, out, bold+"parser_test.go:12")
	assert.Contains(t, out, bold+"parser_test.go:30"+reset+red)
}

func TestFormatFault_HighlightsUndefined(t *testing.T) {
	out := FormatFault("value is undefined here", "", 0, ANSIPalette{}, Yellow)
	assert.Contains(t, out, bold+" undefined "+reset+"\033[33m")
}

func TestFormatFault_HighlightsDiffValues(t *testing.T) {
	out := FormatFault("TestEq(X):\n<1> expected but was\n<2>.", "X", 0, ANSIPalette{}, Red)

	assert.Contains(t, out, "<"+bold+"1"+reset+red+"> expected")
	assert.Contains(t, out, "<"+bold+"2"+reset+red+">.")
}

func TestFormatFault_ButWasOnOneLine(t *testing.T) {
	out := FormatFault("x(X):\n<\"a\"> expected but was <\"b\">.", "X", 0, ANSIPalette{}, Red)
	plain := stripANSI(out)
	assert.Equal(t, "x:\n<\"a\"> expected but was <\"b\">.\n", plain)
	assert.Contains(t, out, "but was <"+bold)
}

func TestFormatFault_WrapsEachLineBeforeColoring(t *testing.T) {
	desc := "Failure:\nTestLong(pkg):\nalpha beta gamma delta epsilon\nshort"
	out := FormatFault(desc, "pkg", 12, ANSIPalette{}, Red)

	lines := strings.Split(strings.TrimSuffix(stripANSI(out), "\n"), "\n")
	want := []string{"Long:", "alpha beta", "gamma delta", "epsilon", "short"}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("wrapped lines mismatch (-want +got):\n%s", diff)
	}
	for _, l := range lines {
		require.LessOrEqual(t, len(l), 12)
	}
}

func TestFormatFault_QuotedSpanAcrossWrap(t *testing.T) {
	out := FormatFault(`got "a long quoted value"`, "", 10, ANSIPalette{}, Red)
	// The span is found after wrapping, newline included.
	assert.Contains(t, out, bold+"\"a\nlong\nquoted\nvalue\""+reset+red)
}

func TestFormatFault_Empty(t *testing.T) {
	assert.Equal(t, "", FormatFault("", "X", 10, ANSIPalette{}, Red))
	assert.Equal(t, "", FormatFault("  \n ", "X", 10, ANSIPalette{}, Red))
	assert.Equal(t, "", FormatFault("Failure:", "X", 10, ANSIPalette{}, Red))
}

func TestFormatFault_PlainPalette(t *testing.T) {
	out := FormatFault("Failure:\nTestA(X):\n\"q\" at a_test.go:3", "X", 0, PlainPalette{}, Red)
	assert.Equal(t, "A:\n\"q\" at a_test.go:3\n", out)
}

func TestInsideBrackets(t *testing.T) {
	s := "at [a.go:1] and a.go:2 and \033[1m[b.go:3]"
	i := strings.Index(s, "a.go:1")
	assert.True(t, insideBrackets(s, i, i+len("a.go:1")))
	i = strings.Index(s, "a.go:2")
	assert.False(t, insideBrackets(s, i, i+len("a.go:2")))
	i = strings.Index(s, "b.go:3")
	assert.True(t, insideBrackets(s, i, i+len("b.go:3")))

	esc := "\033[1mc.go:4\033[0m"
	assert.Equal(t, strings.Index(esc, "c.go"), skipEscape(esc, 2))
	i = strings.Index(esc, "c.go:4")
	assert.False(t, insideBrackets(esc, i, i+len("c.go:4")))
}

// palette256 mimics a lipgloss theme on a 256-color terminal.
type palette256 struct{}

func (palette256) Start(c Color) string {
	if c == Yellow {
		return "\033[38;5;214m"
	}
	return "\033[38;5;196m"
}
func (palette256) Bold() string  { return bold }
func (palette256) Reset() string { return reset }

func TestFormatFault_FileRefAfterHighlight_MultiParamColor(t *testing.T) {
	const red256 = "\033[38;5;196m"
	out := FormatFault("x(X):\ngot `v`main_test.go:3 here", "X", 0, palette256{}, Red)

	assert.Contains(t, out, bold+"`v`"+reset+red256+bold+"main_test.go:3"+reset+red256)
	assert.NotContains(t, out, "38;5;"+bold, "bold must not land inside the color sequence")
	assert.Equal(t, "x:\ngot `v`main_test.go:3 here\n", stripANSI(out))
}

func TestSkipEscape(t *testing.T) {
	s := "a\033[38;5;196mb.go:1"
	tests := []struct {
		name  string
		start int
		want  int
	}{
		{"after introducer", strings.Index(s, "38"), strings.Index(s, "b.go")},
		{"mid parameters", strings.Index(s, "196"), strings.Index(s, "b.go")},
		{"plain text", strings.Index(s, "b.go"), strings.Index(s, "b.go")},
		{"start of string", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, skipEscape(s, tt.start))
		})
	}
	assert.Equal(t, 1, skipEscape("[12a.go:1", 1), "a bare bracket is not an escape")
}
