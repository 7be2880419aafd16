package render

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dkoosis/leftright/pkg/leftright"
)

// SummaryLine renders the line printed after the two-column display.
type SummaryLine struct {
	theme   Theme
	printer *message.Printer
}

// NewSummaryLine creates a summary renderer; counts are formatted for tag.
func NewSummaryLine(theme Theme, tag language.Tag) *SummaryLine {
	return &SummaryLine{theme: theme, printer: message.NewPrinter(tag)}
}

// LocaleFromEnv picks a language tag from a POSIX locale such as
// "de_DE.UTF-8", falling back to English.
func LocaleFromEnv(lang string) language.Tag {
	lang, _, _ = strings.Cut(lang, ".")
	lang = strings.ReplaceAll(lang, "_", "-")
	if lang == "" || lang == "C" || lang == "POSIX" {
		return language.English
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return language.English
	}
	return tag
}

// Render returns e.g. "✗ FAIL 2 failed, 1 errored, 40 passed, 3 skipped (1.2s)".
// Zero counts other than passed are left out; so is a zero elapsed time.
func (l *SummaryLine) Render(s leftright.Summary, elapsed float64) string {
	t := l.theme
	var head string
	switch {
	case s.Total() == 0:
		return t.Muted.Render(t.Icons.Empty + " no tests")
	case s.OK():
		head = t.Passed.Inherit(t.Bold).Render(t.Icons.Pass + " PASS")
	default:
		head = t.Failed.Inherit(t.Bold).Render(t.Icons.Fail + " FAIL")
	}

	var parts []string
	if s.Failed > 0 {
		parts = append(parts, t.Failed.Render(l.printer.Sprintf("%d failed", s.Failed)))
	}
	if s.Errored > 0 {
		parts = append(parts, t.Errored.Render(l.printer.Sprintf("%d errored", s.Errored)))
	}
	parts = append(parts, t.Passed.Render(l.printer.Sprintf("%d passed", s.Passed)))
	if s.Skipped > 0 {
		parts = append(parts, t.Skipped.Render(l.printer.Sprintf("%d skipped", s.Skipped)))
	}

	line := head + " " + strings.Join(parts, ", ")
	if elapsed > 0 {
		line += " " + t.Muted.Render(l.printer.Sprintf("(%.1fs)", elapsed))
	}
	return line
}
