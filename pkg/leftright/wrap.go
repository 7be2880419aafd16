package leftright

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Wrap breaks text so that no line is wider than width cells. Lines are cut
// after the last run of blanks that fits; a word wider than width is cut at
// exactly width cells. Existing line breaks are kept, and no trailing break
// is added. A width below 1 leaves text unchanged.
func Wrap(text string, width int) string {
	if width < 1 {
		return text
	}
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, wrapLine(line, width)...)
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, width int) []string {
	runes := []rune(line)
	var out []string
	for cells(runes) > width {
		n := fit(runes, width)

		// runes[n] exists: the line is wider than what fits.
		cut := -1
		for k := n; k >= 1; k-- {
			if isBlank(runes[k]) {
				cut = k
				break
			}
		}
		if cut < 0 {
			out = append(out, string(runes[:n]))
			runes = runes[n:]
			continue
		}

		if chunk := strings.TrimRight(string(runes[:cut]), " \t"); chunk != "" {
			out = append(out, chunk)
		}
		next := cut
		for next < len(runes) && isBlank(runes[next]) {
			next++
		}
		runes = runes[next:]
	}
	if len(runes) > 0 || len(out) == 0 {
		out = append(out, string(runes))
	}
	return out
}

// fit returns how many leading runes fit in width cells, at least one.
func fit(runes []rune, width int) int {
	used := 0
	for i, r := range runes {
		used += runewidth.RuneWidth(r)
		if used > width {
			if i == 0 {
				return 1
			}
			return i
		}
	}
	return len(runes)
}

func cells(runes []rune) int {
	n := 0
	for _, r := range runes {
		n += runewidth.RuneWidth(r)
	}
	return n
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t'
}
