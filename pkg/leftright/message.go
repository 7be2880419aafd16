package leftright

import (
	"regexp"
	"strings"
)

var (
	labelLine   = regexp.MustCompile(`^\s*(?:Failure|Error):\s*$`)
	testPrefix  = regexp.MustCompile(`(?i)^test[.:_]?\s*`)
	dotColonSep = regexp.MustCompile(`\. :\s?`)

	backtickSpan  = regexp.MustCompile("`[^`']+[`']")
	quotedSpan    = regexp.MustCompile(`"[^"]+"`)
	fileRef       = regexp.MustCompile(`[\w.\-]+\.[A-Za-z]\w*:\d+`)
	undefinedWord = regexp.MustCompile(`\s+undefined\s+`)

	expectedValue = regexp.MustCompile(`(<)(.*)(>\s+expected)`)
	butWasValue   = regexp.MustCompile(`(but\s+was\s+<)(.*)(>\.)`)
)

// FormatFault renders a fault description as a right-column block: label
// and naming noise removed, each line wrapped to width (0 disables
// wrapping), interesting spans in bold, the whole block in color, ending in
// a newline. An empty description yields "".
func FormatFault(longDisplay, className string, width int, p Palette, c Color) string {
	if strings.TrimSpace(longDisplay) == "" {
		return ""
	}

	lines := strings.Split(longDisplay, "\n")
	lines = dropLabelLine(lines)
	if len(lines) == 0 {
		return ""
	}
	lines[0] = stripTestPrefix(lines[0])
	lines[0] = stripClassName(lines[0], className)
	lines[0] = collapseSeparator(lines[0])

	// Wrap before any escapes go in, or they would count as visible text.
	block := wrapLines(lines, width)
	if block == "" {
		return ""
	}
	block = highlight(block, p, c)
	block = highlightDiff(block, p, c)

	return p.Start(c) + block + p.Reset() + "\n"
}

// dropLabelLine removes a leading "Failure:" or "Error:" line; the color
// already says which one it is.
func dropLabelLine(lines []string) []string {
	if len(lines) > 0 && labelLine.MatchString(lines[0]) {
		return lines[1:]
	}
	return lines
}

// stripTestPrefix removes a "test", "test_", "Test:" ... prefix.
func stripTestPrefix(line string) string {
	return testPrefix.ReplaceAllString(line, "")
}

// stripClassName removes the first "(className)"; the class is already in
// the left column.
func stripClassName(line, className string) string {
	if className == "" {
		return line
	}
	return strings.Replace(line, "("+className+")", "", 1)
}

// collapseSeparator turns the first ". :" into ":".
func collapseSeparator(line string) string {
	loc := dotColonSep.FindStringIndex(line)
	if loc == nil {
		return line
	}
	return line[:loc[0]] + ":" + line[loc[1]:]
}

func wrapLines(lines []string, width int) string {
	wrapped := make([]string, len(lines))
	for i, line := range lines {
		wrapped[i] = Wrap(strings.TrimSpace(line), width)
	}
	return strings.TrimSpace(strings.Join(wrapped, "\n"))
}

// highlight bolds quoted spans, file:line references and "undefined". The
// base color is restarted after each reset.
func highlight(block string, p Palette, c Color) string {
	bold := func(m string) string {
		return p.Bold() + m + p.Reset() + p.Start(c)
	}
	block = backtickSpan.ReplaceAllStringFunc(block, bold)
	block = quotedSpan.ReplaceAllStringFunc(block, bold)
	block = boldFileRefs(block, bold)
	block = undefinedWord.ReplaceAllStringFunc(block, bold)
	return block
}

func boldFileRefs(block string, bold func(string) string) string {
	matches := fileRef.FindAllStringIndex(block, -1)
	if matches == nil {
		return block
	}
	var sb strings.Builder
	last := 0
	for _, m := range matches {
		start, end := skipEscape(block, m[0]), m[1]
		if start >= end || insideBrackets(block, start, end) {
			continue
		}
		sb.WriteString(block[last:start])
		sb.WriteString(bold(block[start:end]))
		last = end
	}
	sb.WriteString(block[last:])
	return sb.String()
}

// skipEscape moves start past the end of an escape sequence it falls inside
// of, such as the "38;5;196m" of a color restarted by an earlier highlight.
// Outside a sequence start is returned unchanged.
func skipEscape(s string, start int) int {
	i := start - 1
	for i >= 0 && isCSIParam(s[i]) {
		i--
	}
	if i < 1 || s[i] != '[' || s[i-1] != '\033' {
		return start
	}
	for j := start; j < len(s); j++ {
		switch {
		case s[j] >= 0x40 && s[j] <= 0x7e:
			return j + 1
		case !isCSIParam(s[j]):
			return start
		}
	}
	return start
}

func isCSIParam(b byte) bool { return b >= '0' && b <= '?' }

// insideBrackets reports whether s[start:end] sits inside a [...] group on
// its line. The '[' of an escape sequence does not count.
func insideBrackets(s string, start, end int) bool {
	open := -1
	for i := start - 1; i >= 0 && s[i] != '\n'; i-- {
		if s[i] == ']' {
			return false
		}
		if s[i] == '[' && (i == 0 || s[i-1] != '\033') {
			open = i
			break
		}
	}
	if open < 0 {
		return false
	}
	for i := end; i < len(s) && s[i] != '\n'; i++ {
		switch s[i] {
		case ']':
			return true
		case '[':
			if i == 0 || s[i-1] != '\033' {
				return false
			}
		}
	}
	return false
}

// highlightDiff bolds the values of "<a> expected but was <b>." style
// equality messages, first occurrence of each only.
func highlightDiff(block string, p Palette, c Color) string {
	block = boldGroup(block, expectedValue, p, c)
	block = boldGroup(block, butWasValue, p, c)
	return block
}

func boldGroup(block string, re *regexp.Regexp, p Palette, c Color) string {
	loc := re.FindStringSubmatchIndex(block)
	if loc == nil {
		return block
	}
	start, end := loc[4], loc[5]
	return block[:start] + p.Bold() + block[start:end] + p.Reset() + p.Start(c) + block[end:]
}
