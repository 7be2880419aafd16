package stream

import (
	"regexp"
	"strings"
)

const (
	labelFailure = "Failure"
	labelError   = "Error"
)

var sourceLine = regexp.MustCompile(`^\s*([\w.\-]+\.go:\d+): ?(.*)$`)

// boilerplatePrefixes are go test status lines that carry no detail.
var boilerplatePrefixes = []string{
	"=== RUN", "=== PAUSE", "=== CONT", "=== NAME",
	"--- FAIL", "--- PASS", "--- SKIP",
	"FAIL\t", "ok  \t", "exit status ",
}

// Fault is a failed test or package, laid out the way the renderer expects:
//
//	Failure:
//	TestName(class) [file_test.go:12]:
//	message lines
type Fault struct {
	Label  string
	Test   string
	Class  string
	Source string
	Body   []string
}

// LongDisplay implements leftright.Fault.
func (f Fault) LongDisplay() string {
	var sb strings.Builder
	sb.WriteString(f.Label)
	sb.WriteString(":\n")
	if f.Test != "" {
		sb.WriteString(f.Test + "(" + f.Class + ")")
	} else {
		sb.WriteString("package " + f.Class)
	}
	if f.Source != "" {
		sb.WriteString(" [" + f.Source + "]")
	}
	sb.WriteString(":")
	for _, l := range f.Body {
		sb.WriteString("\n")
		sb.WriteString(l)
	}
	return sb.String()
}

// Panicked reports whether the fault is an error rather than a failure.
func (f Fault) Panicked() bool {
	return f.Label == labelError
}

// newTestFault builds the fault for a failed test from its buffered output.
// The first file:line prefix moves into the header; a panic makes it an
// error.
func newTestFault(test, class string, output []string) Fault {
	f := Fault{Label: labelFailure, Test: test, Class: class}
	for _, l := range output {
		if isBoilerplate(l) {
			continue
		}
		if isPanic(l) {
			f.Label = labelError
		}
		if f.Source == "" {
			if m := sourceLine.FindStringSubmatch(l); m != nil {
				f.Source = m[1]
				if strings.TrimSpace(m[2]) == "" {
					continue
				}
				l = m[2]
			}
		}
		f.Body = append(f.Body, l)
	}
	return f
}

// newPackageFault builds the error for a package that failed outside any
// test: a build failure, a panic in TestMain or init, a timeout.
func newPackageFault(pkg string, output []string) Fault {
	f := Fault{Label: labelError, Class: pkg}
	for _, l := range output {
		if isBoilerplate(l) || strings.TrimSpace(l) == "FAIL" {
			continue
		}
		f.Body = append(f.Body, l)
	}
	return f
}

// isBoilerplate returns true for go test output lines that should be filtered.
func isBoilerplate(s string) bool {
	trimmed := strings.TrimLeft(s, " \t")
	for _, p := range boilerplatePrefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}

func isPanic(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "panic:")
}

func hasPanic(lines []string) bool {
	for _, l := range lines {
		if isPanic(l) {
			return true
		}
	}
	return false
}
