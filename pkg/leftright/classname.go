package leftright

import "strings"

const classSuffix = "Test"

// FormatClassName returns the display text for a class name: a single
// trailing "Test" is dropped, anything else is returned unchanged.
func FormatClassName(name string) string {
	return strings.TrimSuffix(name, classSuffix)
}
