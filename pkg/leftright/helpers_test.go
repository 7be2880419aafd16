package leftright

import "regexp"

var sgr = regexp.MustCompile("\033\\[[0-9;]*m")

func stripANSI(s string) string {
	return sgr.ReplaceAllString(s, "")
}
