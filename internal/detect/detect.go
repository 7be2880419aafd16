// Package detect sniffs stdin to determine the input format.
package detect

import (
	"bytes"
	"encoding/json"

	"github.com/dkoosis/leftright/pkg/testjson"
)

// Format represents a recognized input format.
type Format int

const (
	Unknown    Format = iota
	Empty             // nothing but whitespace
	GoTestJSON        // go test -json NDJSON stream
	GoTestText        // plain go test or go test -v output
)

func (f Format) String() string {
	switch f {
	case Empty:
		return "empty"
	case GoTestJSON:
		return "go test -json"
	case GoTestText:
		return "go test text"
	}
	return "unknown"
}

// textMarkers are line prefixes only plain go test output starts with.
var textMarkers = [][]byte{
	[]byte("=== RUN"),
	[]byte("--- PASS"),
	[]byte("--- FAIL"),
	[]byte("--- SKIP"),
	[]byte("PASS"),
	[]byte("FAIL"),
	[]byte("ok  "),
	[]byte("?   "),
	[]byte("panic:"),
}

// Sniff examines the first bytes of input to determine format.
// Input must contain at least the first line.
func Sniff(data []byte) Format {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return Empty
	}

	line := data
	if i := bytes.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}

	if line[0] == '{' {
		if isGoTestJSON(line) {
			return GoTestJSON
		}
		return Unknown
	}
	for _, m := range textMarkers {
		if bytes.HasPrefix(line, m) {
			return GoTestText
		}
	}
	return Unknown
}

var validActions = map[string]bool{
	testjson.ActionStart: true, testjson.ActionRun: true, testjson.ActionPause: true,
	testjson.ActionCont: true, testjson.ActionPass: true, testjson.ActionBench: true,
	testjson.ActionFail: true, testjson.ActionOutput: true, testjson.ActionSkip: true,
	testjson.ActionBuildOutput: true, testjson.ActionBuildFail: true,
}

func isGoTestJSON(line []byte) bool {
	var event struct {
		Action string `json:"Action"`
	}
	if err := json.Unmarshal(bytes.TrimRight(line, "\r"), &event); err != nil {
		return false
	}
	return validActions[event.Action]
}
