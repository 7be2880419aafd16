// Package testjson reads the NDJSON event stream written by go test -json.
package testjson

import (
	"strings"
	"time"
)

// Actions reported by go test -json.
const (
	ActionStart  = "start"
	ActionRun    = "run"
	ActionPause  = "pause"
	ActionCont   = "cont"
	ActionPass   = "pass"
	ActionFail   = "fail"
	ActionSkip   = "skip"
	ActionOutput = "output"
	ActionBench  = "bench"

	// Emitted by go 1.24 and later for compiler output and build failures.
	ActionBuildOutput = "build-output"
	ActionBuildFail   = "build-fail"
)

// TestEvent is one line of go test -json output.
type TestEvent struct {
	Time    time.Time `json:"Time"`
	Action  string    `json:"Action"`
	Package string    `json:"Package"`
	Test    string    `json:"Test"`
	Elapsed float64   `json:"Elapsed"`
	Output  string    `json:"Output"`

	// ImportPath is set on build-output and build-fail events.
	ImportPath string `json:"ImportPath,omitempty"`
	// FailedBuild names the package whose build failure failed this one.
	FailedBuild string `json:"FailedBuild,omitempty"`
}

// IsPackageEvent reports whether the event concerns the package as a whole.
func (e TestEvent) IsPackageEvent() bool {
	return e.Test == ""
}

// IsSubtest reports whether the event belongs to a t.Run subtest.
func (e TestEvent) IsSubtest() bool {
	return strings.Contains(e.Test, "/")
}

// TopLevel returns the name of the top-level test, "TestA" for "TestA/b/c".
func (e TestEvent) TopLevel() string {
	name, _, _ := strings.Cut(e.Test, "/")
	return name
}

// Outcome reports whether the event ends a test or package.
func (e TestEvent) Outcome() bool {
	switch e.Action {
	case ActionPass, ActionFail, ActionSkip:
		return true
	}
	return false
}

// ShortPackage returns the last import path segment of the event's package.
func (e TestEvent) ShortPackage() string {
	if i := strings.LastIndex(e.Package, "/"); i >= 0 {
		return e.Package[i+1:]
	}
	return e.Package
}
