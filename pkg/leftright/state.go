package leftright

// Fault is a failed or errored test as handed over by the test runner.
// LongDisplay is the raw multi-line description: a header naming the test
// followed by the body (assertion message, diff, stack trace).
type Fault interface {
	LongDisplay() string
}

// RunState is the mutable state of one test run. Every rendering step reads
// or updates it, and the dot counter and left-column suppression depend on
// the order of calls, so a RunState must only be used from one goroutine.
//
// PreviousFailed is kept for callers that want to know how the last test
// ended. A Reporter lays out rows from what it has written itself and does
// not consult it.
type RunState struct {
	Dots             int    // progress marks on the current output line
	Class            *Class // class currently executing
	Fault            Fault  // most recent failure or error
	LastPrintedClass string // last class name written to the left column
	PreviousFailed   bool   // the previous test failed or errored; informational
	Skip             bool   // the current test is a skip
	SkippedCount     int    // skipped tests so far
}

// NewRunState returns the state for a fresh run.
func NewRunState() *RunState {
	return &RunState{}
}

// MarkSkipped records that the current test was skipped.
func (s *RunState) MarkSkipped() {
	s.Skip = true
	s.SkippedCount++
}
