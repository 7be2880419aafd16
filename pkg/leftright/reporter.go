package leftright

import (
	"fmt"
	"io"
	"strings"
)

// Summary tallies the outcomes of a run.
type Summary struct {
	Passed  int
	Failed  int
	Errored int
	Skipped int
}

// Total is the number of tests reported.
func (s Summary) Total() int {
	return s.Passed + s.Failed + s.Errored + s.Skipped
}

// OK reports whether nothing failed or errored.
func (s Summary) OK() bool {
	return s.Failed == 0 && s.Errored == 0
}

// Reporter lays the renderer's fragments out in two columns on w. A test
// runner calls StartTest before each test and then exactly one of Pass,
// Fail, Error or Skip.
type Reporter struct {
	w        io.Writer
	r        *Renderer
	summary  Summary
	rowOpen  bool // the current line has its left column
	rowMarks bool // the current line holds dots
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer, r *Renderer) *Reporter {
	return &Reporter{w: w, r: r}
}

// Renderer returns the underlying renderer.
func (rp *Reporter) Renderer() *Renderer { return rp.r }

// StartTest makes c the current class. A class change ends the current row
// and starts a new one headed by the class name.
func (rp *Reporter) StartTest(c Class) {
	st := rp.r.State()
	cls := c
	st.Class = &cls
	st.Skip = false

	left := rp.r.LeftColumn(c)
	if left == "" {
		return
	}
	rp.endRow()
	rp.write(left)
	rp.rowOpen = true
}

// Pass prints a progress dot.
func (rp *Reporter) Pass() {
	if !rp.rowOpen {
		rp.write(rp.r.JustifyLeft(""))
		rp.rowOpen = true
	}

	dot := rp.r.P()
	if rest, wrapped := strings.CutPrefix(dot, "\n"); wrapped {
		dot = "\n" + rp.r.JustifyLeft("") + rest
	}
	rp.write(dot)
	rp.rowMarks = true

	rp.r.State().PreviousFailed = false
	rp.summary.Passed++
}

// Fail prints f as a failure.
func (rp *Reporter) Fail(f Fault) {
	rp.printFault(f, func() string { return rp.r.F(Red) })
	rp.summary.Failed++
}

// Error prints f as an error.
func (rp *Reporter) Error(f Fault) {
	rp.printFault(f, rp.r.E)
	rp.summary.Errored++
}

// Skip records a skipped test; skips print nothing.
func (rp *Reporter) Skip() {
	rp.r.MarkSkipped()
}

// printFault writes the formatted block in the right column, starting on a
// fresh row if the current one already holds dots. Continuation lines get
// a blank left column.
func (rp *Reporter) printFault(f Fault, format func() string) {
	st := rp.r.State()
	st.Fault = f
	st.PreviousFailed = true

	block := strings.TrimSuffix(format(), "\n")
	if block == "" {
		return
	}
	if rp.rowMarks {
		rp.endRow()
	}
	if !rp.rowOpen {
		rp.write(rp.r.JustifyLeft(""))
	}

	pad := "\n" + rp.r.JustifyLeft("")
	rp.write(strings.ReplaceAll(block, "\n", pad))
	rp.write("\n")

	rp.rowOpen = false
	rp.rowMarks = false
	st.Dots = 0
}

// Finish ends the open row and returns the tally.
func (rp *Reporter) Finish() Summary {
	rp.endRow()
	s := rp.summary
	s.Skipped = rp.r.State().SkippedCount
	return s
}

func (rp *Reporter) endRow() {
	if rp.rowOpen {
		rp.write("\n")
	}
	rp.rowOpen = false
	rp.rowMarks = false
	rp.r.State().Dots = 0
}

func (rp *Reporter) write(s string) {
	fmt.Fprint(rp.w, s)
}
