// Package stream drives a leftright.Reporter from go test -json events.
package stream

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/dkoosis/leftright/pkg/leftright"
	"github.com/dkoosis/leftright/pkg/testjson"
)

// Options configures Run.
type Options struct {
	Group Group
	// Classes pre-registers the left column. When set, events are rendered
	// as they arrive; otherwise the whole stream is read first so the column
	// can be sized from every class in it.
	Classes []string
	Logger  *slog.Logger
}

// Result describes a finished run.
type Result struct {
	Summary   leftright.Summary
	Malformed int
	Elapsed   float64 // longest package run, in seconds
	Replayed  bool
}

// ExitCode is 0 when everything passed and 1 otherwise.
func (r Result) ExitCode() int {
	if r.Summary.OK() {
		return 0
	}
	return 1
}

// streamer maps test events onto reporter calls.
type streamer struct {
	rp    *leftright.Reporter
	group Group
	log   *slog.Logger

	outputBuf   map[string][]string // per-test output, keyed by "pkg\x00test"
	buildOutput map[string][]string // compiler output by import path
	ended       map[string]bool     // tests already reported
	parents     map[string]bool     // tests that ran subtests
	childFailed map[string]bool     // parents with a failed subtest
	pkgFaults   map[string]int      // faults reported per package

	maxElapsed float64
}

func newStreamer(rp *leftright.Reporter, group Group, log *slog.Logger) *streamer {
	return &streamer{
		rp:          rp,
		group:       group,
		log:         log,
		outputBuf:   make(map[string][]string),
		buildOutput: make(map[string][]string),
		ended:       make(map[string]bool),
		parents:     make(map[string]bool),
		childFailed: make(map[string]bool),
		pkgFaults:   make(map[string]int),
	}
}

func (s *streamer) handleEvent(e testjson.TestEvent) {
	switch e.Action {
	case testjson.ActionRun:
		s.handleRun(e)
	case testjson.ActionOutput:
		s.handleOutput(e)
	case testjson.ActionBuildOutput:
		if out := strings.TrimRight(e.Output, "\n"); out != "" {
			s.buildOutput[e.ImportPath] = append(s.buildOutput[e.ImportPath], out)
		}
	case testjson.ActionPass, testjson.ActionFail, testjson.ActionSkip:
		if e.IsPackageEvent() {
			s.handlePackageEnd(e)
		} else {
			s.handleTestEnd(e)
		}
	}
}

func (s *streamer) handleRun(e testjson.TestEvent) {
	if s.group != GroupTest {
		return
	}
	for _, p := range ancestors(e.Test) {
		s.parents[bufKey(e.Package, p)] = true
	}
}

func (s *streamer) outputKey(e testjson.TestEvent) string {
	if s.group == GroupPackage {
		return bufKey(e.Package, e.TopLevel())
	}
	return bufKey(e.Package, e.Test)
}

func (s *streamer) handleOutput(e testjson.TestEvent) {
	output := strings.TrimRight(e.Output, "\n")
	if output == "" {
		return
	}
	key := s.outputKey(e)
	if s.ended[key] {
		// a panic trace printed after the test reported
		key = bufKey(e.Package, "")
	}
	s.outputBuf[key] = append(s.outputBuf[key], output)
}

func (s *streamer) handleTestEnd(e testjson.TestEvent) {
	if s.group == GroupPackage && e.IsSubtest() {
		return
	}
	key := bufKey(e.Package, e.Test)
	lines := s.outputBuf[key]
	delete(s.outputBuf, key)
	s.ended[key] = true

	failed := e.Action == testjson.ActionFail
	if failed {
		for _, p := range ancestors(e.Test) {
			s.childFailed[bufKey(e.Package, p)] = true
		}
	}
	if s.group == GroupTest && s.parents[key] {
		// parents only show up when they fail on their own
		if !failed || s.childFailed[key] {
			return
		}
	}

	class := className(e, s.group)
	s.rp.StartTest(leftright.Class{Name: class})
	switch e.Action {
	case testjson.ActionPass:
		s.rp.Pass()
	case testjson.ActionSkip:
		s.rp.Skip()
	case testjson.ActionFail:
		s.pkgFaults[e.Package]++
		f := newTestFault(methodName(e, s.group), class, lines)
		if f.Panicked() {
			s.rp.Error(f)
		} else {
			s.rp.Fail(f)
		}
	}
}

func (s *streamer) handlePackageEnd(e testjson.TestEvent) {
	if e.Elapsed > s.maxElapsed {
		s.maxElapsed = e.Elapsed
	}
	key := bufKey(e.Package, "")
	lines := s.outputBuf[key]
	delete(s.outputBuf, key)

	if e.Action != testjson.ActionFail {
		return
	}
	if s.pkgFaults[e.Package] > 0 && !hasPanic(lines) {
		return
	}
	if e.FailedBuild != "" {
		lines = append(s.buildOutput[e.FailedBuild], lines...)
	}
	s.log.Debug("package failed outside a test", "package", e.Package, "build", e.FailedBuild)

	s.rp.StartTest(leftright.Class{Name: e.ShortPackage()})
	s.rp.Error(newPackageFault(e.Package, lines))
	s.pkgFaults[e.Package]++
}

// Run reads go test -json events from r and renders them through rp. The
// reporter is finished before Run returns, also on error; a cancelled ctx
// is returned as ctx.Err().
func Run(ctx context.Context, r io.Reader, rp *leftright.Reporter, opts Options) (Result, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := newStreamer(rp, opts.Group, log)
	geo := rp.Renderer().Geometry()

	var (
		res Result
		err error
	)
	if len(opts.Classes) > 0 {
		for _, name := range opts.Classes {
			geo.Register(leftright.Class{Name: name})
		}
		log.Debug("streaming", "classes", len(opts.Classes), "group", opts.Group)
		res.Malformed, err = testjson.Stream(ctx, r, s.handleEvent)
	} else {
		var events []testjson.TestEvent
		res.Malformed, err = testjson.Stream(ctx, r, func(e testjson.TestEvent) {
			events = append(events, e)
		})
		classes := Enumerate(events, opts.Group)
		geo.Register(classes...)
		log.Debug("replaying", "events", len(events), "classes", len(classes), "group", opts.Group)
		// what was read before an interrupt is still shown
		if rerr := testjson.Replay(context.WithoutCancel(ctx), events, s.handleEvent); err == nil {
			err = rerr
		}
		res.Replayed = true
	}
	if res.Malformed > 0 {
		log.Debug("skipped malformed lines", "count", res.Malformed)
	}

	res.Summary = rp.Finish()
	res.Elapsed = s.maxElapsed
	return res, err
}
