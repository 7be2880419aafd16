package stream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/leftright/pkg/leftright"
	"github.com/dkoosis/leftright/pkg/testjson"
)

// ndjson encodes events the way go test -json writes them.
func ndjson(t *testing.T, events ...testjson.TestEvent) string {
	t.Helper()
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	for _, e := range events {
		require.NoError(t, enc.Encode(e))
	}
	return sb.String()
}

// runEvents feeds input through Run with a plain, non-interactive reporter.
func runEvents(t *testing.T, input string, opts Options) (string, Result) {
	t.Helper()
	var buf bytes.Buffer
	r := leftright.NewRenderer(
		leftright.NewRunState(),
		leftright.NewGeometry(leftright.FixedWidth(60)),
		leftright.WithInteractive(false),
		leftright.WithPalette(leftright.PlainPalette{}),
	)
	res, err := Run(context.Background(), strings.NewReader(input), leftright.NewReporter(&buf, r), opts)
	require.NoError(t, err)
	return buf.String(), res
}

func out(pkg, test, text string) testjson.TestEvent {
	return testjson.TestEvent{Action: testjson.ActionOutput, Package: pkg, Test: test, Output: text}
}

func ev(action, pkg, test string) testjson.TestEvent {
	return testjson.TestEvent{Action: action, Package: pkg, Test: test}
}

func TestRun_PackagesAsClasses(t *testing.T) {
	input := ndjson(t,
		ev(testjson.ActionStart, "example.com/foo/parser", ""),
		ev(testjson.ActionRun, "example.com/foo/parser", "TestA"),
		ev(testjson.ActionPass, "example.com/foo/parser", "TestA"),
		ev(testjson.ActionRun, "example.com/foo/parser", "TestB"),
		ev(testjson.ActionPass, "example.com/foo/parser", "TestB"),
		ev(testjson.ActionPass, "example.com/foo/parser", ""),
		ev(testjson.ActionRun, "example.com/foo/lexer", "TestC"),
		ev(testjson.ActionPass, "example.com/foo/lexer", "TestC"),
		ev(testjson.ActionPass, "example.com/foo/lexer", ""),
	)
	got, res := runEvents(t, input, Options{})

	assert.Equal(t, " parser ..\n  lexer .\n", got)
	assert.Equal(t, leftright.Summary{Passed: 3}, res.Summary)
	assert.True(t, res.Replayed)
	assert.Equal(t, 0, res.ExitCode())
}

func TestRun_SubtestOutputFoldsIntoParent(t *testing.T) {
	const pkg = "example.com/calc"
	input := ndjson(t,
		ev(testjson.ActionRun, pkg, "TestAdd"),
		out(pkg, "TestAdd", "=== RUN   TestAdd\n"),
		ev(testjson.ActionRun, pkg, "TestAdd/neg"),
		out(pkg, "TestAdd/neg", "=== RUN   TestAdd/neg\n"),
		out(pkg, "TestAdd/neg", "    calc_test.go:14: want -1, got 1\n"),
		out(pkg, "TestAdd/neg", "    --- FAIL: TestAdd/neg (0.00s)\n"),
		ev(testjson.ActionFail, pkg, "TestAdd/neg"),
		out(pkg, "TestAdd", "--- FAIL: TestAdd (0.00s)\n"),
		ev(testjson.ActionFail, pkg, "TestAdd"),
		out(pkg, "", "FAIL\n"),
		testjson.TestEvent{Action: testjson.ActionFail, Package: pkg, Elapsed: 0.3},
	)
	got, res := runEvents(t, input, Options{})

	assert.Equal(t, " calc Add [calc_test.go:14]:\n      want -1, got 1\n", got)
	assert.Equal(t, leftright.Summary{Failed: 1}, res.Summary)
	assert.Equal(t, 1, res.ExitCode())
	assert.InDelta(t, 0.3, res.Elapsed, 1e-9)
}

func TestRun_TestsAsClasses(t *testing.T) {
	const pkg = "example.com/calc"
	input := ndjson(t,
		ev(testjson.ActionRun, pkg, "TestAdd"),
		ev(testjson.ActionRun, pkg, "TestAdd/pos"),
		ev(testjson.ActionPass, pkg, "TestAdd/pos"),
		ev(testjson.ActionRun, pkg, "TestAdd/neg"),
		out(pkg, "TestAdd/neg", "    calc_test.go:20: boom\n"),
		ev(testjson.ActionFail, pkg, "TestAdd/neg"),
		ev(testjson.ActionFail, pkg, "TestAdd"),
		ev(testjson.ActionRun, pkg, "TestSub"),
		ev(testjson.ActionPass, pkg, "TestSub"),
		ev(testjson.ActionFail, pkg, ""),
	)
	got, res := runEvents(t, input, Options{Group: GroupTest})

	want := strings.Join([]string{
		" TestAdd .",
		"         neg [calc_test.go:20]:",
		"         boom",
		" TestSub .",
		"",
	}, "\n")
	assert.Equal(t, want, got)
	assert.Equal(t, leftright.Summary{Passed: 2, Failed: 1}, res.Summary)
}

func TestRun_ParentFailingOnItsOwnIsReported(t *testing.T) {
	const pkg = "example.com/calc"
	input := ndjson(t,
		ev(testjson.ActionRun, pkg, "TestAdd"),
		ev(testjson.ActionRun, pkg, "TestAdd/pos"),
		ev(testjson.ActionPass, pkg, "TestAdd/pos"),
		out(pkg, "TestAdd", "    calc_test.go:30: cleanup failed\n"),
		ev(testjson.ActionFail, pkg, "TestAdd"),
	)
	got, res := runEvents(t, input, Options{Group: GroupTest})

	// the class is the test itself, so only its trimmed name is left
	assert.Contains(t, got, "\n         Add [calc_test.go:30]:\n         cleanup failed\n")
	assert.Equal(t, leftright.Summary{Passed: 1, Failed: 1}, res.Summary)
}

func TestRun_PanicAfterReportBecomesPackageError(t *testing.T) {
	const pkg = "x/boom"
	input := ndjson(t,
		ev(testjson.ActionRun, pkg, "TestBoom"),
		out(pkg, "TestBoom", "=== RUN   TestBoom\n"),
		out(pkg, "TestBoom", "--- FAIL: TestBoom (0.00s)\n"),
		ev(testjson.ActionFail, pkg, "TestBoom"),
		out(pkg, "TestBoom", "panic: boom [recovered]\n"),
		out(pkg, "TestBoom", "\tpanic: boom\n"),
		out(pkg, "", "FAIL\tx/boom\t0.01s\n"),
		ev(testjson.ActionFail, pkg, ""),
	)
	got, res := runEvents(t, input, Options{})

	want := strings.Join([]string{
		" boom Boom:",
		"      package x/boom:",
		"      panic: boom [recovered]",
		"      panic: boom",
		"",
	}, "\n")
	assert.Equal(t, want, got)
	assert.Equal(t, leftright.Summary{Failed: 1, Errored: 1}, res.Summary)
}

func TestRun_PanicInsideTestIsError(t *testing.T) {
	const pkg = "x/boom"
	input := ndjson(t,
		ev(testjson.ActionRun, pkg, "TestBoom"),
		out(pkg, "TestBoom", "panic: boom\n"),
		ev(testjson.ActionFail, pkg, "TestBoom"),
	)
	got, res := runEvents(t, input, Options{})

	assert.Equal(t, " boom Boom:\n      panic: boom\n", got)
	assert.Equal(t, 1, res.Summary.Errored)
}

func TestRun_BuildFailure(t *testing.T) {
	const pkg = "x/broken"
	input := ndjson(t,
		testjson.TestEvent{Action: testjson.ActionBuildOutput, ImportPath: "x/broken [x/broken.test]", Output: "# x/broken [x/broken.test]\n"},
		testjson.TestEvent{Action: testjson.ActionBuildOutput, ImportPath: "x/broken [x/broken.test]", Output: "./broken_test.go:5:2: undefined: Foo\n"},
		testjson.TestEvent{Action: testjson.ActionBuildFail, ImportPath: "x/broken [x/broken.test]"},
		ev(testjson.ActionStart, pkg, ""),
		out(pkg, "", "FAIL\tx/broken [build failed]\n"),
		testjson.TestEvent{Action: testjson.ActionFail, Package: pkg, FailedBuild: "x/broken [x/broken.test]"},
	)
	got, res := runEvents(t, input, Options{})

	want := strings.Join([]string{
		" broken package x/broken:",
		"        # x/broken [x/broken.test]",
		"        ./broken_test.go:5:2: undefined: Foo",
		"",
	}, "\n")
	assert.Equal(t, want, got)
	assert.Equal(t, leftright.Summary{Errored: 1}, res.Summary)
	assert.Equal(t, 1, res.ExitCode())
}

func TestRun_SkipsCountedNotPrinted(t *testing.T) {
	input := ndjson(t,
		ev(testjson.ActionRun, "x/util", "TestA"),
		ev(testjson.ActionPass, "x/util", "TestA"),
		ev(testjson.ActionRun, "x/util", "TestB"),
		out("x/util", "TestB", "    util_test.go:9: needs network\n"),
		ev(testjson.ActionSkip, "x/util", "TestB"),
		ev(testjson.ActionPass, "x/util", ""),
		out("x/empty", "", "?   \tx/empty\t[no test files]\n"),
		ev(testjson.ActionSkip, "x/empty", ""),
	)
	got, res := runEvents(t, input, Options{})

	assert.Equal(t, " util .\n", got)
	assert.Equal(t, leftright.Summary{Passed: 1, Skipped: 1}, res.Summary)
	assert.True(t, res.Summary.OK())
}

func TestRun_LiveWithRegisteredClasses(t *testing.T) {
	input := ndjson(t,
		ev(testjson.ActionRun, "x/ab", "TestA"),
		ev(testjson.ActionPass, "x/ab", "TestA"),
	)
	got, res := runEvents(t, input, Options{Classes: []string{"longname"}})

	assert.False(t, res.Replayed)
	assert.Equal(t, "       ab .\n", got, "column sized for the registered class")
}

func TestRun_CountsMalformedLines(t *testing.T) {
	input := "=== RUN   TestA\n" + ndjson(t,
		ev(testjson.ActionRun, "x/a", "TestA"),
		ev(testjson.ActionPass, "x/a", "TestA"),
	)
	got, res := runEvents(t, input, Options{})

	assert.Equal(t, 1, res.Malformed)
	assert.Equal(t, " a .\n", got)
}

func TestRun_CancelledStillFinishes(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	r := leftright.NewRenderer(leftright.NewRunState(), leftright.NewGeometry(), leftright.WithInteractive(false))
	res, err := Run(ctx, pr, leftright.NewReporter(&buf, r), Options{})

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, res.Summary.Total())
	assert.Empty(t, buf.String())
}
