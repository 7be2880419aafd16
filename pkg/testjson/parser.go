package testjson

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
)

const maxLineSize = 1024 * 1024

// ProcessFunc receives decoded events in input order.
type ProcessFunc func(TestEvent)

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	// verbose test output can produce long lines
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return scanner
}

// decode parses one line. Blank lines are reported as !ok without error.
func decode(line []byte) (e TestEvent, ok bool, err error) {
	if len(line) == 0 {
		return e, false, nil
	}
	if err := json.Unmarshal(line, &e); err != nil {
		return e, false, err
	}
	return e, true, nil
}

type scanResult struct {
	line []byte
	err  error
}

// Stream decodes events from r as they arrive and calls fn for each one on
// the calling goroutine. It returns at EOF or when ctx is done, with the
// number of malformed lines skipped.
//
// The scanner runs on its own goroutine. On cancellation Stream closes r if
// it is an io.Closer; otherwise the caller must close the underlying reader
// to release that goroutine.
func Stream(ctx context.Context, r io.Reader, fn ProcessFunc) (int, error) {
	scanner := newScanner(r)

	lines := make(chan scanResult)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			cp := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- scanResult{line: cp}:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case lines <- scanResult{err: err}:
			case <-ctx.Done():
			}
		}
	}()

	var malformed int
	for {
		select {
		case <-ctx.Done():
			if c, ok := r.(io.Closer); ok {
				_ = c.Close()
			}
			return malformed, ctx.Err()
		case res, ok := <-lines:
			if !ok {
				return malformed, nil
			}
			if res.err != nil {
				return malformed, fmt.Errorf("scanning test output: %w", res.err)
			}
			e, ok, err := decode(res.line)
			if err != nil {
				malformed++
				continue
			}
			if ok {
				fn(e)
			}
		}
	}
}

// Replay feeds already decoded events to fn, stopping early if ctx is done.
func Replay(ctx context.Context, events []TestEvent, fn ProcessFunc) error {
	for _, e := range events {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(e)
	}
	return nil
}
