// leftright renders go test -json output as two columns: the package or
// test being run on the left, progress dots and failure details on the right.
//
// Usage:
//
//	go test -json ./... | leftright
//	go test -json -run TestParse ./parser | leftright --group test
//	go test -json ./... | leftright --class parser --class lexer
//
// Without --class (or classes in .leftright.yaml) the whole stream is read
// before anything is printed, so the left column can be sized to fit.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	code := ExitSuccess
	root := newRootCmd(stdin, stdout, stderr, &code)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "leftright: %v\n", err)
		if code == ExitSuccess {
			code = ExitInputError
		}
	}
	return code
}
