package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dkoosis/leftright/internal/config"
	"github.com/dkoosis/leftright/internal/detect"
	"github.com/dkoosis/leftright/pkg/leftright"
	"github.com/dkoosis/leftright/pkg/render"
	"github.com/dkoosis/leftright/pkg/stream"
)

const peekSize = 4096

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer, code *int) *cobra.Command {
	var flags config.CliFlags

	cmd := &cobra.Command{
		Use:   "leftright",
		Short: "Two-column progress for go test -json",
		Long: `leftright reads go test -json from stdin and prints each package (or
top-level test, with --group test) in a left column, with a dot per passing
test and the details of each failure in the right column.

Examples:
  go test -json ./... | leftright
  go test -json ./... | leftright --group test --width 100`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := cmd.Flags()
			flags.NoColorSet = f.Changed("no-color")
			flags.WidthSet = f.Changed("width")
			flags.GroupSet = f.Changed("group")
			flags.DebugSet = f.Changed("debug")

			c, err := report(cmd.Context(), stdin, stdout, stderr, flags)
			*code = c
			return err
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVar(&flags.ConfigPath, "config", "", "config file (default .leftright.yaml, then ~/.config/leftright/.leftright.yaml)")
	f.StringVar(&flags.ThemeName, "theme", "", "theme: default, orca, mono")
	f.BoolVar(&flags.NoColor, "no-color", false, "disable colors")
	f.IntVar(&flags.Width, "width", 0, "terminal width in cells (default: detect)")
	f.StringVar(&flags.Group, "group", config.DefaultGroup, "left column groups by: package or test")
	f.StringSliceVar(&flags.Classes, "class", nil, "class to size the left column for; enables live output (repeatable)")
	f.BoolVar(&flags.Debug, "debug", false, "log debug output to stderr")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

// report runs one rendering pass and returns the exit code.
func report(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, flags config.CliFlags) (int, error) {
	cfg, err := config.ResolveConfig(flags)
	if err != nil {
		return ExitInputError, err
	}
	logger := newLogger(stderr, cfg.Debug)
	logger.Debug("config resolved",
		"path", cfg.ConfigPath,
		"theme", cfg.ThemeName, "theme_source", cfg.ThemeSource,
		"no_color", cfg.NoColor, "no_color_source", cfg.NoColorSource,
		"width", cfg.Width, "width_source", cfg.WidthSource,
		"group", cfg.Group, "group_source", cfg.GroupSource)

	// Peek stdin to detect format without consuming
	br := bufio.NewReaderSize(stdin, 64*1024)
	peeked, _ := br.Peek(peekSize)
	switch format := detect.Sniff(peeked); format {
	case detect.Empty:
		return ExitInputError, errors.New("no input on stdin")
	case detect.GoTestText:
		return ExitInputError, errors.New("input is plain go test output; pipe go test -json instead")
	default:
		logger.Debug("input detected", "format", format)
	}

	// Close the underlying reader on cancel to unblock the scanner goroutine.
	// bufio.Reader doesn't implement io.Closer, so Stream can't close it itself.
	if c, ok := stdin.(io.Closer); ok {
		stopClose := context.AfterFunc(ctx, func() { _ = c.Close() })
		defer stopClose()
	}

	tty := isTTYWriter(stdout)
	theme := render.ThemeByName(cfg.ThemeName)
	var palette leftright.Palette = render.NewPalette(theme)
	if cfg.NoColor {
		theme = render.MonoTheme()
	}
	if cfg.NoColor || !tty {
		palette = leftright.PlainPalette{}
	}

	r := leftright.NewRenderer(
		leftright.NewRunState(),
		leftright.NewGeometry(widthProbes(stdout, cfg.Width)...),
		leftright.WithPalette(palette),
		leftright.WithInteractive(tty),
	)
	logger.Debug("renderer ready", "interactive", r.Interactive(), "palette", fmt.Sprintf("%T", r.Palette()), "theme", theme.Name)
	res, runErr := stream.Run(ctx, br, leftright.NewReporter(stdout, r), stream.Options{
		Group:   cfg.Group,
		Classes: cfg.Classes,
		Logger:  logger,
	})

	if res.Malformed > 0 {
		fmt.Fprintf(stderr, "leftright: skipped %d malformed input lines\n", res.Malformed)
	}
	summary := render.NewSummaryLine(theme, render.LocaleFromEnv(os.Getenv("LANG")))
	fmt.Fprintln(stdout, summary.Render(res.Summary, res.Elapsed))

	switch {
	case runErr == nil:
		return res.ExitCode(), nil
	case errors.Is(runErr, context.Canceled):
		return ExitInterrupted, nil
	default:
		return ExitInputError, fmt.Errorf("reading test events: %w", runErr)
	}
}

// widthProbes picks how the terminal width is found.
func widthProbes(w io.Writer, fixed int) []leftright.WidthProbe {
	if fixed > 0 {
		return []leftright.WidthProbe{leftright.FixedWidth(fixed)}
	}
	if f, ok := w.(*os.File); ok {
		return leftright.DefaultProbes(f)
	}
	return []leftright.WidthProbe{leftright.EnvProbe("COLUMNS")}
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	if !debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
