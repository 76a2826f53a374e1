package commands

import (
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/tempus-dev/tempus-go/cmd/tempus-calc/interactive"
	"github.com/tempus-dev/tempus-go/pkg/log"
	"github.com/tempus-dev/tempus-go/pkg/presets"
)

// RunRepl starts the interactive calculator.
func RunRepl(cfg Config, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printReplUsage(stderr) }

	tracePath := fs.String("trace", "", "Append trace events to this file")
	loc := fs.String("locale", cfg.Locale, "Locale for rendering results")

	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}

	logger, closeTrace := openTrace(*tracePath, stderr)
	defer closeTrace()

	// Verbose mode mirrors trace events to stderr for debugging.
	if cfg.Verbose {
		handler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		logger = log.NewMultiLogger(logger, log.NewSlogAdapter(slog.New(handler)))
	}

	path, err := presetPath(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	store := presets.NewStore(afero.NewOsFs(), path)
	if err := store.Load(); err != nil {
		fmt.Fprintf(stderr, "Warning: presets unavailable: %v\n", err)
		store = nil
	}

	session, err := interactive.New(interactive.Options{
		Locale: *loc,
		Store:  store,
		Logger: logger,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	if err := session.Run(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	return exitSuccess
}

func printReplUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: tempus-calc repl [flags]

Starts an interactive calculator that evaluates duration expressions,
measures date spans, manages presets and arms timers. Type 'help' at
the prompt for the command list.

Flags:
  --trace <file>   Append trace events to this file
  --locale <tag>   Locale for rendering results (default from TEMPUS_LOCALE)

Examples:
  tempus-calc repl
  tempus-calc repl --locale de --trace session.tlog`)
}
