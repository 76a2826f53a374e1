package commands

import (
	"flag"
	"fmt"
	"io"

	"github.com/tempus-dev/tempus-go/pkg/duration"
)

// RunNormalize runs the normalize command.
func RunNormalize(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("normalize", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printNormalizeUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	text := joinText(fs.Args())
	if text == "" {
		fmt.Fprintln(stderr, "Error: duration text required")
		printNormalizeUsage(stderr)
		return exitCommandError
	}

	d, err := duration.Parse(text)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitEvalError
	}

	fmt.Fprintln(stdout, d.Normalize().String())
	return exitSuccess
}

func printNormalizeUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: tempus-calc normalize <text...>

Applies exact carries (60 seconds to a minute, 24 hours to a day,
7 days to a week) and folds 12 months into a year. Days are never
folded into months.

Examples:
  tempus-calc normalize PT90M
  tempus-calc normalize P14D`)
}
