package commands

import (
	"flag"
	"fmt"
	"io"

	"github.com/tempus-dev/tempus-go/pkg/duration"
	"github.com/tempus-dev/tempus-go/pkg/locale"
	"github.com/tempus-dev/tempus-go/pkg/log"
)

// RunFmt runs the fmt command.
func RunFmt(cfg Config, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printFmtUsage(stderr) }

	loc := fs.String("locale", "", "BCP 47 tag (default from TEMPUS_LOCALE)")
	style := fs.String("style", "text", "Rendering style: text, compact or iso")
	trace := fs.String("trace", "", "Append trace events to this file")

	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	text := joinText(fs.Args())
	if text == "" {
		fmt.Fprintln(stderr, "Error: duration text required")
		printFmtUsage(stderr)
		return exitCommandError
	}
	if *loc == "" {
		*loc = cfg.Locale
	}

	formatter, err := newFormatter(*style, *loc)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	logger, closeTrace := openTrace(*trace, stderr)
	defer closeTrace()
	sessionID := newSessionID()

	d, err := duration.Parse(text)
	if err != nil {
		logParseFailure(logger, sessionID, text, err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitEvalError
	}

	rendered := d.FormatWith(formatter)

	ev := newEvent(sessionID, log.CategoryFormat)
	ev.Format = &log.FormatEvent{
		Value:  d.String(),
		Locale: *loc,
		Style:  *style,
		Output: rendered,
	}
	logger.Log(ev)

	fmt.Fprintln(stdout, rendered)
	return exitSuccess
}

// newFormatter builds the formatter for a style name. The locale only
// matters for the text style.
func newFormatter(style, loc string) (duration.Formatter, error) {
	switch style {
	case "text":
		return locale.NewText(loc)
	case "compact":
		return locale.Compact{}, nil
	case "iso":
		return locale.ISO{}, nil
	default:
		return nil, fmt.Errorf("unknown style %q (must be text, compact or iso)", style)
	}
}

func printFmtUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: tempus-calc fmt [flags] <text...>

Flags:
  --locale <tag>  BCP 47 tag, e.g. en, de, es (default from TEMPUS_LOCALE)
  --style <name>  text (localized phrase), compact ("1d2h30m") or iso
  --trace <file>  Append trace events to this file

Examples:
  tempus-calc fmt P1DT2H
  tempus-calc fmt --locale de PT6.5S
  tempus-calc fmt --style compact P1DT2H30M`)
}
