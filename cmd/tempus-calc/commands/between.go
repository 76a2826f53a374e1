package commands

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/tempus-dev/tempus-go/pkg/calendar"
	"github.com/tempus-dev/tempus-go/pkg/log"
)

// RunBetween runs the between command.
func RunBetween(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("between", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printBetweenUsage(stderr) }

	trace := fs.String("trace", "", "Append trace events to this file")

	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(stderr, "Error: two dates required")
		printBetweenUsage(stderr)
		return exitCommandError
	}

	from, err := calendar.ParseDate(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid date %q: %v\n", fs.Arg(0), err)
		return exitEvalError
	}
	to, err := calendar.ParseDate(fs.Arg(1))
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid date %q: %v\n", fs.Arg(1), err)
		return exitEvalError
	}

	logger, closeTrace := openTrace(*trace, stderr)
	defer closeTrace()

	span := calendar.Between(from, to)

	ev := newEvent(newSessionID(), log.CategoryCalendar)
	ev.Calendar = &log.CalendarEvent{
		Op:     "between",
		Base:   from.Format(time.RFC3339),
		Result: span.String(),
	}
	logger.Log(ev)

	fmt.Fprintln(stdout, span.String())
	return exitSuccess
}

func printBetweenUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: tempus-calc between [flags] <from> <to>

Dates are RFC 3339 timestamps or plain YYYY-MM-DD. The measured span
added to <from> always lands on <to>; a month reached only through
month-end clamping is reported as days.

Flags:
  --trace <file>  Append trace events to this file

Examples:
  tempus-calc between 2019-01-31 2019-02-28
  tempus-calc between 2024-01-01T10:00:00Z 2024-01-02T09:00:00Z`)
}
