package commands

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/tempus-dev/tempus-go/pkg/calendar"
	"github.com/tempus-dev/tempus-go/pkg/duration"
	"github.com/tempus-dev/tempus-go/pkg/log"
)

// RunAdd runs the add command. Durations apply in the order given, so
// "add 2019-01-31 P1M P1D" steps through 2019-02-28 to 2019-03-01.
func RunAdd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printAddUsage(stderr) }

	trace := fs.String("trace", "", "Append trace events to this file")

	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if fs.NArg() < 2 {
		fmt.Fprintln(stderr, "Error: date and at least one duration required")
		printAddUsage(stderr)
		return exitCommandError
	}

	base, err := calendar.ParseDate(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid date %q: %v\n", fs.Arg(0), err)
		return exitEvalError
	}

	logger, closeTrace := openTrace(*trace, stderr)
	defer closeTrace()
	sessionID := newSessionID()

	result := base
	for _, text := range fs.Args()[1:] {
		d, err := duration.Parse(text)
		if err != nil {
			logParseFailure(logger, sessionID, text, err)
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitEvalError
		}
		stepBase := result
		result = calendar.Add(result, d)

		ev := newEvent(sessionID, log.CategoryCalendar)
		ev.Calendar = &log.CalendarEvent{
			Op:     "add",
			Base:   stepBase.Format(time.RFC3339),
			Span:   d.String(),
			Result: result.Format(time.RFC3339),
		}
		logger.Log(ev)
	}

	fmt.Fprintln(stdout, result.Format(time.RFC3339))
	return exitSuccess
}

func printAddUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: tempus-calc add [flags] <date> <duration> [<duration>...]

The date is an RFC 3339 timestamp or plain YYYY-MM-DD. Years and
months move through the calendar with month-end clamping; negative
durations subtract.

Flags:
  --trace <file>  Append trace events to this file

Examples:
  tempus-calc add 2019-01-31 P1M
  tempus-calc add 2024-01-01T20:00:00Z PT6H
  tempus-calc add 2024-03-31 -P1M`)
}
