package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/tempus-dev/tempus-go/pkg/duration"
	"github.com/tempus-dev/tempus-go/pkg/log"
)

// ParseOutput is the JSON shape of a parse result.
type ParseOutput struct {
	Input     string           `json:"input"`
	Canonical string           `json:"canonical"`
	Negative  bool             `json:"negative,omitempty"`
	Fields    map[string]int64 `json:"fields"`
	TotalMS   int64            `json:"total_ms"`
}

// RunParse runs the parse command.
func RunParse(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printParseUsage(stderr) }

	asJSON := fs.Bool("json", false, "Output the breakdown as JSON")
	trace := fs.String("trace", "", "Append trace events to this file")

	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	text := joinText(fs.Args())
	if text == "" {
		fmt.Fprintln(stderr, "Error: duration text required")
		printParseUsage(stderr)
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

	ev := newEvent(sessionID, log.CategoryParse)
	ev.Parse = &log.ParseEvent{Input: text, Canonical: d.String()}
	logger.Log(ev)

	out := buildParseOutput(text, d)
	if *asJSON {
		encoded, _ := json.MarshalIndent(out, "", "  ")
		fmt.Fprintln(stdout, string(encoded))
		return exitSuccess
	}

	printParseOutput(stdout, out)
	return exitSuccess
}

func buildParseOutput(input string, d duration.Duration) ParseOutput {
	p := d.Parts()
	fields := make(map[string]int64)
	add := func(name string, v int64) {
		if v != 0 {
			fields[name] = v
		}
	}
	add("years", p.Years)
	add("months", p.Months)
	add("weeks", p.Weeks)
	add("days", p.Days)
	add("hours", p.Hours)
	add("minutes", p.Minutes)
	add("seconds", p.Seconds)
	add("nanoseconds", int64(p.Nanos))

	return ParseOutput{
		Input:     input,
		Canonical: d.String(),
		Negative:  p.Negative,
		Fields:    fields,
		TotalMS:   d.TotalMilliseconds(),
	}
}

func printParseOutput(w io.Writer, out ParseOutput) {
	fmt.Fprintf(w, "Canonical: %s\n", out.Canonical)
	for _, name := range []string{"years", "months", "weeks", "days", "hours", "minutes", "seconds", "nanoseconds"} {
		if v, ok := out.Fields[name]; ok {
			fmt.Fprintf(w, "  %-12s %d\n", name, v)
		}
	}
	if len(out.Fields) == 0 {
		fmt.Fprintln(w, "  (zero)")
	}
	fmt.Fprintf(w, "Approx: %d ms\n", out.TotalMS)
}

func printParseUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: tempus-calc parse [flags] <text...>

Accepts ISO 8601 durations ("P1DT2H", "-PT1.5S", "P3W") and human
phrases ("2 days, 1 hour", "1h30m", "90 minutes").

Flags:
  --json          Output the breakdown as JSON
  --trace <file>  Append trace events to this file

Examples:
  tempus-calc parse P1DT5H30M
  tempus-calc parse --json 2 days, 1 hour`)
}
