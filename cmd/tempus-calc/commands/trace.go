package commands

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/tempus-dev/tempus-go/pkg/log"
)

// RunLog runs the log command group: view and stats over trace files.
func RunLog(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printLogUsage(stderr)
		return exitCommandError
	}

	switch args[0] {
	case "view":
		return runLogView(args[1:], stdout, stderr)
	case "stats":
		return runLogStats(args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "Unknown log subcommand: %s\n", args[0])
		printLogUsage(stderr)
		return exitCommandError
	}
}

func runLogView(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("log view", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printLogUsage(stderr) }

	session := fs.String("session", "", "Filter by session ID")
	source := fs.String("source", "", "Filter by source (command, interactive)")
	category := fs.String("category", "", "Filter by category (parse, eval, calendar, format, error)")
	since := fs.String("since", "", "Only events at or after this RFC 3339 time")
	until := fs.String("until", "", "Only events before this RFC 3339 time")

	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(stderr, "Error: trace file path required")
		printLogUsage(stderr)
		return exitCommandError
	}

	filter := log.Filter{SessionID: *session}
	if *source != "" {
		s, err := parseSourceFlag(*source)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCommandError
		}
		filter.Source = &s
	}
	if *category != "" {
		c, err := parseCategoryFlag(*category)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCommandError
		}
		filter.Category = &c
	}
	if *since != "" {
		t, err := time.Parse(time.RFC3339, *since)
		if err != nil {
			fmt.Fprintf(stderr, "Error: invalid --since: %v\n", err)
			return exitCommandError
		}
		filter.TimeStart = &t
	}
	if *until != "" {
		t, err := time.Parse(time.RFC3339, *until)
		if err != nil {
			fmt.Fprintf(stderr, "Error: invalid --until: %v\n", err)
			return exitCommandError
		}
		filter.TimeEnd = &t
	}

	reader, err := log.NewFilteredReader(fs.Arg(0), filter)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to open trace file: %v\n", err)
		return exitCommandError
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintf(stderr, "Error: failed to read event: %v\n", err)
			return exitCommandError
		}
		formatTraceEvent(stdout, event)
	}

	return exitSuccess
}

// formatTraceEvent writes a human-readable representation of the event.
func formatTraceEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [sess:%s] %-11s %s\n",
		ts, shortenSessionID(event.SessionID), event.Source.String(), event.Category.String())

	switch {
	case event.Parse != nil:
		fmt.Fprintf(w, "  Input:     %s\n", event.Parse.Input)
		fmt.Fprintf(w, "  Canonical: %s\n", event.Parse.Canonical)
	case event.Eval != nil:
		fmt.Fprintf(w, "  Op:        %s\n", event.Eval.Op)
		if len(event.Eval.Operands) > 0 {
			fmt.Fprintf(w, "  Operands:  %s\n", strings.Join(event.Eval.Operands, ", "))
		}
		fmt.Fprintf(w, "  Result:    %s\n", event.Eval.Result)
		if event.Eval.Elapsed != nil {
			fmt.Fprintf(w, "  Elapsed:   %s\n", event.Eval.Elapsed)
		}
	case event.Calendar != nil:
		fmt.Fprintf(w, "  Op:        %s\n", event.Calendar.Op)
		fmt.Fprintf(w, "  Base:      %s\n", event.Calendar.Base)
		if event.Calendar.Span != "" {
			fmt.Fprintf(w, "  Span:      %s\n", event.Calendar.Span)
		}
		fmt.Fprintf(w, "  Result:    %s\n", event.Calendar.Result)
	case event.Format != nil:
		fmt.Fprintf(w, "  Value:     %s\n", event.Format.Value)
		if event.Format.Locale != "" {
			fmt.Fprintf(w, "  Locale:    %s\n", event.Format.Locale)
		}
		if event.Format.Style != "" {
			fmt.Fprintf(w, "  Style:     %s\n", event.Format.Style)
		}
		fmt.Fprintf(w, "  Output:    %s\n", event.Format.Output)
	case event.Error != nil:
		fmt.Fprintf(w, "  Kind:      %s\n", event.Error.Kind.String())
		fmt.Fprintf(w, "  Message:   %s\n", event.Error.Message)
		if event.Error.Context != "" {
			fmt.Fprintf(w, "  Context:   %s\n", event.Error.Context)
		}
	}

	fmt.Fprintln(w)
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// TraceStats holds aggregate statistics about a trace file.
type TraceStats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	EventsBySource   map[log.Source]int
	Sessions         map[string]*SessionStats
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for a single session.
type SessionStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
}

func runLogStats(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("log stats", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printLogUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(stderr, "Error: trace file path required")
		printLogUsage(stderr)
		return exitCommandError
	}

	reader, err := log.NewReader(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to open trace file: %v\n", err)
		return exitCommandError
	}
	defer reader.Close()

	stats := &TraceStats{
		EventsByCategory: make(map[log.Category]int),
		EventsBySource:   make(map[log.Source]int),
		Sessions:         make(map[string]*SessionStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintf(stderr, "Error: failed to read event: %v\n", err)
			return exitCommandError
		}

		stats.TotalEvents++
		stats.EventsByCategory[event.Category]++
		stats.EventsBySource[event.Source]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		sess, ok := stats.Sessions[event.SessionID]
		if !ok {
			sess = &SessionStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
			stats.Sessions[event.SessionID] = sess
		}
		sess.Events++
		if event.Timestamp.After(sess.LastSeen) {
			sess.LastSeen = event.Timestamp
		}

		if event.Error != nil {
			stats.Errors++
		}
	}

	printTraceStats(stdout, stats)
	return exitSuccess
}

func printTraceStats(w io.Writer, stats *TraceStats) {
	fmt.Fprintln(w, "=== Trace Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryParse, log.CategoryEval, log.CategoryCalendar, log.CategoryFormat, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Source:")
	for _, src := range []log.Source{log.SourceCommand, log.SourceInteractive} {
		if count := stats.EventsBySource[src]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", src.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	if len(stats.Sessions) > 0 {
		type sessInfo struct {
			id    string
			stats *SessionStats
		}
		sessions := make([]sessInfo, 0, len(stats.Sessions))
		for id, ss := range stats.Sessions {
			sessions = append(sessions, sessInfo{id, ss})
		}
		sort.Slice(sessions, func(i, j int) bool {
			return sessions[i].stats.FirstSeen.Before(sessions[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, s := range sessions {
			span := s.stats.LastSeen.Sub(s.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, span %s\n", shortenSessionID(s.id), s.stats.Events, span)
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}

// parseSourceFlag parses a source name (case-insensitive).
func parseSourceFlag(s string) (log.Source, error) {
	switch strings.ToLower(s) {
	case "command":
		return log.SourceCommand, nil
	case "interactive":
		return log.SourceInteractive, nil
	default:
		return 0, fmt.Errorf("invalid source: %s (must be command or interactive)", s)
	}
}

// parseCategoryFlag parses a category name (case-insensitive).
func parseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "parse":
		return log.CategoryParse, nil
	case "eval":
		return log.CategoryEval, nil
	case "calendar":
		return log.CategoryCalendar, nil
	case "format":
		return log.CategoryFormat, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be parse, eval, calendar, format or error)", s)
	}
}

func printLogUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: tempus-calc log <subcommand> [flags] <file.tlog>

Subcommands:
  view   Print trace events in human-readable form
  stats  Show aggregate statistics about a trace file

View flags:
  --session <id>      Filter by session ID
  --source <name>     command or interactive
  --category <name>   parse, eval, calendar, format or error
  --since <time>      Only events at or after this RFC 3339 time
  --until <time>      Only events before this RFC 3339 time

Examples:
  tempus-calc log view session.tlog
  tempus-calc log view --category error session.tlog
  tempus-calc log stats session.tlog`)
}
