// Package interactive provides the interactive duration calculator
// for tempus-calc.
package interactive

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tempus-dev/tempus-go/pkg/calendar"
	"github.com/tempus-dev/tempus-go/pkg/duration"
	"github.com/tempus-dev/tempus-go/pkg/locale"
	"github.com/tempus-dev/tempus-go/pkg/log"
	"github.com/tempus-dev/tempus-go/pkg/presets"
	"github.com/tempus-dev/tempus-go/pkg/timer"
)

// Options configures an interactive session.
type Options struct {
	// Locale is the BCP 47 tag for rendering results.
	Locale string

	// Store holds named presets, referenced as @name in expressions.
	// May be nil, in which case preset commands are unavailable.
	Store *presets.Store

	// Logger receives trace events. Nil disables tracing.
	Logger log.Logger
}

// Evaluator executes calculator input lines. It is the readline-free
// core of the interactive session, so it can be driven from tests.
type Evaluator struct {
	sessionID string
	logger    log.Logger
	store     *presets.Store
	timers    *timer.Manager
	text      *locale.Text
	loc       string
}

// NewEvaluator creates an evaluator with a fresh session ID.
func NewEvaluator(opts Options) (*Evaluator, error) {
	loc := opts.Locale
	if loc == "" {
		loc = "en"
	}
	text, err := locale.NewText(loc)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.NoopLogger{}
	}

	return &Evaluator{
		sessionID: uuid.NewString(),
		logger:    logger,
		store:     opts.Store,
		timers:    timer.NewManager(),
		text:      text,
		loc:       loc,
	}, nil
}

// SessionID returns the identifier stamped on this session's trace events.
func (e *Evaluator) SessionID() string {
	return e.sessionID
}

// Timers returns the session's timer manager, for expiry notification wiring.
func (e *Evaluator) Timers() *timer.Manager {
	return e.timers
}

// Close releases session resources. Armed timers are cancelled.
func (e *Evaluator) Close() {
	e.timers.StopAll()
}

// Dispatch executes one input line, writing results to w.
// It returns true when the session should end.
func (e *Evaluator) Dispatch(w io.Writer, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		e.printHelp(w)

	case "between":
		e.cmdBetween(w, args)

	case "add":
		e.cmdAdd(w, args)

	case "norm", "normalize":
		e.cmdNorm(w, args)

	case "cmp", "compare":
		e.cmdCmp(w, args)

	case "fmt", "format":
		e.cmdFmt(w, args)

	case "locale":
		e.cmdLocale(w, args)

	case "preset", "p":
		e.cmdPreset(w, args)

	case "timer", "t":
		e.cmdTimer(w, args)

	case "quit", "exit", "q":
		return true

	default:
		// Anything else is a duration expression.
		e.cmdExpression(w, input)
	}

	return false
}

func (e *Evaluator) printHelp(w io.Writer) {
	fmt.Fprintln(w, `
Tempus Calculator Commands:
  Expressions:
    <expr>                  - Evaluate a duration expression
                              e.g. P1D + 6h, 2 days + 90 minutes, @sprint * 2
                              Operators: + - * (factor), operands: ISO 8601,
                              phrases, or @preset references

  Calendar:
    between <date> <date>   - Measure the span between two dates
    add <date> <expr>       - Apply a duration to a date (negative subtracts)

  Operations:
    norm <expr>             - Normalize to canonical mixed units
    cmp <a> <b>             - Compare two durations (ISO or @preset)
    fmt <expr>              - Render in the current locale
    locale [tag]            - Show or switch the locale (en, de, es)

  Presets:
    preset save <name> <expr> - Store a named duration
    preset get <name>         - Show a named duration
    preset list               - List stored presets
    preset delete <name>      - Remove a named duration

  Timers:
    timer start <expr>      - Arm a one-shot timer (1s to 30 days, no months)
    timer list              - Show active timers
    timer stop <id>|all     - Cancel timers

  General:
    help                    - Show this help
    quit                    - Exit the calculator

  Dates use RFC 3339 or YYYY-MM-DD.`)
}

// cmdExpression evaluates a full input line as a duration expression.
func (e *Evaluator) cmdExpression(w io.Writer, input string) {
	start := time.Now()
	result, operands, err := e.evalExpression(input)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		e.logError(err, input)
		return
	}

	e.printResult(w, result)

	elapsed := time.Since(start)
	ev := e.newEvent(log.CategoryEval)
	ev.Eval = &log.EvalEvent{
		Op:       "expr",
		Operands: operands,
		Result:   result.String(),
		Elapsed:  &elapsed,
	}
	e.logger.Log(ev)
}

// printResult writes a duration as canonical ISO plus the locale rendering.
func (e *Evaluator) printResult(w io.Writer, d duration.Duration) {
	fmt.Fprintf(w, "= %s  (%s)\n", d, e.text.FormatDuration(d))
}

// evalExpression evaluates a left-to-right chain of + - * operations.
// Operand words between operators are grouped, so phrase inputs keep
// their spaces. It returns the result and the canonical operand forms.
func (e *Evaluator) evalExpression(input string) (duration.Duration, []string, error) {
	tokens := strings.Fields(input)

	// Split into operand groups separated by operator tokens.
	var groups []string
	var ops []string
	var current []string
	for _, tok := range tokens {
		switch tok {
		case "+", "-", "*":
			if len(current) == 0 {
				return duration.Zero, nil, fmt.Errorf("operator %q has no left operand", tok)
			}
			groups = append(groups, strings.Join(current, " "))
			ops = append(ops, tok)
			current = nil
		default:
			current = append(current, tok)
		}
	}
	if len(current) == 0 {
		if len(ops) == 0 {
			return duration.Zero, nil, errors.New("empty expression")
		}
		return duration.Zero, nil, fmt.Errorf("operator %q has no right operand", ops[len(ops)-1])
	}
	groups = append(groups, strings.Join(current, " "))

	acc, err := e.resolveOperand(groups[0])
	if err != nil {
		return duration.Zero, nil, err
	}
	operands := []string{acc.String()}

	for i, op := range ops {
		operand := groups[i+1]
		switch op {
		case "*":
			factor, err := strconv.ParseFloat(operand, 64)
			if err != nil {
				return duration.Zero, nil, fmt.Errorf("factor %q is not a number", operand)
			}
			operands = append(operands, operand)
			acc, err = acc.Scale(factor)
			if err != nil {
				return duration.Zero, nil, err
			}
		default:
			rhs, err := e.resolveOperand(operand)
			if err != nil {
				return duration.Zero, nil, err
			}
			operands = append(operands, rhs.String())
			if op == "+" {
				acc, err = acc.Add(rhs)
			} else {
				acc, err = acc.Sub(rhs)
			}
			if err != nil {
				return duration.Zero, nil, err
			}
		}
	}

	return acc, operands, nil
}

// resolveOperand parses one operand: a @preset reference or duration text.
func (e *Evaluator) resolveOperand(text string) (duration.Duration, error) {
	if strings.HasPrefix(text, "@") {
		if e.store == nil {
			return duration.Zero, errors.New("no preset store configured")
		}
		return e.store.Get(strings.TrimPrefix(text, "@"))
	}
	return duration.Parse(text)
}

// cmdBetween measures the span between two dates.
func (e *Evaluator) cmdBetween(w io.Writer, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(w, "Usage: between <date> <date>")
		return
	}

	from, err := calendar.ParseDate(args[0])
	if err != nil {
		fmt.Fprintf(w, "Invalid date: %v\n", err)
		e.logError(err, args[0])
		return
	}
	to, err := calendar.ParseDate(args[1])
	if err != nil {
		fmt.Fprintf(w, "Invalid date: %v\n", err)
		e.logError(err, args[1])
		return
	}

	span := calendar.Between(from, to)
	e.printResult(w, span)

	ev := e.newEvent(log.CategoryCalendar)
	ev.Calendar = &log.CalendarEvent{
		Op:     "between",
		Base:   from.Format(time.RFC3339),
		Result: span.String(),
	}
	e.logger.Log(ev)
}

// cmdAdd applies a duration expression to a date.
func (e *Evaluator) cmdAdd(w io.Writer, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(w, "Usage: add <date> <expr>")
		return
	}

	base, err := calendar.ParseDate(args[0])
	if err != nil {
		fmt.Fprintf(w, "Invalid date: %v\n", err)
		e.logError(err, args[0])
		return
	}

	span, _, err := e.evalExpression(strings.Join(args[1:], " "))
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		e.logError(err, strings.Join(args[1:], " "))
		return
	}

	result := calendar.Add(base, span)
	fmt.Fprintf(w, "= %s\n", result.Format(time.RFC3339))

	ev := e.newEvent(log.CategoryCalendar)
	ev.Calendar = &log.CalendarEvent{
		Op:     "add",
		Base:   base.Format(time.RFC3339),
		Span:   span.String(),
		Result: result.Format(time.RFC3339),
	}
	e.logger.Log(ev)
}

// cmdNorm normalizes an expression result.
func (e *Evaluator) cmdNorm(w io.Writer, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(w, "Usage: norm <expr>")
		return
	}

	input := strings.Join(args, " ")
	d, _, err := e.evalExpression(input)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		e.logError(err, input)
		return
	}

	norm := d.Normalize()
	e.printResult(w, norm)

	ev := e.newEvent(log.CategoryEval)
	ev.Eval = &log.EvalEvent{
		Op:       "normalize",
		Operands: []string{d.String()},
		Result:   norm.String(),
	}
	e.logger.Log(ev)
}

// cmdCmp compares two durations.
func (e *Evaluator) cmdCmp(w io.Writer, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(w, "Usage: cmp <a> <b>")
		return
	}

	a, err := e.resolveOperand(args[0])
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		e.logError(err, args[0])
		return
	}
	b, err := e.resolveOperand(args[1])
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		e.logError(err, args[1])
		return
	}

	var symbol string
	switch a.Compare(b) {
	case -1:
		symbol = "<"
	case 1:
		symbol = ">"
	default:
		symbol = "=="
	}

	fmt.Fprintf(w, "%s %s %s\n", a, symbol, b)
	if a.Years() != 0 || a.Months() != 0 || b.Years() != 0 || b.Months() != 0 {
		fmt.Fprintln(w, "(approximate: compared using average month length)")
	}

	ev := e.newEvent(log.CategoryEval)
	ev.Eval = &log.EvalEvent{
		Op:       "compare",
		Operands: []string{a.String(), b.String()},
		Result:   symbol,
	}
	e.logger.Log(ev)
}

// cmdFmt renders an expression result in the current locale.
func (e *Evaluator) cmdFmt(w io.Writer, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(w, "Usage: fmt <expr>")
		return
	}

	input := strings.Join(args, " ")
	d, _, err := e.evalExpression(input)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		e.logError(err, input)
		return
	}

	rendered := e.text.FormatDuration(d)
	fmt.Fprintln(w, rendered)

	ev := e.newEvent(log.CategoryFormat)
	ev.Format = &log.FormatEvent{
		Value:  d.String(),
		Locale: e.loc,
		Style:  "text",
		Output: rendered,
	}
	e.logger.Log(ev)
}

// cmdLocale shows or switches the session locale.
func (e *Evaluator) cmdLocale(w io.Writer, args []string) {
	if len(args) == 0 {
		fmt.Fprintf(w, "Locale: %s\n", e.loc)
		return
	}

	text, err := locale.NewText(args[0])
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	e.text = text
	e.loc = args[0]
	fmt.Fprintf(w, "Locale set to %s\n", e.loc)
}

// cmdPreset manages the named preset store.
func (e *Evaluator) cmdPreset(w io.Writer, args []string) {
	if e.store == nil {
		fmt.Fprintln(w, "No preset store configured")
		return
	}
	if len(args) < 1 {
		fmt.Fprintln(w, "Usage: preset save|get|list|delete ...")
		return
	}

	switch args[0] {
	case "save":
		if len(args) < 3 {
			fmt.Fprintln(w, "Usage: preset save <name> <expr>")
			return
		}
		name := args[1]
		input := strings.Join(args[2:], " ")
		d, _, err := e.evalExpression(input)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			e.logError(err, input)
			return
		}
		if err := e.store.Save(name, d); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return
		}
		fmt.Fprintf(w, "%s = %s\n", name, d)

	case "get":
		if len(args) < 2 {
			fmt.Fprintln(w, "Usage: preset get <name>")
			return
		}
		d, err := e.store.Get(args[1])
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return
		}
		e.printResult(w, d)

	case "list", "ls":
		names := e.store.List()
		if len(names) == 0 {
			fmt.Fprintln(w, "No presets saved")
			return
		}
		for _, name := range names {
			d, err := e.store.Get(name)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "  %-20s %s\n", name, d)
		}

	case "delete", "del", "rm":
		if len(args) < 2 {
			fmt.Fprintln(w, "Usage: preset delete <name>")
			return
		}
		if err := e.store.Delete(args[1]); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return
		}
		fmt.Fprintf(w, "Deleted %s\n", args[1])

	default:
		fmt.Fprintf(w, "Unknown preset subcommand: %s\n", args[0])
	}
}

// cmdTimer manages the session's one-shot timers.
func (e *Evaluator) cmdTimer(w io.Writer, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(w, "Usage: timer start|list|stop ...")
		return
	}

	switch args[0] {
	case "start":
		if len(args) < 2 {
			fmt.Fprintln(w, "Usage: timer start <expr>")
			return
		}
		input := strings.Join(args[1:], " ")
		d, _, err := e.evalExpression(input)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			e.logError(err, input)
			return
		}
		id, err := e.timers.Start(d)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return
		}
		if t := e.timers.Get(id); t != nil {
			fmt.Fprintf(w, "Timer %s armed for %s (fires at %s)\n",
				shortID(id), d, t.ExpiresAt().Format("15:04:05"))
		} else {
			fmt.Fprintf(w, "Timer %s armed for %s\n", shortID(id), d)
		}

	case "list", "ls":
		active := e.timers.Active()
		if len(active) == 0 {
			fmt.Fprintln(w, "No active timers")
			return
		}
		sort.Slice(active, func(i, j int) bool {
			return active[i].ExpiresAt().Before(active[j].ExpiresAt())
		})
		for _, t := range active {
			fmt.Fprintf(w, "  [%s] %s remaining (armed for %s)\n",
				shortID(t.ID), t.RemainingTime().Round(time.Second), t.Value)
		}

	case "stop":
		if len(args) < 2 {
			fmt.Fprintln(w, "Usage: timer stop <id>|all")
			return
		}
		if args[1] == "all" {
			e.timers.StopAll()
			fmt.Fprintln(w, "All timers stopped")
			return
		}
		id, ok := e.findTimer(args[1])
		if !ok {
			fmt.Fprintf(w, "Timer not found: %s\n", args[1])
			return
		}
		if err := e.timers.Stop(id); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return
		}
		fmt.Fprintf(w, "Timer %s stopped\n", shortID(id))

	default:
		fmt.Fprintf(w, "Unknown timer subcommand: %s\n", args[0])
	}
}

// findTimer resolves a timer handle from an ID prefix.
func (e *Evaluator) findTimer(prefix string) (uuid.UUID, bool) {
	for _, t := range e.timers.Active() {
		if strings.HasPrefix(t.ID.String(), strings.ToLower(prefix)) {
			return t.ID, true
		}
	}
	return uuid.Nil, false
}

// newEvent starts a trace event stamped with this session.
func (e *Evaluator) newEvent(category log.Category) log.Event {
	return log.Event{
		Timestamp: time.Now(),
		SessionID: e.sessionID,
		Source:    log.SourceInteractive,
		Category:  category,
	}
}

// logError records a failed operation on the trace.
func (e *Evaluator) logError(err error, context string) {
	ev := e.newEvent(log.CategoryError)
	ev.Error = &log.ErrorEventData{
		Kind:    classifyKind(err),
		Message: err.Error(),
		Context: context,
	}
	e.logger.Log(ev)
}

// classifyKind maps an engine error onto the trace taxonomy.
func classifyKind(err error) log.ErrorKind {
	switch {
	case errors.Is(err, duration.ErrParse):
		return log.ErrorKindParse
	case errors.Is(err, duration.ErrRange):
		return log.ErrorKindRange
	default:
		return log.ErrorKindOther
	}
}

// shortID returns the first 8 characters of a timer handle.
func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
