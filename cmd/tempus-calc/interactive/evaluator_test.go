package interactive

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/tempus-dev/tempus-go/pkg/duration"
	"github.com/tempus-dev/tempus-go/pkg/log"
	"github.com/tempus-dev/tempus-go/pkg/presets"
)

// captureLogger records trace events for assertions.
type captureLogger struct {
	events []log.Event
}

func (c *captureLogger) Log(ev log.Event) { c.events = append(c.events, ev) }

func mustParse(t *testing.T, text string) duration.Duration {
	t.Helper()
	d, err := duration.Parse(text)
	if err != nil {
		t.Fatalf("parse %q: %v", text, err)
	}
	return d
}

func newTestEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	e, err := NewEvaluator(Options{Locale: "en"})
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func dispatch(t *testing.T, e *Evaluator, line string) string {
	t.Helper()
	buf := &bytes.Buffer{}
	if e.Dispatch(buf, line) {
		t.Fatalf("unexpected quit from %q", line)
	}
	return buf.String()
}

func TestDispatch_Expression(t *testing.T) {
	e := newTestEvaluator(t)

	out := dispatch(t, e, "P1D + 6h")

	if !strings.Contains(out, "= P1D6H") {
		t.Errorf("expected P1D6H, got: %s", out)
	}
	if !strings.Contains(out, "1 day, 6 hours") {
		t.Errorf("expected locale rendering, got: %s", out)
	}
}

func TestDispatch_PhraseOperands(t *testing.T) {
	e := newTestEvaluator(t)

	// Operand words between operators keep their spaces.
	out := dispatch(t, e, "2 days + 90 minutes")

	if !strings.Contains(out, "= P2DT1H30M") {
		t.Errorf("expected P2DT1H30M, got: %s", out)
	}
}

func TestDispatch_ScaleAndChain(t *testing.T) {
	e := newTestEvaluator(t)

	out := dispatch(t, e, "P1D * 2.5")
	if !strings.Contains(out, "= P2D12H") {
		t.Errorf("expected P2D12H, got: %s", out)
	}

	out = dispatch(t, e, "P1D + PT20H - PT2H")
	if !strings.Contains(out, "= P1D18H") {
		t.Errorf("expected P1D18H, got: %s", out)
	}
}

func TestDispatch_PresetReference(t *testing.T) {
	store := presets.NewStore(afero.NewMemMapFs(), "/presets.json")
	if err := store.Save("sprint", mustParse(t, "P2W")); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	e, err := NewEvaluator(Options{Locale: "en", Store: store})
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}
	t.Cleanup(e.Close)

	out := dispatch(t, e, "@sprint * 2")
	if !strings.Contains(out, "= P4W") {
		t.Errorf("expected P4W, got: %s", out)
	}

	out = dispatch(t, e, "@missing + P1D")
	if !strings.Contains(out, "not found") {
		t.Errorf("expected not found error, got: %s", out)
	}
}

func TestDispatch_ExpressionErrors(t *testing.T) {
	e := newTestEvaluator(t)

	out := dispatch(t, e, "+ P1D")
	if !strings.Contains(out, "no left operand") {
		t.Errorf("expected left operand error, got: %s", out)
	}

	out = dispatch(t, e, "P1D +")
	if !strings.Contains(out, "no right operand") {
		t.Errorf("expected right operand error, got: %s", out)
	}

	out = dispatch(t, e, "P1D * banana")
	if !strings.Contains(out, "not a number") {
		t.Errorf("expected factor error, got: %s", out)
	}

	out = dispatch(t, e, "P1M - P1D")
	if !strings.Contains(out, "Error:") {
		t.Errorf("expected mixed-sign error, got: %s", out)
	}
}

func TestDispatch_Between(t *testing.T) {
	e := newTestEvaluator(t)

	out := dispatch(t, e, "between 2019-01-31 2019-02-28")
	if !strings.Contains(out, "= P28D") {
		t.Errorf("expected P28D, got: %s", out)
	}

	out = dispatch(t, e, "between notadate 2019-01-01")
	if !strings.Contains(out, "Invalid date") {
		t.Errorf("expected invalid date error, got: %s", out)
	}
}

func TestDispatch_Add(t *testing.T) {
	e := newTestEvaluator(t)

	out := dispatch(t, e, "add 2019-01-31 P1M")
	if !strings.Contains(out, "= 2019-02-28T00:00:00Z") {
		t.Errorf("expected clamped date, got: %s", out)
	}

	// The span is a full expression.
	out = dispatch(t, e, "add 2019-01-31 P1M + P1D")
	if !strings.Contains(out, "= 2019-03-01T00:00:00Z") {
		t.Errorf("expected 2019-03-01, got: %s", out)
	}
}

func TestDispatch_Normalize(t *testing.T) {
	e := newTestEvaluator(t)

	out := dispatch(t, e, "norm PT90M")
	if !strings.Contains(out, "= PT1H30M") {
		t.Errorf("expected PT1H30M, got: %s", out)
	}
}

func TestDispatch_Compare(t *testing.T) {
	e := newTestEvaluator(t)

	out := dispatch(t, e, "cmp P1M P30D")
	if !strings.Contains(out, "P1M > P30D") {
		t.Errorf("expected P1M > P30D, got: %s", out)
	}
	if !strings.Contains(out, "approximate") {
		t.Errorf("expected approximate note, got: %s", out)
	}

	out = dispatch(t, e, "cmp PT1M PT60S")
	if !strings.Contains(out, "PT1M == PT60S") {
		t.Errorf("expected equality, got: %s", out)
	}
	if strings.Contains(out, "approximate") {
		t.Errorf("exact comparison should have no approximate note, got: %s", out)
	}
}

func TestDispatch_FormatAndLocale(t *testing.T) {
	e := newTestEvaluator(t)

	out := dispatch(t, e, "fmt P1DT2H")
	if !strings.Contains(out, "1 day, 2 hours") {
		t.Errorf("expected English phrase, got: %s", out)
	}

	out = dispatch(t, e, "locale de")
	if !strings.Contains(out, "Locale set to de") {
		t.Errorf("expected locale switch, got: %s", out)
	}

	out = dispatch(t, e, "fmt P1DT2H")
	if !strings.Contains(out, "1 Tag, 2 Stunden") {
		t.Errorf("expected German phrase, got: %s", out)
	}

	out = dispatch(t, e, "locale")
	if !strings.Contains(out, "Locale: de") {
		t.Errorf("expected current locale, got: %s", out)
	}
}

func TestDispatch_PresetCommands(t *testing.T) {
	store := presets.NewStore(afero.NewMemMapFs(), "/presets.json")
	e, err := NewEvaluator(Options{Locale: "en", Store: store})
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}
	t.Cleanup(e.Close)

	out := dispatch(t, e, "preset save standup PT15M")
	if !strings.Contains(out, "standup = PT15M") {
		t.Errorf("expected save confirmation, got: %s", out)
	}

	out = dispatch(t, e, "preset list")
	if !strings.Contains(out, "standup") {
		t.Errorf("expected standup in list, got: %s", out)
	}

	out = dispatch(t, e, "preset get standup")
	if !strings.Contains(out, "= PT15M") {
		t.Errorf("expected PT15M, got: %s", out)
	}

	out = dispatch(t, e, "preset delete standup")
	if !strings.Contains(out, "Deleted standup") {
		t.Errorf("expected delete confirmation, got: %s", out)
	}

	out = dispatch(t, e, "preset list")
	if !strings.Contains(out, "No presets saved") {
		t.Errorf("expected empty list, got: %s", out)
	}
}

func TestDispatch_PresetWithoutStore(t *testing.T) {
	e := newTestEvaluator(t)

	out := dispatch(t, e, "preset list")
	if !strings.Contains(out, "No preset store configured") {
		t.Errorf("expected missing store message, got: %s", out)
	}
}

func TestDispatch_Timers(t *testing.T) {
	e := newTestEvaluator(t)

	out := dispatch(t, e, "timer start PT1H")
	if !strings.Contains(out, "armed for P1H") {
		t.Errorf("expected armed confirmation, got: %s", out)
	}

	// "Timer <id> armed for ..." carries the handle prefix.
	id := strings.Fields(out)[1]

	out = dispatch(t, e, "timer list")
	if !strings.Contains(out, "remaining") {
		t.Errorf("expected remaining time in list, got: %s", out)
	}

	out = dispatch(t, e, "timer stop "+id)
	if !strings.Contains(out, "stopped") {
		t.Errorf("expected stop confirmation, got: %s", out)
	}

	out = dispatch(t, e, "timer list")
	if !strings.Contains(out, "No active timers") {
		t.Errorf("expected empty timer list, got: %s", out)
	}
}

func TestDispatch_TimerRejectsCalendarUnits(t *testing.T) {
	e := newTestEvaluator(t)

	out := dispatch(t, e, "timer start P1M")
	if !strings.Contains(out, "calendar units") {
		t.Errorf("expected calendar units error, got: %s", out)
	}

	out = dispatch(t, e, "timer start PT0.5S")
	if !strings.Contains(out, "invalid timer duration") {
		t.Errorf("expected bounds error, got: %s", out)
	}
}

func TestDispatch_TimerStopAll(t *testing.T) {
	e := newTestEvaluator(t)

	dispatch(t, e, "timer start PT1H")
	dispatch(t, e, "timer start PT2H")

	out := dispatch(t, e, "timer stop all")
	if !strings.Contains(out, "All timers stopped") {
		t.Errorf("expected stop all confirmation, got: %s", out)
	}

	if e.Timers().Count() != 0 {
		t.Errorf("expected no timers, got %d", e.Timers().Count())
	}
}

func TestDispatch_Quit(t *testing.T) {
	e := newTestEvaluator(t)
	buf := &bytes.Buffer{}

	if !e.Dispatch(buf, "quit") {
		t.Error("expected quit to end the session")
	}
	if !e.Dispatch(buf, "exit") {
		t.Error("expected exit to end the session")
	}
	if e.Dispatch(buf, "help") {
		t.Error("help should not end the session")
	}
	if !strings.Contains(buf.String(), "Tempus Calculator Commands") {
		t.Errorf("expected help text, got: %s", buf.String())
	}
}

func TestDispatch_TraceEvents(t *testing.T) {
	capture := &captureLogger{}
	e, err := NewEvaluator(Options{Locale: "en", Logger: capture})
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}
	t.Cleanup(e.Close)

	dispatch(t, e, "P1D + PT5H")

	if len(capture.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(capture.events))
	}
	ev := capture.events[0]
	if ev.Source != log.SourceInteractive {
		t.Errorf("expected interactive source, got %v", ev.Source)
	}
	if ev.SessionID != e.SessionID() {
		t.Errorf("expected session ID %s, got %s", e.SessionID(), ev.SessionID)
	}
	if ev.Eval == nil {
		t.Fatal("expected eval payload")
	}
	if ev.Eval.Op != "expr" {
		t.Errorf("expected expr op, got %q", ev.Eval.Op)
	}
	if len(ev.Eval.Operands) != 2 || ev.Eval.Operands[0] != "P1D" || ev.Eval.Operands[1] != "P5H" {
		t.Errorf("unexpected operands: %v", ev.Eval.Operands)
	}
	if ev.Eval.Result != "P1D5H" {
		t.Errorf("expected P1D5H result, got %q", ev.Eval.Result)
	}
	if ev.Eval.Elapsed == nil {
		t.Error("expected elapsed time")
	}

	dispatch(t, e, "soon")

	last := capture.events[len(capture.events)-1]
	if last.Category != log.CategoryError {
		t.Fatalf("expected error event, got %v", last.Category)
	}
	if last.Error == nil || last.Error.Kind != log.ErrorKindParse {
		t.Errorf("expected parse error kind, got %+v", last.Error)
	}
	if last.Error.Context != "soon" {
		t.Errorf("expected failing input as context, got %q", last.Error.Context)
	}
}
