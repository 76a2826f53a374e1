package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// writeTrace produces a trace file by running traced commands:
// a parse, a calendar add, and a failed parse.
func writeTrace(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.tlog")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	if code := RunParse([]string{"--trace", path, "P1DT2H"}, stdout, stderr); code != exitSuccess {
		t.Fatalf("parse failed with exit code %d: %s", code, stderr.String())
	}
	if code := RunAdd([]string{"--trace", path, "2019-01-31", "P1M"}, stdout, stderr); code != exitSuccess {
		t.Fatalf("add failed with exit code %d: %s", code, stderr.String())
	}
	if code := RunParse([]string{"--trace", path, "P1Y1W"}, stdout, stderr); code != exitEvalError {
		t.Fatalf("expected parse failure, got exit code %d", code)
	}

	return path
}

func TestRunLogView_All(t *testing.T) {
	path := writeTrace(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunLog([]string{"view", path}, stdout, stderr)

	if exitCode != exitSuccess {
		t.Fatalf("expected exit code %d, got %d: %s", exitSuccess, exitCode, stderr.String())
	}

	output := stdout.String()
	if !strings.Contains(output, "PARSE") {
		t.Errorf("expected PARSE event in output, got: %s", output)
	}
	if !strings.Contains(output, "Input:     P1DT2H") {
		t.Errorf("expected parse input in output, got: %s", output)
	}
	if !strings.Contains(output, "Canonical: P1D2H") {
		t.Errorf("expected canonical form in output, got: %s", output)
	}
	if !strings.Contains(output, "CALENDAR") {
		t.Errorf("expected CALENDAR event in output, got: %s", output)
	}
	if !strings.Contains(output, "Span:      P1M") {
		t.Errorf("expected calendar span in output, got: %s", output)
	}
	if !strings.Contains(output, "ERROR") {
		t.Errorf("expected ERROR event in output, got: %s", output)
	}
}

func TestRunLogView_CategoryFilter(t *testing.T) {
	path := writeTrace(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunLog([]string{"view", "--category", "error", path}, stdout, stderr)

	if exitCode != exitSuccess {
		t.Fatalf("expected exit code %d, got %d: %s", exitSuccess, exitCode, stderr.String())
	}

	output := stdout.String()
	if !strings.Contains(output, "P1Y1W") {
		t.Errorf("expected failing input in output, got: %s", output)
	}
	if strings.Contains(output, "CALENDAR") {
		t.Errorf("expected calendar events filtered out, got: %s", output)
	}
}

func TestRunLogView_SourceFilter(t *testing.T) {
	path := writeTrace(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	// All events came from one-shot commands.
	exitCode := RunLog([]string{"view", "--source", "interactive", path}, stdout, stderr)

	if exitCode != exitSuccess {
		t.Fatalf("expected exit code %d, got %d", exitSuccess, exitCode)
	}

	if stdout.Len() != 0 {
		t.Errorf("expected no interactive events, got: %s", stdout.String())
	}
}

func TestRunLogView_TimeWindow(t *testing.T) {
	path := writeTrace(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunLog([]string{"view", "--until", "2000-01-01T00:00:00Z", path}, stdout, stderr)

	if exitCode != exitSuccess {
		t.Fatalf("expected exit code %d, got %d", exitSuccess, exitCode)
	}
	if stdout.Len() != 0 {
		t.Errorf("expected no events before 2000, got: %s", stdout.String())
	}

	stdout.Reset()
	exitCode = RunLog([]string{"view", "--since", "2000-01-01T00:00:00Z", path}, stdout, stderr)

	if exitCode != exitSuccess {
		t.Fatalf("expected exit code %d, got %d", exitSuccess, exitCode)
	}
	if !strings.Contains(stdout.String(), "PARSE") {
		t.Errorf("expected all events since 2000, got: %s", stdout.String())
	}
}

func TestRunLogView_InvalidCategory(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunLog([]string{"view", "--category", "bogus", "whatever.tlog"}, stdout, stderr)

	if exitCode != exitCommandError {
		t.Errorf("expected exit code %d, got %d", exitCommandError, exitCode)
	}

	if !strings.Contains(stderr.String(), "invalid category") {
		t.Errorf("expected invalid category error, got: %s", stderr.String())
	}
}

func TestRunLogView_MissingFile(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunLog([]string{"view", filepath.Join(t.TempDir(), "missing.tlog")}, stdout, stderr)

	if exitCode != exitCommandError {
		t.Errorf("expected exit code %d, got %d", exitCommandError, exitCode)
	}

	if !strings.Contains(stderr.String(), "failed to open") {
		t.Errorf("expected open error, got: %s", stderr.String())
	}
}

func TestRunLogStats(t *testing.T) {
	path := writeTrace(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunLog([]string{"stats", path}, stdout, stderr)

	if exitCode != exitSuccess {
		t.Fatalf("expected exit code %d, got %d: %s", exitSuccess, exitCode, stderr.String())
	}

	output := stdout.String()
	if !strings.Contains(output, "=== Trace Statistics ===") {
		t.Errorf("expected stats header, got: %s", output)
	}
	if !strings.Contains(output, "Total Events: 3") {
		t.Errorf("expected three events, got: %s", output)
	}
	// Each command invocation is its own session.
	if !strings.Contains(output, "Sessions: 3") {
		t.Errorf("expected three sessions, got: %s", output)
	}
	if !strings.Contains(output, "Errors: 1") {
		t.Errorf("expected one error, got: %s", output)
	}
	if !strings.Contains(output, "PARSE:") || !strings.Contains(output, "CALENDAR:") {
		t.Errorf("expected per-category counts, got: %s", output)
	}
}

func TestRunLog_UnknownSubcommand(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunLog([]string{"bogus"}, stdout, stderr)

	if exitCode != exitCommandError {
		t.Errorf("expected exit code %d, got %d", exitCommandError, exitCode)
	}

	if !strings.Contains(stderr.String(), "Unknown log subcommand") {
		t.Errorf("expected unknown subcommand error, got: %s", stderr.String())
	}
}

func TestRunLog_NoArgs(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunLog([]string{}, stdout, stderr)

	if exitCode != exitCommandError {
		t.Errorf("expected exit code %d, got %d", exitCommandError, exitCode)
	}
}
