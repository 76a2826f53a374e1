// Package commands implements the tempus-calc CLI commands.
package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tempus-dev/tempus-go/pkg/duration"
	"github.com/tempus-dev/tempus-go/pkg/log"
	"github.com/tempus-dev/tempus-go/pkg/units"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitEvalError    = 2
)

// joinText reassembles positional arguments into one duration text, so
// phrase inputs ("2 days, 1 hour") survive shell word splitting without
// quoting.
func joinText(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// openTrace opens an append trace sink for the given path. An empty
// path yields a no-op logger. The returned func closes the sink.
func openTrace(path string, stderr io.Writer) (log.Logger, func()) {
	if path == "" {
		return log.NoopLogger{}, func() {}
	}
	fl, err := log.NewFileLogger(path)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: trace disabled: %v\n", err)
		return log.NoopLogger{}, func() {}
	}
	return fl, func() { _ = fl.Close() }
}

// newEvent starts a trace event for a one-shot command invocation.
func newEvent(sessionID string, category log.Category) log.Event {
	return log.Event{
		Timestamp: time.Now(),
		SessionID: sessionID,
		Source:    log.SourceCommand,
		Category:  category,
	}
}

// newSessionID returns the session identifier for one command run.
func newSessionID() string {
	return uuid.NewString()
}

// logParseFailure records a failed text-to-value conversion.
func logParseFailure(logger log.Logger, sessionID, input string, err error) {
	ev := newEvent(sessionID, log.CategoryError)
	ev.Error = &log.ErrorEventData{
		Kind:    classifyError(err),
		Message: err.Error(),
		Context: input,
	}
	logger.Log(ev)
}

// classifyError maps an engine error onto the trace taxonomy.
func classifyError(err error) log.ErrorKind {
	switch {
	case errors.Is(err, duration.ErrParse):
		return log.ErrorKindParse
	case errors.Is(err, duration.ErrRange):
		return log.ErrorKindRange
	case errors.Is(err, units.ErrUnknownUnit):
		return log.ErrorKindUnknownUnit
	default:
		return log.ErrorKindOther
	}
}
