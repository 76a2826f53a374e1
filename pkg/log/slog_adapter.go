package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger.
// Useful for development when you want to see evaluations in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("source", event.Source.String()),
		slog.String("category", event.Category.String()),
	}

	// Add type-specific attributes
	switch {
	case event.Parse != nil:
		attrs = append(attrs,
			slog.String("input", event.Parse.Input),
			slog.String("canonical", event.Parse.Canonical),
		)
	case event.Eval != nil:
		attrs = append(attrs,
			slog.String("op", event.Eval.Op),
			slog.String("result", event.Eval.Result),
		)
		if len(event.Eval.Operands) > 0 {
			attrs = append(attrs, slog.Any("operands", event.Eval.Operands))
		}
		if event.Eval.Elapsed != nil {
			attrs = append(attrs, slog.Duration("elapsed", *event.Eval.Elapsed))
		}
	case event.Calendar != nil:
		attrs = append(attrs,
			slog.String("op", event.Calendar.Op),
			slog.String("base", event.Calendar.Base),
			slog.String("result", event.Calendar.Result),
		)
		if event.Calendar.Span != "" {
			attrs = append(attrs, slog.String("span", event.Calendar.Span))
		}
	case event.Format != nil:
		attrs = append(attrs,
			slog.String("value", event.Format.Value),
			slog.String("output", event.Format.Output),
		)
		if event.Format.Locale != "" {
			attrs = append(attrs, slog.String("locale", event.Format.Locale))
		}
		if event.Format.Style != "" {
			attrs = append(attrs, slog.String("style", event.Format.Style))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_kind", event.Error.Kind.String()),
			slog.String("error_msg", event.Error.Message),
		)
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "trace", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
