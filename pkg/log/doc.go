// Package log provides structured trace logging for duration evaluations.
//
// This package defines the Logger interface and Event types for capturing
// what the engine was asked to do and what it produced (parses, arithmetic,
// date interop, locale rendering, failures). It is separate from operational
// logging (slog) - the trace provides a complete machine-readable record for
// debugging and analysis.
//
// # Basic Usage
//
// Applications configure tracing by providing a Logger implementation:
//
//	// For development: log to console via slog
//	tracer := log.NewSlogAdapter(slog.Default())
//
//	// For batch analysis: write to binary file
//	tracer, _ := log.NewFileLogger("session.tlog")
//
//	// Both: use MultiLogger
//	tracer := log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Each event carries one category-specific payload:
//   - Parse: text converted to a value (ParseEvent)
//   - Eval: arithmetic and comparison (EvalEvent)
//   - Calendar: date arithmetic (CalendarEvent)
//   - Format: locale rendering (FormatEvent)
//   - Error: failures of any category (ErrorEventData)
//
// # File Format
//
// Trace files use CBOR encoding with .tlog extension. The tempus-calc log
// command provides viewing and filtering.
package log
