package log

import "time"

// Event represents a trace event captured while evaluating duration
// expressions. CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID uniquely identifies the originating session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Source indicates which surface produced the event.
	Source Source `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Type-specific payload (one of these will be set).
	Parse    *ParseEvent     `cbor:"10,keyasint,omitempty"` // Text to value
	Eval     *EvalEvent      `cbor:"11,keyasint,omitempty"` // Arithmetic and comparison
	Calendar *CalendarEvent  `cbor:"12,keyasint,omitempty"` // Date interop
	Format   *FormatEvent    `cbor:"13,keyasint,omitempty"` // Locale rendering
	Error    *ErrorEventData `cbor:"14,keyasint,omitempty"` // Failures of any category
}

// Source indicates which surface produced an event.
type Source uint8

const (
	// SourceCommand indicates a one-shot command invocation.
	SourceCommand Source = 0
	// SourceInteractive indicates the interactive calculator.
	SourceInteractive Source = 1
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceCommand:
		return "COMMAND"
	case SourceInteractive:
		return "INTERACTIVE"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryParse indicates text converted to a duration value.
	CategoryParse Category = 0
	// CategoryEval indicates an arithmetic or comparison operation.
	CategoryEval Category = 1
	// CategoryCalendar indicates date arithmetic.
	CategoryCalendar Category = 2
	// CategoryFormat indicates locale rendering.
	CategoryFormat Category = 3
	// CategoryError indicates a failed operation.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryParse:
		return "PARSE"
	case CategoryEval:
		return "EVAL"
	case CategoryCalendar:
		return "CALENDAR"
	case CategoryFormat:
		return "FORMAT"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseEvent captures a successful text-to-value conversion.
type ParseEvent struct {
	// Input is the text as given.
	Input string `cbor:"1,keyasint"`

	// Canonical is the ISO 8601 form of the parsed value.
	Canonical string `cbor:"2,keyasint"`
}

// EvalEvent captures an arithmetic or comparison operation.
type EvalEvent struct {
	// Op names the operation (add, sub, scale, normalize, compare, ...).
	Op string `cbor:"1,keyasint"`

	// Operands are the canonical forms of the inputs, in order.
	Operands []string `cbor:"2,keyasint,omitempty"`

	// Result is the canonical form of the outcome.
	Result string `cbor:"3,keyasint"`

	// Elapsed is the evaluation time, when measured.
	Elapsed *time.Duration `cbor:"4,keyasint,omitempty"`
}

// CalendarEvent captures date arithmetic.
type CalendarEvent struct {
	// Op names the operation (add, sub, between).
	Op string `cbor:"1,keyasint"`

	// Base is the anchoring instant (RFC 3339).
	Base string `cbor:"2,keyasint"`

	// Span is the duration applied, for add and sub.
	Span string `cbor:"3,keyasint,omitempty"`

	// Result is the resulting instant or measured duration.
	Result string `cbor:"4,keyasint"`
}

// FormatEvent captures locale rendering.
type FormatEvent struct {
	// Value is the canonical form of the rendered duration.
	Value string `cbor:"1,keyasint"`

	// Locale is the BCP 47 tag used, if any.
	Locale string `cbor:"2,keyasint,omitempty"`

	// Style names the formatter (iso, compact, text).
	Style string `cbor:"3,keyasint,omitempty"`

	// Output is the rendered text.
	Output string `cbor:"4,keyasint"`
}

// ErrorEventData captures failures of any category.
type ErrorEventData struct {
	// Kind classifies the failure.
	Kind ErrorKind `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes what was being evaluated.
	Context string `cbor:"3,keyasint,omitempty"`
}

// ErrorKind classifies a failure.
type ErrorKind uint8

const (
	// ErrorKindParse indicates malformed duration or date text.
	ErrorKindParse ErrorKind = 0
	// ErrorKindRange indicates a value outside the representable domain.
	ErrorKindRange ErrorKind = 1
	// ErrorKindUnknownUnit indicates an unresolvable unit name.
	ErrorKindUnknownUnit ErrorKind = 2
	// ErrorKindOther covers everything else.
	ErrorKindOther ErrorKind = 3
)

// String returns the error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindParse:
		return "PARSE"
	case ErrorKindRange:
		return "RANGE"
	case ErrorKindUnknownUnit:
		return "UNKNOWN_UNIT"
	case ErrorKindOther:
		return "OTHER"
	default:
		return "UNKNOWN"
	}
}
