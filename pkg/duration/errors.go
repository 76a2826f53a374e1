package duration

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is.
var (
	// ErrParse indicates malformed duration text.
	ErrParse = errors.New("invalid duration text")

	// ErrRange indicates a numeric input outside the value domain.
	ErrRange = errors.New("value out of range")
)

// ParseError describes where and why duration text failed to parse.
type ParseError struct {
	// Input is the text handed to Parse.
	Input string

	// Offset is the byte offset of the offending fragment.
	Offset int

	// Fragment is the offending substring (empty when the problem is
	// the input as a whole, e.g. missing components).
	Fragment string

	// Reason describes the failure.
	Reason string
}

func (e *ParseError) Error() string {
	if e.Fragment != "" {
		return fmt.Sprintf("invalid duration %q: %s at offset %d (%q)", e.Input, e.Reason, e.Offset, e.Fragment)
	}
	return fmt.Sprintf("invalid duration %q: %s at offset %d", e.Input, e.Reason, e.Offset)
}

// Is matches ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// RangeError reports a numeric argument an operation cannot accept:
// non-finite, negative where only magnitudes are allowed, fractional
// where only integers are allowed, or too large for the model.
type RangeError struct {
	// Op names the rejecting operation.
	Op string

	// Reason describes the violation.
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// Is matches ErrRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrRange
}

func rangeErr(op, format string, args ...any) error {
	return &RangeError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
