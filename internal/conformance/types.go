// Package conformance loads and runs YAML-defined conformance cases
// for the duration engine. Case files live in testdata/ and cover
// parsing, arithmetic, comparison, and date interop so the expected
// behavior stays reviewable outside Go source.
package conformance

import "strconv"

// Suite is a collection of conformance cases loaded from one YAML file.
type Suite struct {
	// Name identifies the suite (e.g., "parsing").
	Name string `yaml:"name"`

	// Description explains what the suite covers.
	Description string `yaml:"description,omitempty"`

	// Parse cases check text-to-value conversion.
	Parse []ParseCase `yaml:"parse,omitempty"`

	// Arithmetic cases check add/sub/scale/normalize.
	Arithmetic []ArithmeticCase `yaml:"arithmetic,omitempty"`

	// Compare cases check ordering and equality.
	Compare []CompareCase `yaml:"compare,omitempty"`

	// Calendar cases check date interop.
	Calendar []CalendarCase `yaml:"calendar,omitempty"`
}

// ParseCase checks that input parses to a canonical form, or that it
// is rejected.
type ParseCase struct {
	// Name is the case name shown in test output.
	Name string `yaml:"name"`

	// Input is the text handed to Parse.
	Input string `yaml:"input"`

	// Want is the expected canonical serialization for valid input.
	Want string `yaml:"want,omitempty"`

	// Err marks the input as invalid.
	Err bool `yaml:"err,omitempty"`

	// Reason, when set, must appear in the error text.
	Reason string `yaml:"reason,omitempty"`
}

// ArithmeticCase checks an arithmetic operation.
type ArithmeticCase struct {
	// Name is the case name shown in test output.
	Name string `yaml:"name"`

	// Op is one of add, sub, scale, normalize, negate, abs.
	Op string `yaml:"op"`

	// LHS is the first operand in ISO or phrase text.
	LHS string `yaml:"lhs"`

	// RHS is the second operand for add/sub.
	RHS string `yaml:"rhs,omitempty"`

	// Factor is the multiplier for scale.
	Factor *float64 `yaml:"factor,omitempty"`

	// Want is the canonical form of the expected result.
	Want string `yaml:"want,omitempty"`

	// Err marks the operation as failing.
	Err bool `yaml:"err,omitempty"`
}

// CompareCase checks ordering between two durations.
type CompareCase struct {
	// Name is the case name shown in test output.
	Name string `yaml:"name"`

	// LHS and RHS are the operands.
	LHS string `yaml:"lhs"`
	RHS string `yaml:"rhs"`

	// Want is -1, 0, or 1.
	Want int `yaml:"want"`

	// Equal additionally asserts (or denies) structural equality.
	Equal *bool `yaml:"equal,omitempty"`
}

// CalendarCase checks date arithmetic.
type CalendarCase struct {
	// Name is the case name shown in test output.
	Name string `yaml:"name"`

	// Op is one of add, sub, between.
	Op string `yaml:"op"`

	// Base is the anchoring instant (RFC 3339 or YYYY-MM-DD).
	Base string `yaml:"base"`

	// Span is the duration applied for add/sub.
	Span string `yaml:"span,omitempty"`

	// To is the end instant for between.
	To string `yaml:"to,omitempty"`

	// Want is an RFC 3339 instant for add/sub, or a canonical
	// duration for between.
	Want string `yaml:"want"`
}

// LoadError provides details about a conformance file loading error.
type LoadError struct {
	// File is the path to the file that failed to load.
	File string

	// Line is the line number where the error occurred (0 if unknown).
	Line int

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return e.File + ":" + strconv.Itoa(e.Line) + ": " + e.Message
	}
	return e.File + ": " + e.Message
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
