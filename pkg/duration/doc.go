// Package duration implements an immutable duration value split into
// calendar and exact fields, with ISO 8601 text as its canonical
// form.
//
// # Model
//
// A Duration holds one overall sign and non-negative magnitudes for
// years, months, weeks, days, hours, minutes and seconds, plus a
// sub-second nanosecond residue. Calendar fields (years, months,
// weeks) have no fixed length in real time and are never converted
// into days by parsing, serialization or arithmetic. The exact chain
// (days down to nanoseconds) carries freely at fixed ratios.
//
// # Text form
//
// Parse reads ISO 8601 duration text such as "P1DT2H", "P3W" or
// "-PT1.5S", including compact forms like "P1D2H" where the time
// separator is omitted, and falls back to human phrases such as
// "2 days, 1 hour". String always emits the canonical form: fields in
// fixed order, zero fields omitted, "PT0S" for zero, and the time
// separator only when minutes or seconds follow, so "P1D2H" survives
// a round trip verbatim.
//
// # Arithmetic
//
// Add, Sub, Scale and the per-unit helpers return new values and
// settle exact carries automatically; a result that would need
// calendar and exact parts of opposite signs is rejected with a
// RangeError. Normalize additionally folds seven days into a week and
// twelve months into a year.
//
// # Comparison
//
// Equal is field-wise over normalized values and never equates months
// with any number of days. Compare and the total accessors use fixed
// approximation constants (a 365.2425-day year) once months or years
// are involved; results on such values are estimates inherent to the
// calendar model, not a defect in the input.
package duration
