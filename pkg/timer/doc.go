// Package timer arms one-shot wall-clock timers from duration values.
//
// # Handles
//
// Start converts a duration to elapsed time and returns an opaque
// handle. Timers are independent; stopping or expiring one never
// affects another. There is no replacement semantic: arming twice
// yields two timers.
//
// # Exactness
//
// Only durations that convert exactly to wall-clock time can arm a
// timer. Months and years are rejected with ErrCalendarUnits; weeks
// and smaller units convert at their fixed ratios.
//
// # Accuracy
//
// Expiry accuracy is +/- 1% or +/- 1 second, whichever is greater.
// Timers use monotonic time and are unaffected by clock adjustments.
package timer
