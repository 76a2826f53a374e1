// Package units defines the canonical duration units and resolves
// human-entered unit names to them.
//
// The eight units span millisecond through year. Each unit is either
// exact (fixed length: millisecond, second, minute, hour, day) or
// calendar (length depends on the anchor date: week, month, year).
// Exact units relate through fixed ratios; the registry exposes those
// ratios but never converts calendar units. Approximations for
// ordering live with the duration comparator, not here.
//
// Resolution is a pure, case-insensitive table lookup covering
// canonical names, plurals, and common short forms ("ms", "min",
// "hr", "wk", "mo", "yr"). Unknown names fail with UnknownUnitError.
package units
