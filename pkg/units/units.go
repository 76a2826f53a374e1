package units

import (
	"errors"
	"fmt"
	"strings"
)

// Unit identifies a duration unit.
type Unit uint8

const (
	// Millisecond is 1/1000 of a second.
	Millisecond Unit = iota + 1

	// Second is the base exact unit.
	Second

	// Minute is 60 seconds.
	Minute

	// Hour is 60 minutes.
	Hour

	// Day is 24 hours.
	Day

	// Week is 7 days.
	Week

	// Month is a calendar month; its length depends on the anchor date.
	Month

	// Year is a calendar year; its length depends on the anchor date.
	Year
)

// Kind classifies a unit as exact or calendar.
type Kind uint8

const (
	// KindExact marks fixed-length units (millisecond through day).
	KindExact Kind = iota + 1

	// KindCalendar marks anchor-dependent units (week, month, year).
	KindCalendar
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindCalendar:
		return "calendar"
	default:
		return "unknown"
	}
}

// String returns the canonical singular unit name.
func (u Unit) String() string {
	switch u {
	case Millisecond:
		return "millisecond"
	case Second:
		return "second"
	case Minute:
		return "minute"
	case Hour:
		return "hour"
	case Day:
		return "day"
	case Week:
		return "week"
	case Month:
		return "month"
	case Year:
		return "year"
	default:
		return "unknown"
	}
}

// IsValid reports whether u is one of the defined units.
func (u Unit) IsValid() bool {
	return u >= Millisecond && u <= Year
}

// Kind returns the unit classification. Week counts as calendar even
// though it has an exact 7-day ratio: applied to a date it spans
// wall-clock days, not a fixed number of hours.
func (u Unit) Kind() Kind {
	switch u {
	case Week, Month, Year:
		return KindCalendar
	default:
		return KindExact
	}
}

// All lists the defined units in ascending magnitude order.
func All() []Unit {
	return []Unit{Millisecond, Second, Minute, Hour, Day, Week, Month, Year}
}

// Fixed ratios between adjacent exact units.
const (
	MillisPerSecond  = 1000
	SecondsPerMinute = 60
	MinutesPerHour   = 60
	HoursPerDay      = 24
	DaysPerWeek      = 7
)

// ExactNanos returns the length of u in nanoseconds and true for units
// with a fixed length. Week is included: the 7-day ratio is exact in
// the unit table even though week is a calendar unit for date math.
// Month and year return false; they have no fixed length.
func (u Unit) ExactNanos() (int64, bool) {
	switch u {
	case Millisecond:
		return 1e6, true
	case Second:
		return 1e9, true
	case Minute:
		return 60 * 1e9, true
	case Hour:
		return 3600 * 1e9, true
	case Day:
		return 86400 * 1e9, true
	case Week:
		return 7 * 86400 * 1e9, true
	default:
		return 0, false
	}
}

// ErrUnknownUnit is the sentinel matched by errors.Is for failed
// name resolution.
var ErrUnknownUnit = errors.New("unknown unit")

// UnknownUnitError reports a unit name the registry does not recognize.
type UnknownUnitError struct {
	// Name is the name that failed to resolve.
	Name string
}

func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("unknown unit %q", e.Name)
}

// Is matches ErrUnknownUnit.
func (e *UnknownUnitError) Is(target error) bool {
	return target == ErrUnknownUnit
}

// names maps every recognized spelling (lowercase) to its unit.
// Canonical names, plurals, and short forms. "m" follows the common
// convention of meaning minute, "mo" month.
var names = map[string]Unit{
	"millisecond":  Millisecond,
	"milliseconds": Millisecond,
	"millis":       Millisecond,
	"msec":         Millisecond,
	"msecs":        Millisecond,
	"ms":           Millisecond,

	"second":  Second,
	"seconds": Second,
	"sec":     Second,
	"secs":    Second,
	"s":       Second,

	"minute":  Minute,
	"minutes": Minute,
	"min":     Minute,
	"mins":    Minute,
	"m":       Minute,

	"hour":  Hour,
	"hours": Hour,
	"hr":    Hour,
	"hrs":   Hour,
	"h":     Hour,

	"day":  Day,
	"days": Day,
	"d":    Day,

	"week":  Week,
	"weeks": Week,
	"wk":    Week,
	"wks":   Week,
	"w":     Week,

	"month":  Month,
	"months": Month,
	"mon":    Month,
	"mo":     Month,

	"year":  Year,
	"years": Year,
	"yr":    Year,
	"yrs":   Year,
	"y":     Year,
}

// Resolve maps a unit name to its Unit, case-insensitively.
// It accepts canonical names ("hour"), plurals ("hours"), and short
// forms ("h", "hr"). Unknown names fail with an UnknownUnitError.
func Resolve(name string) (Unit, error) {
	u, ok := names[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, &UnknownUnitError{Name: name}
	}
	return u, nil
}
