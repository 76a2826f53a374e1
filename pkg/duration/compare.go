package duration

import (
	"math"
	"time"

	"github.com/tempus-dev/tempus-go/pkg/units"
)

// Approximation constants for ordering and totalling durations that
// carry months or years. The year is the mean Gregorian year; a month
// is one twelfth of it. These are deliberate estimates, never used by
// Parse, String, the arithmetic or the calendar package.
const (
	daysPerYear  = 365.2425
	daysPerMonth = daysPerYear / monthsPerYear
)

// Equal reports whether d and other describe the same span field for
// field once fully normalized. PT24H equals P1D, P7D equals P1W and
// P12M equals P1Y, but P1M never equals P30D: months only compare
// equal to months and years.
func (d Duration) Equal(other Duration) bool {
	return d.Normalize() == other.Normalize()
}

// Compare orders d against other, returning -1, 0 or +1. Durations
// without months or years compare exactly. As soon as either side
// carries months or years the comparison switches to the approximate
// day constants, so P1M sorts above P30D but below P31D.
func (d Duration) Compare(other Duration) int {
	a, b := d.cols(), other.cols()
	if a.months == 0 && b.months == 0 {
		ad := a.days + a.weeks*daysPerWeek
		bd := b.days + b.weeks*daysPerWeek
		if ad != bd {
			return cmpInt(ad, bd)
		}
		return cmpInt(a.nanos, b.nanos)
	}
	av, bv := d.approxNanos(), other.approxNanos()
	switch {
	case av < bv:
		return -1
	case av > bv:
		return 1
	default:
		return 0
	}
}

// Less reports whether d orders before other under Compare.
func (d Duration) Less(other Duration) bool {
	return d.Compare(other) < 0
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// approxNanos flattens d to signed nanoseconds using the approximate
// day constants for months.
func (d Duration) approxNanos() float64 {
	c := d.cols()
	days := float64(c.days) + float64(c.weeks)*daysPerWeek + float64(c.months)*daysPerMonth
	return days*nanosPerDay + float64(c.nanos)
}

// TotalMilliseconds returns the span as whole milliseconds, rounded
// to nearest. Months and years contribute through the approximate day
// constants; values beyond int64 saturate.
func (d Duration) TotalMilliseconds() int64 {
	return saturateInt64(math.Round(d.approxNanos() / nanosPerMilli))
}

// TotalSeconds returns the span as (possibly fractional) seconds,
// months and years approximated like TotalMilliseconds.
func (d Duration) TotalSeconds() float64 {
	return d.approxNanos() / nanosPerSecond
}

// In converts the span into a count of the given unit. Exact units
// divide exactly; months and years divide through the approximate day
// constants in both directions.
func (d Duration) In(unit units.Unit) (float64, error) {
	total := d.approxNanos()
	switch unit {
	case units.Millisecond:
		return total / nanosPerMilli, nil
	case units.Second:
		return total / nanosPerSecond, nil
	case units.Minute:
		return total / nanosPerMinute, nil
	case units.Hour:
		return total / nanosPerHour, nil
	case units.Day:
		return total / nanosPerDay, nil
	case units.Week:
		return total / (daysPerWeek * nanosPerDay), nil
	case units.Month:
		return total / (daysPerMonth * nanosPerDay), nil
	case units.Year:
		return total / (daysPerYear * nanosPerDay), nil
	default:
		return 0, rangeErr("in", "unrecognized unit %d", uint8(unit))
	}
}

// ToTimeDuration converts d to a time.Duration. The second return is
// false when the conversion is lossy: months or years fall back to
// the approximate constants, and spans beyond the int64 nanosecond
// range saturate.
func (d Duration) ToTimeDuration() (time.Duration, bool) {
	c := d.cols()
	if c.months != 0 {
		return time.Duration(saturateInt64(d.approxNanos())), false
	}
	days := c.days + c.weeks*daysPerWeek
	total := days * nanosPerDay
	if days != 0 && total/days != nanosPerDay {
		return saturatedDuration(days < 0), false
	}
	sum := total + c.nanos
	// c.nanos shares the sign of days, so overflow only moves away
	// from zero.
	if (total > 0 && sum < total) || (total < 0 && sum > total) {
		return saturatedDuration(total < 0), false
	}
	return time.Duration(sum), true
}

func saturatedDuration(negative bool) time.Duration {
	if negative {
		return time.Duration(math.MinInt64)
	}
	return time.Duration(math.MaxInt64)
}

func saturateInt64(v float64) int64 {
	switch {
	case v >= math.MaxInt64:
		return math.MaxInt64
	case v <= math.MinInt64:
		return math.MinInt64
	case math.IsNaN(v):
		return 0
	default:
		return int64(v)
	}
}
