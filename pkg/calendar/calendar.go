package calendar

import (
	"math"
	"time"

	"github.com/tempus-dev/tempus-go/pkg/duration"
)

// Add applies a duration to a point in time the calendar way: years
// and months move through the calendar with month-end clamping, weeks
// and days move by wall-clock days in t's location, and the time
// fields advance by exact elapsed time. Larger units apply first, so
// adding P1M1D to January 31st lands on March 1st (February 28th plus
// a day), never on an overflowed pseudo-date.
func Add(t time.Time, d duration.Duration) time.Time {
	shifted := AddMonths(t, d.Years()*monthsPerYear+d.Months())
	shifted = shifted.AddDate(0, 0, int(d.Weeks()*daysPerWeek+d.Days()))
	return shifted.Add(residue(d))
}

// Sub applies the duration in the opposite direction.
func Sub(t time.Time, d duration.Duration) time.Time {
	return Add(t, d.Negate())
}

// AddMonths moves t by n calendar months, clamping the day-of-month
// to the target month's length: January 31st plus one month is
// February 28th (29th in leap years).
func AddMonths(t time.Time, n int64) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	total := int64(year)*monthsPerYear + int64(month-1) + n
	newYear := total / monthsPerYear
	newMonth := total % monthsPerYear
	if newMonth < 0 {
		newMonth += monthsPerYear
		newYear--
	}

	if last := DaysIn(int(newYear), time.Month(newMonth+1)); day > last {
		day = last
	}
	return time.Date(int(newYear), time.Month(newMonth+1), day, hour, min, sec, t.Nanosecond(), t.Location())
}

// AddYears moves t by n calendar years with the same day clamping,
// so February 29th plus one year is February 28th.
func AddYears(t time.Time, n int64) time.Time {
	return AddMonths(t, n*monthsPerYear)
}

// Between returns the duration from one point in time to another,
// measured greedily: as many whole months as fit (reported as years
// and months), then whole wall-clock days, then the exact remainder
// in time fields. A month that only reaches the target through
// month-end clamping does not count as whole, so January 31st to
// February 28th measures as P28D, never P1M.
//
// For from <= to the result satisfies Add(from, Between(from, to)) ==
// to. Reversed arguments yield the exact negation; clamping makes Add
// non-injective, so no representation could satisfy the round-trip
// law in both directions at once.
func Between(from, to time.Time) duration.Duration {
	if to.Before(from) {
		return Between(to, from).Negate()
	}
	to = to.In(from.Location())

	y1, m1, d1 := from.Date()
	y2, m2, d2 := to.Date()
	months := int64(y2-y1)*monthsPerYear + int64(m2-m1)
	if months > 0 && d2 < d1 {
		// A clamped landing is not a whole month.
		months--
	}
	for months > 0 && AddMonths(from, months).After(to) {
		months--
	}
	anchor := AddMonths(from, months)

	days := int64(to.Sub(anchor) / (24 * time.Hour))
	for days > 0 && anchor.AddDate(0, 0, int(days)).After(to) {
		days--
	}
	for !anchor.AddDate(0, 0, int(days)+1).After(to) {
		days++
	}
	anchor = anchor.AddDate(0, 0, int(days))

	rest := to.Sub(anchor)
	d, err := duration.FromParts(duration.Parts{
		Years:   months / monthsPerYear,
		Months:  months % monthsPerYear,
		Days:    days,
		Hours:   int64(rest / time.Hour),
		Minutes: int64(rest % time.Hour / time.Minute),
		Seconds: int64(rest % time.Minute / time.Second),
		Nanos:   int32(rest % time.Second),
	})
	if err != nil {
		// Spans between representable time.Time values stay far below
		// the field limits.
		panic(err)
	}
	return d
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseDate reads a point in time for calendar arithmetic. It accepts
// RFC 3339 timestamps and plain dates ("2006-01-02", midnight UTC).
func ParseDate(text string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, text); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, text); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", text)
}

const (
	monthsPerYear = 12
	daysPerWeek   = 7
)

// residue converts the time fields of d to exact elapsed time,
// saturating on (absurdly) large values instead of wrapping.
func residue(d duration.Duration) time.Duration {
	const maxHours = math.MaxInt64 / int64(time.Hour)
	hours := d.Hours()
	if hours > maxHours || hours < -maxHours {
		if hours < 0 {
			return time.Duration(math.MinInt64)
		}
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(hours)*time.Hour +
		time.Duration(d.Minutes())*time.Minute +
		time.Duration(d.Seconds())*time.Second +
		time.Duration(d.Nanoseconds())
}
