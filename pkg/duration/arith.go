package duration

import "math"

// Unit ratios shared by the arithmetic and serialization paths. Only
// the exact chain (week and below) has fixed ratios; months and years
// never convert into days here.
const (
	nanosPerSecond = 1_000_000_000
	nanosPerMilli  = 1_000_000
	nanosPerMinute = 60 * nanosPerSecond
	nanosPerHour   = 60 * nanosPerMinute
	nanosPerDay    = 24 * nanosPerHour
	secondsPerDay  = 24 * 60 * 60
	daysPerWeek    = 7
	monthsPerYear  = 12
)

// columns is the signed working form of a Duration: calendar fields
// collapsed to months, the exact chain collapsed to whole days plus
// within-day nanoseconds. Field magnitudes are capped at 2^53, so no
// column can overflow int64 even when two durations are combined.
type columns struct {
	months int64
	weeks  int64
	days   int64
	nanos  int64
}

func (d Duration) cols() columns {
	days := d.days
	hours := d.hours
	days += hours / 24
	hours %= 24
	minutes := d.minutes
	days += minutes / (24 * 60)
	minutes %= 24 * 60
	seconds := d.seconds
	days += seconds / secondsPerDay
	seconds %= secondsPerDay

	c := columns{
		months: d.years*monthsPerYear + d.months,
		weeks:  d.weeks,
		days:   days,
		nanos:  hours*nanosPerHour + minutes*nanosPerMinute + seconds*nanosPerSecond + int64(d.nanos),
	}
	if d.neg {
		c.months, c.weeks, c.days, c.nanos = -c.months, -c.weeks, -c.days, -c.nanos
	}
	return c
}

// settle turns signed columns back into a Duration. Carries run up
// the exact chain (nanoseconds through days) and from months into
// years; days never fold into weeks and months never fold into days.
// Columns with conflicting signs cannot be represented and yield a
// RangeError.
func settle(c columns, op string) (Duration, error) {
	c.days += c.nanos / nanosPerDay
	c.nanos %= nanosPerDay
	if c.days > 0 && c.nanos < 0 {
		c.days--
		c.nanos += nanosPerDay
	} else if c.days < 0 && c.nanos > 0 {
		c.days++
		c.nanos -= nanosPerDay
	}

	pos := c.months > 0 || c.weeks > 0 || c.days > 0 || c.nanos > 0
	neg := c.months < 0 || c.weeks < 0 || c.days < 0 || c.nanos < 0
	if pos && neg {
		return Zero, rangeErr(op, "result mixes calendar and exact components of opposite signs")
	}
	if neg {
		c.months, c.weeks, c.days, c.nanos = -c.months, -c.weeks, -c.days, -c.nanos
	}

	d := Duration{
		neg:    neg,
		years:  c.months / monthsPerYear,
		months: c.months % monthsPerYear,
		weeks:  c.weeks,
		days:   c.days,
	}
	rem := c.nanos
	d.hours = rem / nanosPerHour
	rem %= nanosPerHour
	d.minutes = rem / nanosPerMinute
	rem %= nanosPerMinute
	d.seconds = rem / nanosPerSecond
	d.nanos = int32(rem % nanosPerSecond)
	if d.years > maxMagnitude || d.weeks > maxMagnitude || d.days > maxMagnitude {
		return Zero, rangeErr(op, "result exceeds the field limit")
	}
	if d.isMagnitudeZero() {
		return Zero, nil
	}
	return d, nil
}

// settleExact re-settles a duration whose fields are already
// uniformly signed, so the carry pass cannot fail.
func (d Duration) settleExact() Duration {
	s, _ := settle(d.cols(), "settle")
	return s
}

// Add returns d + other. Matching fields combine, exact carries
// settle automatically (nanoseconds up through days, months into
// years), and a single negative chain flips the overall sign. A
// result whose calendar and exact parts end up with opposite signs
// has no representation and yields a RangeError.
func (d Duration) Add(other Duration) (Duration, error) {
	a, b := d.cols(), other.cols()
	return settle(columns{
		months: a.months + b.months,
		weeks:  a.weeks + b.weeks,
		days:   a.days + b.days,
		nanos:  a.nanos + b.nanos,
	}, "add")
}

// Sub returns d - other under the same rules as Add.
func (d Duration) Sub(other Duration) (Duration, error) {
	return d.Add(other.Negate())
}

// Negate returns d with the opposite sign. The zero duration stays
// zero.
func (d Duration) Negate() Duration {
	if d.IsZero() {
		return d
	}
	d.neg = !d.neg
	return d
}

// Abs returns the magnitude of d.
func (d Duration) Abs() Duration {
	d.neg = false
	return d
}

// Normalize returns d with every exact carry applied and the larger
// foldings taken: 60 seconds to a minute, 24 hours to a day, seven
// days to a week, twelve months to a year. Days never fold into
// months, so PT24H normalizes to P1D but P30D stays clear of P1M.
func (d Duration) Normalize() Duration {
	n := d.settleExact()
	n.weeks += n.days / daysPerWeek
	n.days %= daysPerWeek
	return n
}

// AddYears returns d plus n years. A negative n subtracts.
func (d Duration) AddYears(n int64) (Duration, error) {
	return d.addUnit("addyears", columns{months: n * monthsPerYear}, n)
}

// AddMonths returns d plus n months.
func (d Duration) AddMonths(n int64) (Duration, error) {
	return d.addUnit("addmonths", columns{months: n}, n)
}

// AddWeeks returns d plus n weeks.
func (d Duration) AddWeeks(n int64) (Duration, error) {
	return d.addUnit("addweeks", columns{weeks: n}, n)
}

// AddDays returns d plus n days.
func (d Duration) AddDays(n int64) (Duration, error) {
	return d.addUnit("adddays", columns{days: n}, n)
}

// AddHours returns d plus n hours.
func (d Duration) AddHours(n int64) (Duration, error) {
	return d.addUnit("addhours", columns{days: n / 24, nanos: (n % 24) * nanosPerHour}, n)
}

// AddMinutes returns d plus n minutes.
func (d Duration) AddMinutes(n int64) (Duration, error) {
	return d.addUnit("addminutes", columns{days: n / (24 * 60), nanos: (n % (24 * 60)) * nanosPerMinute}, n)
}

// AddSeconds returns d plus n seconds.
func (d Duration) AddSeconds(n int64) (Duration, error) {
	return d.addUnit("addseconds", columns{days: n / secondsPerDay, nanos: (n % secondsPerDay) * nanosPerSecond}, n)
}

// AddMilliseconds returns d plus n milliseconds.
func (d Duration) AddMilliseconds(n int64) (Duration, error) {
	sec := n / 1000
	return d.addUnit("addmilliseconds", columns{
		days:  sec / secondsPerDay,
		nanos: (sec%secondsPerDay)*nanosPerSecond + (n%1000)*nanosPerMilli,
	}, n)
}

// SubYears returns d minus n years.
func (d Duration) SubYears(n int64) (Duration, error) { return d.AddYears(-n) }

// SubMonths returns d minus n months.
func (d Duration) SubMonths(n int64) (Duration, error) { return d.AddMonths(-n) }

// SubWeeks returns d minus n weeks.
func (d Duration) SubWeeks(n int64) (Duration, error) { return d.AddWeeks(-n) }

// SubDays returns d minus n days.
func (d Duration) SubDays(n int64) (Duration, error) { return d.AddDays(-n) }

// SubHours returns d minus n hours.
func (d Duration) SubHours(n int64) (Duration, error) { return d.AddHours(-n) }

// SubMinutes returns d minus n minutes.
func (d Duration) SubMinutes(n int64) (Duration, error) { return d.AddMinutes(-n) }

// SubSeconds returns d minus n seconds.
func (d Duration) SubSeconds(n int64) (Duration, error) { return d.AddSeconds(-n) }

// SubMilliseconds returns d minus n milliseconds.
func (d Duration) SubMilliseconds(n int64) (Duration, error) { return d.AddMilliseconds(-n) }

func (d Duration) addUnit(op string, delta columns, n int64) (Duration, error) {
	if n > maxMagnitude || n < -maxMagnitude {
		return Zero, rangeErr(op, "magnitude %d exceeds limit", n)
	}
	c := d.cols()
	return settle(columns{
		months: c.months + delta.months,
		weeks:  c.weeks + delta.weeks,
		days:   c.days + delta.days,
		nanos:  c.nanos + delta.nanos,
	}, op)
}

// Scale multiplies d by factor. Fractional spill moves down the
// chain where an exact ratio exists: years into months, weeks into
// days, days into the time fields, with any sub-nanosecond residue
// rounded away. A fractional number of months has no exact smaller
// form and yields a RangeError, as do non-finite factors and results
// beyond the field limit.
func (d Duration) Scale(factor float64) (Duration, error) {
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return Zero, rangeErr("scale", "factor must be finite, got %v", factor)
	}
	if factor == 0 || d.IsZero() {
		return Zero, nil
	}
	neg := d.neg != math.Signbit(factor)
	f := math.Abs(factor)
	c := d.Abs().cols()

	totalMonths := float64(c.months) * f
	months := math.Round(totalMonths)
	if math.Abs(totalMonths-months) > monthsEpsilon(totalMonths) {
		return Zero, rangeErr("scale", "factor %v leaves a fractional month", factor)
	}

	totalWeeks := float64(c.weeks) * f
	weeks := math.Floor(totalWeeks)
	spillDays := (totalWeeks - weeks) * daysPerWeek

	totalDays := float64(c.days)*f + spillDays + float64(c.nanos)*f/nanosPerDay
	days := math.Floor(totalDays)
	nanos := math.Round((totalDays - days) * nanosPerDay)
	if nanos >= nanosPerDay {
		nanos -= nanosPerDay
		days++
	}

	limit := float64(maxMagnitude)
	if months > limit || weeks > limit || days > limit {
		return Zero, rangeErr("scale", "result exceeds the field limit")
	}
	out, err := settle(columns{
		months: int64(months),
		weeks:  int64(weeks),
		days:   int64(days),
		nanos:  int64(nanos),
	}, "scale")
	if err != nil {
		return Zero, err
	}
	if neg {
		out = out.Negate()
	}
	return out, nil
}

// monthsEpsilon is the integrality tolerance for scaled months,
// loose enough to absorb float64 rounding on large counts.
func monthsEpsilon(total float64) float64 {
	eps := 1e-9
	if scaled := math.Abs(total) * 1e-12; scaled > eps {
		return scaled
	}
	return eps
}
