package duration

import (
	"fmt"
	"math"
	"time"

	"github.com/tempus-dev/tempus-go/pkg/units"
)

// maxMagnitude bounds every field of a Duration. It is the largest
// integer float64 represents exactly, so constructors taking float64
// magnitudes never silently lose precision.
const maxMagnitude = int64(1) << 53

// Duration is an immutable span of time split into calendar fields
// (years, months, weeks) and exact fields (days through nanoseconds).
// The zero value is the canonical zero duration.
//
// A Duration carries a single overall sign; individual fields are
// magnitudes and never negative. All methods are value receivers and
// return new values, so Durations are safe to copy, compare for
// identity and share between goroutines.
type Duration struct {
	neg     bool
	years   int64
	months  int64
	weeks   int64
	days    int64
	hours   int64
	minutes int64
	seconds int64
	nanos   int32 // sub-second residue, 0..999999999
}

// Zero is the canonical zero duration. It serializes as "PT0S".
var Zero Duration

// Parts is the field-level decomposition of a Duration. It is the
// interchange form used by constructors and codecs.
type Parts struct {
	Negative bool
	Years    int64
	Months   int64
	Weeks    int64
	Days     int64
	Hours    int64
	Minutes  int64
	Seconds  int64
	Nanos    int32
}

// FromParts builds a Duration from explicit field magnitudes. All
// fields must be non-negative, Nanos below one second, and every
// magnitude at most 2^53. A result with all fields zero is the
// canonical zero regardless of p.Negative.
func FromParts(p Parts) (Duration, error) {
	for _, f := range []struct {
		name  string
		value int64
	}{
		{"years", p.Years},
		{"months", p.Months},
		{"weeks", p.Weeks},
		{"days", p.Days},
		{"hours", p.Hours},
		{"minutes", p.Minutes},
		{"seconds", p.Seconds},
	} {
		if f.value < 0 {
			return Zero, rangeErr("fromparts", "%s must not be negative, got %d", f.name, f.value)
		}
		if f.value > maxMagnitude {
			return Zero, rangeErr("fromparts", "%s magnitude %d exceeds limit", f.name, f.value)
		}
	}
	if p.Nanos < 0 || p.Nanos > 999999999 {
		return Zero, rangeErr("fromparts", "nanos must be within 0..999999999, got %d", p.Nanos)
	}
	d := Duration{
		neg:     p.Negative,
		years:   p.Years,
		months:  p.Months,
		weeks:   p.Weeks,
		days:    p.Days,
		hours:   p.Hours,
		minutes: p.Minutes,
		seconds: p.Seconds,
		nanos:   p.Nanos,
	}
	if d.isMagnitudeZero() {
		return Zero, nil
	}
	return d, nil
}

// Parts returns the field-level decomposition of d.
func (d Duration) Parts() Parts {
	return Parts{
		Negative: d.neg,
		Years:    d.years,
		Months:   d.months,
		Weeks:    d.weeks,
		Days:     d.days,
		Hours:    d.hours,
		Minutes:  d.minutes,
		Seconds:  d.seconds,
		Nanos:    d.nanos,
	}
}

// New builds a single-field Duration from a magnitude and unit.
// Negative magnitudes produce a negative Duration. Fractional
// magnitudes are only accepted for seconds and milliseconds, where
// they become sub-second residue; every other unit requires an
// integral magnitude.
func New(magnitude float64, unit units.Unit) (Duration, error) {
	if math.IsNaN(magnitude) || math.IsInf(magnitude, 0) {
		return Zero, rangeErr("new", "magnitude must be finite, got %v", magnitude)
	}
	if !unit.IsValid() {
		return Zero, rangeErr("new", "unrecognized unit %d", uint8(unit))
	}
	neg := math.Signbit(magnitude)
	d, err := fromUnitMagnitude(math.Abs(magnitude), unit, "new")
	if err != nil {
		return Zero, err
	}
	if d.isMagnitudeZero() {
		return Zero, nil
	}
	d.neg = neg
	return d, nil
}

// FromFields builds a Duration from a unit-name to magnitude map.
// Keys resolve through the unit registry, so aliases such as "h" or
// "hrs" are accepted. Magnitudes must be non-negative; fractions are
// only accepted for seconds and milliseconds. Two keys resolving to
// the same unit are rejected.
func FromFields(fields map[string]float64) (Duration, error) {
	var d Duration
	seen := make(map[units.Unit]string, len(fields))
	for name, magnitude := range fields {
		unit, err := units.Resolve(name)
		if err != nil {
			return Zero, err
		}
		if prev, ok := seen[unit]; ok {
			return Zero, rangeErr("fromfields", "keys %q and %q both name %s", prev, name, unit)
		}
		seen[unit] = name
		if math.IsNaN(magnitude) || math.IsInf(magnitude, 0) {
			return Zero, rangeErr("fromfields", "%s must be finite, got %v", name, magnitude)
		}
		if magnitude < 0 {
			return Zero, rangeErr("fromfields", "%s must not be negative, got %v", name, magnitude)
		}
		part, err := fromUnitMagnitude(magnitude, unit, "fromfields")
		if err != nil {
			return Zero, err
		}
		d.years += part.years
		d.months += part.months
		d.weeks += part.weeks
		d.days += part.days
		d.hours += part.hours
		d.minutes += part.minutes
		d.seconds += part.seconds
		d.nanos += part.nanos
		if d.nanos >= nanosPerSecond {
			d.nanos -= nanosPerSecond
			d.seconds++
		}
	}
	if d.isMagnitudeZero() {
		return Zero, nil
	}
	return d, nil
}

// fromUnitMagnitude builds the positive single-field duration for one
// unit. The magnitude must already be non-negative and finite.
func fromUnitMagnitude(magnitude float64, unit units.Unit, op string) (Duration, error) {
	if magnitude > float64(maxMagnitude) {
		return Zero, rangeErr(op, "%s magnitude %v exceeds limit", unit, magnitude)
	}
	whole := math.Trunc(magnitude)
	frac := magnitude - whole
	if frac != 0 && unit != units.Second && unit != units.Millisecond {
		return Zero, rangeErr(op, "%s requires an integral magnitude, got %v", unit, magnitude)
	}
	n := int64(whole)
	var d Duration
	switch unit {
	case units.Year:
		d.years = n
	case units.Month:
		d.months = n
	case units.Week:
		d.weeks = n
	case units.Day:
		d.days = n
	case units.Hour:
		d.hours = n
	case units.Minute:
		d.minutes = n
	case units.Second:
		d.seconds = n
		d.nanos = int32(math.Round(frac * float64(nanosPerSecond)))
		if d.nanos >= nanosPerSecond {
			d.nanos -= nanosPerSecond
			d.seconds++
		}
	case units.Millisecond:
		d.seconds = n / units.MillisPerSecond
		rem := (n%units.MillisPerSecond)*nanosPerMilli + int64(math.Round(frac*float64(nanosPerMilli)))
		if rem >= int64(nanosPerSecond) {
			rem -= int64(nanosPerSecond)
			d.seconds++
		}
		d.nanos = int32(rem)
	}
	return d, nil
}

// FromTimeDuration converts a time.Duration into an exact Duration,
// settled up to whole days.
func FromTimeDuration(td time.Duration) Duration {
	if td == 0 {
		return Zero
	}
	neg := td < 0
	total := int64(td)
	if neg {
		if td == math.MinInt64 {
			// -1<<63 has no positive counterpart; peel one nanosecond
			// off before negating.
			total = math.MaxInt64
		} else {
			total = -total
		}
	}
	d := Duration{
		neg:     neg,
		seconds: total / int64(nanosPerSecond),
		nanos:   int32(total % int64(nanosPerSecond)),
	}
	return d.settleExact()
}

// MustParse is like Parse but panics on malformed text. It is
// intended for constants and tests.
func MustParse(text string) Duration {
	d, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return d
}

// Sign returns -1 for negative durations and +1 otherwise. The zero
// duration is positive.
func (d Duration) Sign() int {
	if d.neg {
		return -1
	}
	return 1
}

// IsZero reports whether d is the zero duration.
func (d Duration) IsZero() bool {
	return d == Zero
}

// IsNegative reports whether d is negative.
func (d Duration) IsNegative() bool {
	return d.neg
}

// Years returns the years field with the overall sign applied.
func (d Duration) Years() int64 { return d.signed(d.years) }

// Months returns the months field with the overall sign applied.
func (d Duration) Months() int64 { return d.signed(d.months) }

// Weeks returns the weeks field with the overall sign applied.
func (d Duration) Weeks() int64 { return d.signed(d.weeks) }

// Days returns the days field with the overall sign applied.
func (d Duration) Days() int64 { return d.signed(d.days) }

// Hours returns the hours field with the overall sign applied.
func (d Duration) Hours() int64 { return d.signed(d.hours) }

// Minutes returns the minutes field with the overall sign applied.
func (d Duration) Minutes() int64 { return d.signed(d.minutes) }

// Seconds returns the seconds field with the overall sign applied.
func (d Duration) Seconds() int64 { return d.signed(d.seconds) }

// Milliseconds returns the whole milliseconds of the sub-second
// residue with the overall sign applied.
func (d Duration) Milliseconds() int64 { return d.signed(int64(d.nanos) / nanosPerMilli) }

// Nanoseconds returns the sub-second residue in nanoseconds with the
// overall sign applied.
func (d Duration) Nanoseconds() int64 { return d.signed(int64(d.nanos)) }

func (d Duration) signed(v int64) int64 {
	if d.neg {
		return -v
	}
	return v
}

func (d Duration) isMagnitudeZero() bool {
	return d.years == 0 && d.months == 0 && d.weeks == 0 && d.days == 0 &&
		d.hours == 0 && d.minutes == 0 && d.seconds == 0 && d.nanos == 0
}

// WithYears returns a copy of d with the years field replaced.
// The magnitude must be non-negative; the overall sign is kept.
func (d Duration) WithYears(n int64) (Duration, error) {
	return d.with("withyears", n, func(c *Duration, v int64) { c.years = v })
}

// WithMonths returns a copy of d with the months field replaced.
func (d Duration) WithMonths(n int64) (Duration, error) {
	return d.with("withmonths", n, func(c *Duration, v int64) { c.months = v })
}

// WithWeeks returns a copy of d with the weeks field replaced.
func (d Duration) WithWeeks(n int64) (Duration, error) {
	return d.with("withweeks", n, func(c *Duration, v int64) { c.weeks = v })
}

// WithDays returns a copy of d with the days field replaced.
func (d Duration) WithDays(n int64) (Duration, error) {
	return d.with("withdays", n, func(c *Duration, v int64) { c.days = v })
}

// WithHours returns a copy of d with the hours field replaced.
func (d Duration) WithHours(n int64) (Duration, error) {
	return d.with("withhours", n, func(c *Duration, v int64) { c.hours = v })
}

// WithMinutes returns a copy of d with the minutes field replaced.
func (d Duration) WithMinutes(n int64) (Duration, error) {
	return d.with("withminutes", n, func(c *Duration, v int64) { c.minutes = v })
}

// WithSeconds returns a copy of d with the seconds field replaced.
// The sub-second residue is kept.
func (d Duration) WithSeconds(n int64) (Duration, error) {
	return d.with("withseconds", n, func(c *Duration, v int64) { c.seconds = v })
}

// WithMilliseconds returns a copy of d with the sub-second residue
// replaced by n whole milliseconds. n must be within 0..999.
func (d Duration) WithMilliseconds(n int64) (Duration, error) {
	if n < 0 || n > 999 {
		return Zero, rangeErr("withmilliseconds", "milliseconds must be within 0..999, got %d", n)
	}
	d.nanos = int32(n * nanosPerMilli)
	if d.isMagnitudeZero() {
		return Zero, nil
	}
	return d, nil
}

func (d Duration) with(op string, n int64, set func(*Duration, int64)) (Duration, error) {
	if n < 0 {
		return Zero, rangeErr(op, "magnitude must not be negative, got %d", n)
	}
	if n > maxMagnitude {
		return Zero, rangeErr(op, "magnitude %d exceeds limit", n)
	}
	set(&d, n)
	if d.isMagnitudeZero() {
		return Zero, nil
	}
	return d, nil
}

// FormatWith renders d through f. A nil formatter falls back to the
// canonical ISO 8601 form.
func (d Duration) FormatWith(f Formatter) string {
	if f == nil {
		return d.String()
	}
	return f.FormatDuration(d)
}

// Formatter renders durations for humans. Implementations live in the
// locale package; the canonical ISO 8601 form never goes through a
// Formatter.
type Formatter interface {
	FormatDuration(d Duration) string
}

// GoString implements fmt.GoStringer so %#v prints a form that
// reconstructs the value.
func (d Duration) GoString() string {
	return fmt.Sprintf("duration.MustParse(%q)", d.String())
}

// MarshalText implements encoding.TextMarshaler using the canonical
// ISO 8601 form.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts
// anything Parse accepts.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Set implements flag.Value, so a Duration can back a command line
// flag directly.
func (d *Duration) Set(text string) error {
	return d.UnmarshalText([]byte(text))
}
