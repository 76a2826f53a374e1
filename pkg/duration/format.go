package duration

import (
	"strconv"
	"strings"
)

// String returns the canonical ISO 8601 form of d. Zero-valued fields
// are omitted, the zero duration is "PT0S", and the time separator is
// only emitted when minutes or seconds follow; a lone hours field
// keeps the compact "P1D2H" shape. Weeks serialize as "PnW" on their
// own and fold into days when mixed with other fields, since the W
// designator cannot share text with any other.
func (d Duration) String() string {
	if d.IsZero() {
		return "PT0S"
	}

	var b strings.Builder
	if d.neg {
		b.WriteByte('-')
	}
	b.WriteByte('P')

	weeks, days := d.weeks, d.days
	if weeks != 0 && !d.weeksAlone() {
		days += weeks * daysPerWeek
		weeks = 0
	}

	writeField(&b, d.years, 'Y')
	writeField(&b, d.months, 'M')
	writeField(&b, weeks, 'W')
	writeField(&b, days, 'D')

	if d.minutes != 0 || d.seconds != 0 || d.nanos != 0 {
		b.WriteByte('T')
	}
	writeField(&b, d.hours, 'H')
	writeField(&b, d.minutes, 'M')
	if d.seconds != 0 || d.nanos != 0 {
		b.WriteString(strconv.FormatInt(d.seconds, 10))
		if d.nanos != 0 {
			frac := strconv.FormatInt(int64(d.nanos)+nanosPerSecond, 10)
			b.WriteByte('.')
			b.WriteString(strings.TrimRight(frac[1:], "0"))
		}
		b.WriteByte('S')
	}
	return b.String()
}

// weeksAlone reports whether weeks is the only nonzero field.
func (d Duration) weeksAlone() bool {
	return d.years == 0 && d.months == 0 && d.days == 0 &&
		d.hours == 0 && d.minutes == 0 && d.seconds == 0 && d.nanos == 0
}

func writeField(b *strings.Builder, value int64, designator byte) {
	if value == 0 {
		return
	}
	b.WriteString(strconv.FormatInt(value, 10))
	b.WriteByte(designator)
}
