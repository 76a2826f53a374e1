package duration

import (
	"strconv"
	"strings"

	"github.com/tempus-dev/tempus-go/pkg/units"
)

// Designator slots in grammar order. A designator resolves to the
// lowest legal slot at or after the cursor, which is what makes the
// compact forms ("P1D2H") and the M ambiguity (months before T,
// minutes after) fall out of a single rule.
const (
	slotYears = iota
	slotMonths
	slotWeeks
	slotDays
	slotTime
	slotHours
	slotMinutes
	slotSeconds
	slotDone
)

// Parse converts duration text into a Duration. The primary grammar
// is ISO 8601 ("P1DT2H", "-PT1.5S", "P3W"); a human-phrase fallback
// accepts forms like "2 days, 1 hour" and "1h30m" with the unit
// names the registry resolves. Malformed text yields a *ParseError
// matching ErrParse.
func Parse(text string) (Duration, error) {
	trimmed := strings.TrimSpace(text)
	d, isoErr := parseISO(trimmed)
	if isoErr == nil {
		return d, nil
	}
	d, phraseErr := parsePhrase(trimmed)
	if phraseErr == nil {
		return d, nil
	}
	// Report the failure from the grammar the input was evidently
	// written in: anything led by a P designator is ISO.
	if looksISO(trimmed) {
		return Zero, isoErr
	}
	return Zero, phraseErr
}

func looksISO(text string) bool {
	rest := strings.TrimPrefix(text, "-")
	return len(rest) > 0 && (rest[0] == 'P' || rest[0] == 'p')
}

func parseISO(text string) (Duration, error) {
	fail := func(offset int, fragment, reason string) (Duration, error) {
		return Zero, &ParseError{Input: text, Offset: offset, Fragment: fragment, Reason: reason}
	}

	if text == "" {
		return fail(0, "", "empty input")
	}
	i := 0
	neg := false
	if text[i] == '-' {
		neg = true
		i++
	}
	if i >= len(text) || (text[i] != 'P' && text[i] != 'p') {
		frag := ""
		if i < len(text) {
			frag = text[i : i+1]
		}
		return fail(i, frag, "must start with 'P'")
	}
	i++

	var d Duration
	cursor := slotYears
	inTime := false
	fields := 0
	timeFields := 0
	tOffset := -1
	weekOffset := -1
	var filled [slotDone]bool

	for i < len(text) {
		c := text[i]
		if c == 'T' || c == 't' {
			if inTime || cursor > slotTime {
				return fail(i, text[i:i+1], "misplaced time separator")
			}
			inTime = true
			tOffset = i
			cursor = slotHours
			i++
			continue
		}
		if c < '0' || c > '9' {
			return fail(i, text[i:i+1], "expected a digit")
		}

		numStart := i
		for i < len(text) && text[i] >= '0' && text[i] <= '9' {
			i++
		}
		digits := text[numStart:i]
		fracStart := -1
		var fracDigits string
		if i < len(text) && (text[i] == '.' || text[i] == ',') {
			fracStart = i
			i++
			digitStart := i
			for i < len(text) && text[i] >= '0' && text[i] <= '9' {
				i++
			}
			fracDigits = text[digitStart:i]
			if fracDigits == "" {
				return fail(fracStart, text[fracStart:fracStart+1], "fraction has no digits")
			}
		}
		if i >= len(text) {
			return fail(len(text), "", "number has no unit designator")
		}

		des := text[i]
		desOffset := i
		i++
		var slot int
		switch des {
		case 'Y', 'y':
			slot = slotYears
		case 'M', 'm':
			if inTime || cursor > slotMonths {
				slot = slotMinutes
			} else {
				slot = slotMonths
			}
		case 'W', 'w':
			slot = slotWeeks
		case 'D', 'd':
			slot = slotDays
		case 'H', 'h':
			slot = slotHours
		case 'S', 's':
			slot = slotSeconds
		default:
			return fail(desOffset, string(des), "unknown designator")
		}
		if slot < cursor {
			if filled[slot] {
				return fail(desOffset, string(des), "duplicate designator")
			}
			return fail(desOffset, string(des), "designator out of order")
		}
		if fracStart >= 0 && slot != slotSeconds {
			return fail(fracStart, text[fracStart:fracStart+1], "fraction is only allowed on seconds")
		}

		value, err := strconv.ParseInt(digits, 10, 64)
		if err != nil || value > maxMagnitude {
			return fail(numStart, digits, "value too large")
		}
		switch slot {
		case slotYears:
			d.years = value
		case slotMonths:
			d.months = value
		case slotWeeks:
			d.weeks = value
			weekOffset = desOffset
		case slotDays:
			d.days = value
		case slotHours:
			d.hours = value
		case slotMinutes:
			d.minutes = value
		case slotSeconds:
			d.seconds = value
			d.nanos = fractionNanos(fracDigits)
		}
		filled[slot] = true
		if slot >= slotHours {
			timeFields++
		}
		fields++
		cursor = slot + 1
	}

	if inTime && timeFields == 0 {
		return fail(tOffset, "T", "time separator with no time components")
	}
	if fields == 0 {
		return fail(len(text), "", "at least one component is required")
	}
	if weekOffset >= 0 && (fields > 1 || inTime) {
		return fail(weekOffset, "W", "weeks cannot be combined with other designators")
	}

	if d.isMagnitudeZero() {
		return Zero, nil
	}
	d.neg = neg
	return d, nil
}

// fractionNanos converts fraction digits into nanoseconds, truncating
// anything beyond the ninth digit.
func fractionNanos(digits string) int32 {
	var n int32
	for i := 0; i < 9; i++ {
		n *= 10
		if i < len(digits) {
			n += int32(digits[i] - '0')
		}
	}
	return n
}

// parsePhrase scans the human fallback grammar: one or more
// magnitude/unit pairs separated by whitespace, commas or the word
// "and", with compact number+suffix runs ("1h30m") also accepted.
func parsePhrase(text string) (Duration, error) {
	fail := func(offset int, fragment, reason string) (Duration, error) {
		return Zero, &ParseError{Input: text, Offset: offset, Fragment: fragment, Reason: reason}
	}

	if text == "" {
		return fail(0, "", "empty input")
	}
	i := 0
	neg := false
	if text[i] == '-' {
		neg = true
		i++
	}

	fields := make(map[string]float64)
	seen := make(map[units.Unit]bool)
	pairs := 0
	for i < len(text) {
		c := text[i]
		if c == ' ' || c == '\t' || c == ',' {
			i++
			continue
		}
		if c < '0' || c > '9' {
			// The only bare word allowed between pairs is "and".
			wordStart := i
			for i < len(text) && isLetter(text[i]) {
				i++
			}
			word := text[wordStart:i]
			if strings.EqualFold(word, "and") && pairs > 0 {
				continue
			}
			if word == "" {
				return fail(wordStart, text[wordStart:wordStart+1], "expected a number")
			}
			return fail(wordStart, word, "expected a number")
		}

		numStart := i
		for i < len(text) && text[i] >= '0' && text[i] <= '9' {
			i++
		}
		if i < len(text) && text[i] == '.' {
			i++
			for i < len(text) && text[i] >= '0' && text[i] <= '9' {
				i++
			}
		}
		number := text[numStart:i]
		magnitude, err := strconv.ParseFloat(number, 64)
		if err != nil {
			return fail(numStart, number, "malformed number")
		}

		for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
			i++
		}
		unitStart := i
		for i < len(text) && isLetter(text[i]) {
			i++
		}
		name := text[unitStart:i]
		if name == "" {
			return fail(numStart, number, "number has no unit")
		}
		unit, err := units.Resolve(name)
		if err != nil {
			return fail(unitStart, name, "unknown unit")
		}
		if seen[unit] {
			return fail(unitStart, name, "duplicate unit")
		}
		seen[unit] = true
		if magnitude != float64(int64(magnitude)) && unit != units.Second && unit != units.Millisecond {
			return fail(numStart, number, "fractional magnitude is only allowed on seconds and milliseconds")
		}
		if magnitude > float64(maxMagnitude) {
			return fail(numStart, number, "value too large")
		}
		fields[unit.String()] = magnitude
		pairs++
	}
	if pairs == 0 {
		return fail(len(text), "", "at least one magnitude and unit is required")
	}

	d, err := FromFields(fields)
	if err != nil {
		return fail(0, "", err.Error())
	}
	if neg {
		d = d.Negate()
	}
	return d, nil
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
