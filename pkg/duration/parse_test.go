package duration

import (
	"errors"
	"testing"

	"github.com/tempus-dev/tempus-go/pkg/units"
)

func TestParseISO(t *testing.T) {
	tests := []struct {
		input string
		want  string // canonical form
	}{
		// Single fields
		{"P1Y", "P1Y"},
		{"P2M", "P2M"},
		{"P3W", "P3W"},
		{"P4D", "P4D"},
		{"PT5H", "P5H"},
		{"PT6M", "PT6M"},
		{"PT7S", "PT7S"},

		// Compact forms without the time separator
		{"P1D2H", "P1D2H"},
		{"P2H", "P2H"},
		{"P30S", "PT30S"},
		{"P1D2H30M", "P1DT2H30M"},

		// Multi-field
		{"P1Y2M3D", "P1Y2M3D"},
		{"P1Y2M3DT4H5M6S", "P1Y2M3DT4H5M6S"},
		{"P1DT12H", "P1DT12H"},
		{"PT1H30M", "PT1H30M"},
		{"PT90M", "PT90M"},

		// The M ambiguity: months before T, minutes after
		{"P1M", "P1M"},
		{"PT1M", "PT1M"},
		{"P1M30M", "P1MT30M"},

		// Fractional seconds, dot and comma
		{"PT1.5S", "PT1.5S"},
		{"PT1,5S", "PT1.5S"},
		{"PT0.123456789S", "PT0.123456789S"},
		{"PT0.25S", "PT0.25S"},
		{"P1DT0.5S", "P1DT0.5S"},

		// Fraction digits beyond nanoseconds truncate
		{"PT1.1234567891S", "PT1.123456789S"},
		{"PT1.9999999999S", "PT1.999999999S"},

		// Zero spellings collapse to the canonical zero
		{"PT0S", "PT0S"},
		{"P0D", "PT0S"},
		{"P0Y", "PT0S"},
		{"P0W", "PT0S"},
		{"-P0D", "PT0S"},
		{"P0Y0M0DT0H0M0S", "PT0S"},

		// Signs
		{"-P1D", "-P1D"},
		{"-PT1.5S", "-PT1.5S"},
		{"-P1Y2M", "-P1Y2M"},

		// Case-insensitive designators
		{"p1y2m", "P1Y2M"},
		{"pt1h", "P1H"},
		{"-p3w", "-P3W"},

		// Zero-valued components are legal on input
		{"P0Y1M", "P1M"},
		{"PT0H5M", "PT5M"},

		// Surrounding whitespace is ignored
		{"  P1D  ", "P1D"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if got := d.String(); got != tt.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		offset int
		reason string
	}{
		{"Empty", "", 0, "empty input"},
		{"BareP", "P", 1, "at least one component is required"},
		{"NegativeBareP", "-P", 2, "at least one component is required"},
		{"DanglingT", "PT", 1, "time separator with no time components"},
		{"DanglingTAfterDate", "P1DT", 3, "time separator with no time components"},
		{"NumberWithoutUnit", "P1", 2, "number has no unit designator"},
		{"LeadingPlus", "+P1D", 0, "expected a number"},
		{"WeekWithYear", "P1Y1W", 4, "weeks cannot be combined with other designators"},
		{"WeekWithDay", "P1W2D", 2, "weeks cannot be combined with other designators"},
		{"WeekWithTime", "P1WT1H", 2, "weeks cannot be combined with other designators"},
		{"YearInsideTime", "PT1Y", 3, "designator out of order"},
		{"DayAfterHour", "P1H2D", 4, "designator out of order"},
		{"HourAfterMinute", "PT1M2H", 5, "designator out of order"},
		{"DuplicateDay", "P1D1D", 4, "duplicate designator"},
		{"DuplicateSecond", "PT1.5S2S", 7, "duplicate designator"},
		{"FractionOnDays", "P1.5D", 2, "fraction is only allowed on seconds"},
		{"FractionOnHours", "PT1.5H", 3, "fraction is only allowed on seconds"},
		{"FractionNoDigits", "PT1.S", 3, "fraction has no digits"},
		{"UnknownDesignator", "P1X", 2, "unknown designator"},
		{"InnerSpace", "P 1D", 1, "expected a digit"},
		{"DoubleT", "P1DT1HT1S", 6, "misplaced time separator"},
		{"Overflow", "P99999999999999999999D", 1, "value too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) expected error", tt.input)
			}
			if !errors.Is(err, ErrParse) {
				t.Errorf("Parse(%q) error = %v, want ErrParse", tt.input, err)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q) error type = %T, want *ParseError", tt.input, err)
			}
			if perr.Offset != tt.offset {
				t.Errorf("Parse(%q) offset = %d, want %d", tt.input, perr.Offset, tt.offset)
			}
			if perr.Reason != tt.reason {
				t.Errorf("Parse(%q) reason = %q, want %q", tt.input, perr.Reason, tt.reason)
			}
		})
	}
}

func TestParsePhrase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2 days", "P2D"},
		{"2 days, 1 hour", "P2D1H"},
		{"1 hour, 30 minutes", "PT1H30M"},
		{"1 hour and 30 minutes", "PT1H30M"},
		{"3 hrs and 20 mins", "PT3H20M"},
		{"1 year, 2 months", "P1Y2M"},
		{"2 weeks", "P2W"},
		{"90m", "PT90M"},
		{"1h30m", "PT1H30M"},
		{"2d12h", "P2D12H"},
		{"45s", "PT45S"},
		{"1.5 seconds", "PT1.5S"},
		{"500 ms", "PT0.5S"},
		{"250ms", "PT0.25S"},
		{"-2 days", "-P2D"},
		{"-1h30m", "-PT1H30M"},
		{"1 Hour", "P1H"},
		{"7 DAYS", "P7D"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if got := d.String(); got != tt.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePhraseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fragment string
	}{
		{"UnknownUnit", "2 lightyears", "lightyears"},
		{"BareNumber", "2", "2"},
		{"BareWord", "soon", "soon"},
		{"DuplicateUnit", "1h 2 hours", "hours"},
		{"DuplicateAlias", "3 days 4d", "d"},
		{"FractionalDays", "1.5 days", "1.5"},
		{"TrailingNumber", "1 hour 5", "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) expected error", tt.input)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q) error type = %T, want *ParseError", tt.input, err)
			}
			if perr.Fragment != tt.fragment {
				t.Errorf("Parse(%q) fragment = %q, want %q", tt.input, perr.Fragment, tt.fragment)
			}
		})
	}
}

// A malformed input led by the P designator reports the ISO failure,
// not the phrase fallback's.
func TestParseErrorSourceSelection(t *testing.T) {
	_, err := Parse("P1Y1W")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if perr.Fragment != "W" {
		t.Errorf("fragment = %q, want %q from the ISO grammar", perr.Fragment, "W")
	}

	_, err = Parse("2 dayz")
	if !errors.As(err, &perr) {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if perr.Fragment != "dayz" {
		t.Errorf("fragment = %q, want %q from the phrase grammar", perr.Fragment, "dayz")
	}
}

func TestParsePreservesFieldsVerbatim(t *testing.T) {
	// Parsing never settles carries or converts units.
	d := MustParse("PT90M")
	if d.Minutes() != 90 || d.Hours() != 0 {
		t.Errorf("PT90M fields = %+v, want minutes kept verbatim", d.Parts())
	}

	d = MustParse("P14M")
	if d.Months() != 14 || d.Years() != 0 {
		t.Errorf("P14M fields = %+v, want months kept verbatim", d.Parts())
	}
}

func TestParseFieldsMatchConstructors(t *testing.T) {
	fromText := MustParse("2 days, 1 hour")
	fromFields, err := FromFields(map[string]float64{"days": 2, "hours": 1})
	if err != nil {
		t.Fatalf("FromFields error = %v", err)
	}
	if !fromText.Equal(fromFields) {
		t.Errorf("Parse = %v, FromFields = %v, want equal", fromText, fromFields)
	}

	viaUnits, err := New(48, units.Hour)
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	if !viaUnits.Equal(MustParse("P2D")) {
		t.Errorf("New(48, hour) = %v, want equal to P2D", viaUnits)
	}
}
