package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tempus-dev/tempus-go/pkg/duration"
)

func TestCompact(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"DayHoursMinutes", "P1DT2H30M", "1d2h30m"},
		{"YearsAndMonths", "P1Y2M", "1y2mo"},
		{"Weeks", "P4W", "4w"},
		{"VerbatimMinutes", "PT90M", "90m"},
		{"Seconds", "PT30S", "30s"},
		{"FractionSeconds", "PT0.5S", "0.5s"},
		{"Negative", "-PT90M", "-90m"},
		{"Zero", "PT0S", "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := duration.MustParse(tt.text)
			assert.Equal(t, tt.want, Compact{}.FormatDuration(d))
		})
	}
}

func TestCompactEveryField(t *testing.T) {
	d, err := duration.FromParts(duration.Parts{
		Years: 1, Months: 2, Weeks: 3, Days: 4,
		Hours: 5, Minutes: 6, Seconds: 7, Nanos: 250_000_000,
	})
	assert.NoError(t, err)
	assert.Equal(t, "1y2mo3w4d5h6m7.25s", Compact{}.FormatDuration(d))
}

func TestISO(t *testing.T) {
	d := duration.MustParse("P1D2H")
	assert.Equal(t, "P1D2H", ISO{}.FormatDuration(d))
	assert.Equal(t, d.String(), ISO{}.FormatDuration(d))
}
