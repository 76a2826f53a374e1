package locale

import (
	"strconv"
	"strings"

	"github.com/tempus-dev/tempus-go/pkg/duration"
)

// ISO renders durations in canonical ISO 8601 text. It exists so
// callers can treat the canonical form as just another style.
type ISO struct{}

// FormatDuration returns the canonical ISO 8601 form.
func (ISO) FormatDuration(d duration.Duration) string {
	return d.String()
}

// Compact renders durations in engineering shorthand: "1d2h3m",
// "1y2mo", "-90m". Fields are rendered verbatim; zero is "0s".
type Compact struct{}

// FormatDuration returns the compact form.
func (Compact) FormatDuration(d duration.Duration) string {
	if d.IsZero() {
		return "0s"
	}

	p := d.Parts()
	var b strings.Builder
	if p.Negative {
		b.WriteByte('-')
	}

	writeCompact(&b, p.Years, "y")
	writeCompact(&b, p.Months, "mo")
	writeCompact(&b, p.Weeks, "w")
	writeCompact(&b, p.Days, "d")
	writeCompact(&b, p.Hours, "h")
	writeCompact(&b, p.Minutes, "m")

	if p.Seconds != 0 || p.Nanos != 0 {
		b.WriteString(strconv.FormatInt(p.Seconds, 10))
		if p.Nanos != 0 {
			frac := strconv.FormatInt(int64(p.Nanos)+nanosPerSecond, 10)
			b.WriteByte('.')
			b.WriteString(strings.TrimRight(frac[1:], "0"))
		}
		b.WriteByte('s')
	}

	return b.String()
}

func writeCompact(b *strings.Builder, value int64, suffix string) {
	if value == 0 {
		return
	}
	b.WriteString(strconv.FormatInt(value, 10))
	b.WriteString(suffix)
}

var (
	_ duration.Formatter = ISO{}
	_ duration.Formatter = Compact{}
)
