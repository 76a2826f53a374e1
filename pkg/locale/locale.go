package locale

import (
	"embed"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/tempus-dev/tempus-go/pkg/duration"
)

//go:embed translations
var translationsFS embed.FS

var (
	translations catalog.Catalog
	supported    []language.Tag
	matcher      language.Matcher
)

func init() {
	cat, tags, err := newCatalogFromFS(translationsFS, "translations", "en")
	if err != nil {
		panic(fmt.Sprintf("failed to load locale dictionaries: %v", err))
	}
	translations = cat
	supported = tags
	matcher = language.NewMatcher(supported)
}

// Text renders durations as human phrases ("1 day, 2 hours") in the
// language negotiated at construction time.
type Text struct {
	tag     language.Tag
	printer *message.Printer
}

// NewText creates a Text formatter for the given BCP 47 locale.
// The locale is matched against the embedded dictionaries; unsupported
// locales fall back to English. An unparsable locale is an error.
func NewText(loc string) (*Text, error) {
	tag, err := language.Parse(loc)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", loc, err)
	}
	_, index, _ := matcher.Match(tag)
	chosen := supported[index]
	return &Text{
		tag:     chosen,
		printer: message.NewPrinter(chosen, message.Catalog(translations)),
	}, nil
}

// Tag returns the dictionary language the formatter settled on.
func (t *Text) Tag() language.Tag {
	return t.tag
}

// FormatDuration renders the duration as a phrase, one component per
// stored field ("1 day, 2 hours"). Fields are rendered verbatim, the
// way the value holds them. Zero renders as "0 seconds".
func (t *Text) FormatDuration(d duration.Duration) string {
	if d.IsZero() {
		return t.printer.Sprintf("duration.zero")
	}

	p := d.Parts()
	var parts []string
	add := func(n int64, unit string) {
		if n == 0 {
			return
		}
		parts = append(parts, t.printer.Sprintf("%d", n)+" "+t.unitWord(n, unit))
	}

	add(p.Years, "year")
	add(p.Months, "month")
	add(p.Weeks, "week")
	add(p.Days, "day")
	add(p.Hours, "hour")
	add(p.Minutes, "minute")

	if p.Seconds != 0 || p.Nanos != 0 {
		num := t.printer.Sprintf("%d", p.Seconds)
		if p.Nanos != 0 {
			frac := strconv.FormatInt(int64(p.Nanos)+nanosPerSecond, 10)
			num += t.printer.Sprintf("decimal.mark") + strings.TrimRight(frac[1:], "0")
		}
		word := "unit.second.other"
		if p.Seconds == 1 && p.Nanos == 0 {
			word = "unit.second.one"
		}
		parts = append(parts, num+" "+t.printer.Sprintf(word))
	}

	out := strings.Join(parts, ", ")
	if p.Negative {
		out = "-" + out
	}
	return out
}

func (t *Text) unitWord(n int64, unit string) string {
	key := "unit." + unit + ".other"
	if n == 1 {
		key = "unit." + unit + ".one"
	}
	return t.printer.Sprintf(key)
}

const nanosPerSecond = 1_000_000_000

var _ duration.Formatter = (*Text)(nil)
