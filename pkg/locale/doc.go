// Package locale renders duration values as text in several styles.
//
// Three formatters implement duration.Formatter:
//   - ISO: canonical ISO 8601 text ("P1DT2H30M")
//   - Compact: engineering shorthand ("1d2h30m")
//   - Text: human phrases in a negotiated language ("1 day, 2 hours")
//
// Text is backed by YAML dictionaries embedded under translations/,
// one file per language, compiled into a golang.org/x/text message
// catalog. Locales without a dictionary fall back to English. All
// formatters render the stored fields verbatim; none of them
// normalize or fold units.
package locale
