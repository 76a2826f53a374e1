package commands

import (
	"flag"
	"fmt"
	"io"

	"github.com/tempus-dev/tempus-go/pkg/duration"
	"github.com/tempus-dev/tempus-go/pkg/units"
)

// RunConvert runs the convert command. The last argument names the
// target unit; everything before it is the duration text, so both
// "convert P1D hours" and "convert 90 minutes hours" work.
func RunConvert(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printConvertUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	rest := fs.Args()
	if len(rest) < 2 {
		fmt.Fprintln(stderr, "Error: duration text and target unit required")
		printConvertUsage(stderr)
		return exitCommandError
	}

	unitName := rest[len(rest)-1]
	unit, err := units.Resolve(unitName)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitEvalError
	}

	text := joinText(rest[:len(rest)-1])
	d, err := duration.Parse(text)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitEvalError
	}

	value, err := d.In(unit)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitEvalError
	}

	fmt.Fprintf(stdout, "%g %s\n", value, pluralUnit(value, unit))
	if unit == units.Month || unit == units.Year || d.Months() != 0 || d.Years() != 0 {
		fmt.Fprintln(stdout, "(approximate: mean Gregorian month and year lengths)")
	}
	return exitSuccess
}

// pluralUnit returns the unit name matching the magnitude.
func pluralUnit(value float64, unit units.Unit) string {
	if value == 1 || value == -1 {
		return unit.String()
	}
	return unit.String() + "s"
}

func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: tempus-calc convert <text...> <unit>

The last argument is the target unit; the rest is the duration.
Conversions involving weeks use the exact 7-day ratio; months and
years use the mean Gregorian lengths and are marked approximate.

Examples:
  tempus-calc convert 90 minutes hours
  tempus-calc convert P1D minutes
  tempus-calc convert P1Y days`)
}
