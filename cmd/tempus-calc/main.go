// Command tempus-calc is a calculator for ISO 8601 durations.
//
// It parses duration text (ISO 8601 or human phrases), performs
// arithmetic on the values, applies them to calendar dates, renders
// them for a locale, and manages a store of named presets. An
// interactive mode evaluates duration expressions at a prompt.
//
// Usage:
//
//	tempus-calc <command> [flags] [args...]
//
// Commands:
//
//	parse      Parse duration text and show its fields
//	convert    Express a duration in another unit
//	normalize  Apply carries and show the tidied form
//	between    Measure the span between two dates
//	add        Apply durations to a date
//	fmt        Render a duration for a locale
//	preset     Manage named durations
//	repl       Interactive calculator
//	log        Inspect trace files written with --trace
//
// Examples:
//
//	# Parse and break down a duration
//	tempus-calc parse P1DT5H30M
//
//	# How many hours are in 90 minutes?
//	tempus-calc convert 90 minutes hours
//
//	# Month-end aware date arithmetic
//	tempus-calc add 2019-01-31 P1M
//
//	# German rendering
//	tempus-calc fmt --locale de P1DT2H
package main

import (
	"fmt"
	"os"

	"github.com/tempus-dev/tempus-go/cmd/tempus-calc/commands"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitEvalError    = 2
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitCommandError)
	}

	cfg, err := commands.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCommandError)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var exitCode int
	switch cmd {
	case "parse":
		exitCode = commands.RunParse(args, os.Stdout, os.Stderr)
	case "convert":
		exitCode = commands.RunConvert(args, os.Stdout, os.Stderr)
	case "normalize", "norm":
		exitCode = commands.RunNormalize(args, os.Stdout, os.Stderr)
	case "between":
		exitCode = commands.RunBetween(args, os.Stdout, os.Stderr)
	case "add":
		exitCode = commands.RunAdd(args, os.Stdout, os.Stderr)
	case "fmt":
		exitCode = commands.RunFmt(cfg, args, os.Stdout, os.Stderr)
	case "preset":
		exitCode = commands.RunPreset(cfg, args, os.Stdout, os.Stderr)
	case "repl":
		exitCode = commands.RunRepl(cfg, args, os.Stdout, os.Stderr)
	case "log":
		exitCode = commands.RunLog(args, os.Stdout, os.Stderr)
	case "help", "-h", "--help":
		printUsage()
		exitCode = exitSuccess
	case "version", "-v", "--version":
		fmt.Println("tempus-calc version 0.1.0")
		exitCode = exitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		exitCode = exitCommandError
	}

	os.Exit(exitCode)
}

func printUsage() {
	fmt.Println(`tempus-calc - ISO 8601 duration calculator

Usage:
  tempus-calc <command> [flags] [args...]

Commands:
  parse      Parse duration text and show its fields
  convert    Express a duration in another unit
  normalize  Apply carries and show the tidied form
  between    Measure the span between two dates
  add        Apply durations to a date
  fmt        Render a duration for a locale
  preset     Manage named durations
  repl       Interactive calculator
  log        Inspect trace files written with --trace

Options:
  -h, --help     Show this help message
  -v, --version  Show version information

Environment:
  TEMPUS_LOCALE   Default locale for fmt and repl (default "en")
  TEMPUS_PRESETS  Path of the preset store
  TEMPUS_VERBOSE  Mirror repl trace events to stderr

Examples:
  tempus-calc parse P1DT5H30M
  tempus-calc convert 90 minutes hours
  tempus-calc between 2019-01-31 2019-02-28
  tempus-calc add 2019-01-31 P1M
  tempus-calc fmt --locale de P1DT2H
  tempus-calc preset save standup PT15M

For command-specific help, run:
  tempus-calc <command> --help`)
}
