package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/tempus-dev/tempus-go/pkg/duration"
	"github.com/tempus-dev/tempus-go/pkg/presets"
)

// RunPreset runs the preset command group: save, get, list, delete.
func RunPreset(cfg Config, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printPresetUsage(stderr)
		return exitCommandError
	}

	path, err := presetPath(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	store := presets.NewStore(afero.NewOsFs(), path)
	if err := store.Load(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	sub := args[0]
	rest := args[1:]

	switch sub {
	case "save":
		return runPresetSave(store, rest, stdout, stderr)
	case "get":
		return runPresetGet(store, rest, stdout, stderr)
	case "list", "ls":
		return runPresetList(store, stdout)
	case "delete", "del", "rm":
		return runPresetDelete(store, rest, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "Unknown preset subcommand: %s\n", sub)
		printPresetUsage(stderr)
		return exitCommandError
	}
}

func runPresetSave(store *presets.Store, args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(stderr, "Usage: tempus-calc preset save <name> <duration...>")
		return exitCommandError
	}

	name := args[0]
	d, err := duration.Parse(joinText(args[1:]))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitEvalError
	}

	if err := store.Save(name, d); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	fmt.Fprintf(stdout, "%s = %s\n", name, d.String())
	return exitSuccess
}

func runPresetGet(store *presets.Store, args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "Usage: tempus-calc preset get <name>")
		return exitCommandError
	}

	d, err := store.Get(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, presets.ErrNotFound) {
			return exitEvalError
		}
		return exitCommandError
	}

	fmt.Fprintln(stdout, d.String())
	return exitSuccess
}

func runPresetList(store *presets.Store, stdout io.Writer) int {
	names := store.List()
	if len(names) == 0 {
		fmt.Fprintln(stdout, "No presets saved")
		return exitSuccess
	}

	for _, name := range names {
		d, err := store.Get(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(stdout, "%-20s %s\n", name, d.String())
	}
	return exitSuccess
}

func runPresetDelete(store *presets.Store, args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "Usage: tempus-calc preset delete <name>")
		return exitCommandError
	}

	if err := store.Delete(args[0]); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, presets.ErrNotFound) {
			return exitEvalError
		}
		return exitCommandError
	}

	fmt.Fprintf(stdout, "Deleted %s\n", args[0])
	return exitSuccess
}

func printPresetUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: tempus-calc preset <subcommand> [args...]

Subcommands:
  save <name> <duration>  Store a named duration
  get <name>              Print a stored duration
  list                    List stored durations
  delete <name>           Remove a stored duration

The store location comes from TEMPUS_PRESETS, defaulting to
~/.tempus/presets.json.

Examples:
  tempus-calc preset save standup PT15M
  tempus-calc preset get standup
  tempus-calc preset list`)
}
