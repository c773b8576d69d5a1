package command

import (
	"fmt"

	"github.com/point-o/sham/internal/store"
	"github.com/point-o/sham/internal/symbols"
	"github.com/point-o/sham/internal/value"
)

// Save persists the whole symbol table: "save yaml <path>" to a snapshot
// file, "save db <path>" to a SQLite database.
type Save struct{}

func (Save) Name() string  { return "save" }
func (Save) Usage() string { return "save yaml|db <path>" }

func (Save) Execute(env *symbols.Table, args []string) Result {
	if len(args) != 2 {
		return Failure("usage: " + Save{}.Usage())
	}
	format, path := args[0], args[1]
	snap := env.Snapshot()

	var (
		skipped int
		err     error
	)
	switch format {
	case "yaml":
		skipped, err = store.SaveYAML(path, snap)
	case "db":
		skipped, err = store.SaveDB(path, snap)
	default:
		return Failure(fmt.Sprintf("unknown save format '%s'", format))
	}
	if err != nil {
		return Failure(err.Error())
	}

	msg := fmt.Sprintf("saved %d variable(s) to %s", len(snap)-skipped, path)
	if skipped > 0 {
		msg += fmt.Sprintf(" (%d skipped: no serialized form)", skipped)
	}
	return Success(msg)
}

// Open restores a persisted session, replacing the current table.
type Open struct{}

func (Open) Name() string  { return "open" }
func (Open) Usage() string { return "open yaml|db <path>" }

func (Open) Execute(env *symbols.Table, args []string) Result {
	if len(args) != 2 {
		return Failure("usage: " + Open{}.Usage())
	}
	format, path := args[0], args[1]

	var (
		vars map[string]value.Value
		err  error
	)
	switch format {
	case "yaml":
		vars, err = store.LoadYAML(path)
	case "db":
		vars, err = store.LoadDB(path)
	default:
		return Failure(fmt.Sprintf("unknown open format '%s'", format))
	}
	if err != nil {
		return Failure(err.Error())
	}

	env.Replace(vars)
	return Success(fmt.Sprintf("restored %d variable(s) from %s", len(vars), path))
}
