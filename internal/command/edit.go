package command

import (
	"fmt"
	"strings"

	"github.com/point-o/sham/internal/evaluator"
	"github.com/point-o/sham/internal/symbols"
)

// Edit replaces the value of an existing variable. Unlike set it refuses
// to create new names, which catches typos in long sessions.
type Edit struct{}

func (Edit) Name() string  { return "edit" }
func (Edit) Usage() string { return "edit <name> <expression>" }

func (Edit) Execute(env *symbols.Table, args []string) Result {
	if len(args) < 2 {
		return Failure("usage: " + Edit{}.Usage())
	}
	name := args[0]
	if _, ok := env.Get(name); !ok {
		return Failure(fmt.Sprintf("unknown variable '%s' (use set to create it)", name))
	}
	expr := strings.Join(args[1:], " ")

	v := evaluator.New(env).Evaluate(expr)
	if evaluator.IsError(v) {
		return Failure(evaluator.ErrorMessage(v))
	}
	if err := env.Set(name, v); err != nil {
		return Failure(err.Error())
	}
	return Success(fmt.Sprintf("%s = %s", name, v.AsString()))
}

// Drop removes a variable.
type Drop struct{}

func (Drop) Name() string  { return "drop" }
func (Drop) Usage() string { return "drop <name>" }

func (Drop) Execute(env *symbols.Table, args []string) Result {
	if len(args) != 1 {
		return Failure("usage: " + Drop{}.Usage())
	}
	if !env.Delete(args[0]) {
		return Failure(fmt.Sprintf("unknown variable '%s'", args[0]))
	}
	return Success(fmt.Sprintf("dropped %s", args[0]))
}
