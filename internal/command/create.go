package command

import (
	"fmt"
	"strings"

	"github.com/point-o/sham/internal/evaluator"
	"github.com/point-o/sham/internal/symbols"
)

// Set creates or replaces a variable from an evaluated expression.
type Set struct{}

func (Set) Name() string  { return "set" }
func (Set) Usage() string { return "set <name> <expression>" }

func (Set) Execute(env *symbols.Table, args []string) Result {
	if len(args) < 2 {
		return Failure("usage: " + Set{}.Usage())
	}
	name := args[0]
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
