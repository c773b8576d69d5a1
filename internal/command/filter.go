package command

import (
	"fmt"
	"strconv"

	"github.com/point-o/sham/internal/symbols"
	"github.com/point-o/sham/internal/value"
)

// Filter keeps the elements of a list variable whose numeric value
// passes a comparison against a literal, storing the result in a new
// variable. Non-numeric elements never pass. Comparison lives here, not
// in the evaluator: the expression grammar stays arithmetic-only.
type Filter struct{}

func (Filter) Name() string  { return "filter" }
func (Filter) Usage() string { return "filter <src> <dst> <op> <literal>   (op: < <= > >= == !=)" }

func (Filter) Execute(env *symbols.Table, args []string) Result {
	if len(args) != 4 {
		return Failure("usage: " + Filter{}.Usage())
	}
	srcName, dstName, op, lit := args[0], args[1], args[2], args[3]

	src, ok := env.Get(srcName)
	if !ok {
		return Failure(fmt.Sprintf("unknown variable '%s'", srcName))
	}
	items, err := src.AsList()
	if err != nil {
		return Failure(fmt.Sprintf("%s is %s, not a list", srcName, src.TypeName()))
	}

	threshold, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return Failure(fmt.Sprintf("'%s' is not a numeric literal", lit))
	}
	cmp, ok := comparators[op]
	if !ok {
		return Failure(fmt.Sprintf("unknown comparison '%s'", op))
	}

	kept := make([]value.Value, 0, len(items))
	for _, item := range items {
		if !item.IsNumeric() {
			continue
		}
		d, _ := item.AsDouble()
		if cmp(d, threshold) {
			kept = append(kept, item)
		}
	}

	if err := env.Set(dstName, value.OfList(kept)); err != nil {
		return Failure(err.Error())
	}
	return Success(fmt.Sprintf("%s = %d of %d element(s)", dstName, len(kept), len(items)))
}

var comparators = map[string]func(a, b float64) bool{
	"<":  func(a, b float64) bool { return a < b },
	"<=": func(a, b float64) bool { return a <= b },
	">":  func(a, b float64) bool { return a > b },
	">=": func(a, b float64) bool { return a >= b },
	"==": func(a, b float64) bool { return a == b },
	"!=": func(a, b float64) bool { return a != b },
}
