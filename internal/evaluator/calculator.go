// Package evaluator implements the arithmetic expression evaluator that
// powers bare-expression input and the set/edit commands. Expressions are
// decomposed recursively by substring, without a tokenizer: each level
// strips redundant outer parentheses, tries a literal, then a variable,
// then splits at the lowest-precedence operator outside parentheses.
package evaluator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/point-o/sham/internal/symbols"
	"github.com/point-o/sham/internal/value"
)

// ErrorPrefix marks a String Value that carries an evaluation failure.
// Evaluate never fails out of band: syntax problems, unknown variables,
// type mismatches and division by zero all come back as String Values
// with this prefix, so results travel one channel whatever happened.
const ErrorPrefix = "Error: "

// errKind classifies failures inside a single evaluation. The kind never
// reaches callers; it exists so tests and future surfaces can branch on
// failure class without parsing message text.
type errKind int

const (
	errSyntax errKind = iota
	errUndefinedVar
	errTypeMismatch
	errArithmetic
)

type evalErr struct {
	kind errKind
	msg  string
}

var identPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// Calculator evaluates expressions against a symbol table. It holds no
// state of its own between calls; the table is read, never written.
type Calculator struct {
	env *symbols.Table
}

func New(env *symbols.Table) *Calculator {
	return &Calculator{env: env}
}

// Evaluate evaluates expression and returns a Value. The call is total:
// every failure, including an unexpected panic from a lower layer, is
// rendered as an error Value at this single boundary.
func (c *Calculator) Evaluate(expression string) (result value.Value) {
	defer func() {
		if r := recover(); r != nil {
			result = value.OfString(ErrorPrefix + fmt.Sprint(r))
		}
	}()
	v, err := c.eval(expression)
	if err != nil {
		return value.OfString(ErrorPrefix + err.msg)
	}
	return v
}

// IsError reports whether v is an error Value produced by Evaluate.
func IsError(v value.Value) bool {
	return v.IsString() && strings.HasPrefix(v.AsString(), ErrorPrefix)
}

// ErrorMessage strips the error prefix, leaving the human-readable detail.
func ErrorMessage(v value.Value) string {
	return strings.TrimPrefix(v.AsString(), ErrorPrefix)
}

func (c *Calculator) eval(expr string) (value.Value, *evalErr) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return value.Value{}, &evalErr{errSyntax, "Empty expression"}
	}

	if !balanced(expr) {
		return value.Value{}, &evalErr{errSyntax, "Unbalanced parentheses in expression"}
	}

	// Strip outer parentheses one layer at a time. The interior must be
	// independently balanced so "(a)+(b)" is never mistaken for a single
	// wrapped expression.
	for strings.HasPrefix(expr, "(") && strings.HasSuffix(expr, ")") &&
		balanced(expr[1:len(expr)-1]) {
		expr = expr[1 : len(expr)-1]
	}

	// Literal. A decimal point selects double parsing; a failed parse is
	// not an error yet, the text may still split at an operator.
	if strings.Contains(expr, ".") {
		if f, err := strconv.ParseFloat(expr, 64); err == nil {
			return value.OfDouble(f), nil
		}
	} else if n, err := strconv.ParseInt(expr, 10, 32); err == nil {
		return value.OfInt(int32(n)), nil
	}

	// Variable reference.
	if identPattern.MatchString(expr) {
		v, ok := c.env.Get(expr)
		if !ok {
			return value.Value{}, &evalErr{errUndefinedVar, fmt.Sprintf("Undefined variable '%s'", expr)}
		}
		return v, nil
	}

	// Binary operator split. Left errors surface first: the left side is
	// evaluated before the right is looked at.
	if left, op, right, ok := split(expr); ok {
		lv, lerr := c.eval(left)
		if lerr != nil {
			return value.Value{}, lerr
		}
		rv, rerr := c.eval(right)
		if rerr != nil {
			return value.Value{}, rerr
		}
		return apply(op, lv, rv)
	}

	return value.Value{}, &evalErr{errSyntax, fmt.Sprintf("Invalid expression '%s'", expr)}
}

// balanced reports whether parentheses nest correctly: the running depth
// never goes negative and ends at zero.
func balanced(expr string) bool {
	depth := 0
	for i := 0; i < len(expr); i++ {
		switch expr[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// split locates the operator to evaluate last. Two passes in precedence
// order: '+' then '-', and only if neither occurs, '*' then '/'. Within a
// pass the rightmost occurrence at parenthesis depth zero wins, which
// gives left-to-right association for equal precedence. The first and
// last characters are never eligible, so a leading sign or a dangling
// trailing operator does not split.
func split(expr string) (left string, op byte, right string, ok bool) {
	for _, pass := range [2][2]byte{{'+', '-'}, {'*', '/'}} {
		for _, cand := range pass {
			if i := operatorIndex(expr, cand); i > 0 {
				return expr[:i], cand, expr[i+1:], true
			}
		}
	}
	return "", 0, "", false
}

func operatorIndex(expr string, op byte) int {
	depth := 0
	last := -1
	for i := 0; i < len(expr); i++ {
		switch c := expr[i]; {
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == op && depth == 0:
			if i > 0 && i < len(expr)-1 {
				last = i
			}
		}
	}
	return last
}

// apply dispatches one operator over two already-evaluated operands.
// Operand kinds are checked here, before the Value operator runs, so the
// lower layer's failure path is never user-visible.
func apply(op byte, left, right value.Value) (value.Value, *evalErr) {
	verb := map[byte]string{'+': "add", '-': "subtract", '*': "multiply", '/': "divide"}[op]
	if !left.IsNumeric() || !right.IsNumeric() {
		return value.Value{}, &evalErr{errTypeMismatch,
			fmt.Sprintf("Cannot %s %s and %s", verb, typeName(left), typeName(right))}
	}

	var (
		v   value.Value
		err error
	)
	switch op {
	case '+':
		v, err = left.Add(right)
	case '-':
		v, err = left.Subtract(right)
	case '*':
		v, err = left.Multiply(right)
	case '/':
		d, _ := right.AsDouble()
		if d == 0 {
			return value.Value{}, &evalErr{errArithmetic, "Division by zero"}
		}
		v, err = left.Divide(right)
	}
	if err != nil {
		// Unreachable after the numeric pre-check, but the contract is
		// that nothing escapes this layer unrendered.
		return value.Value{}, &evalErr{errTypeMismatch, err.Error()}
	}
	return v, nil
}

func typeName(v value.Value) string {
	return strings.ToLower(v.TypeName())
}
