package value

import "fmt"

// Widening order for arithmetic results. The position of FloatKind above
// LongKind is deliberate and must not be reordered.
var numericRank = map[Kind]int{
	IntegerKind: 0,
	LongKind:    1,
	FloatKind:   2,
	DoubleKind:  3,
}

func wider(a, b Kind) Kind {
	if numericRank[a] >= numericRank[b] {
		return a
	}
	return b
}

func (v Value) arithCheck(op string, o Value) error {
	if !v.IsNumeric() || !o.IsNumeric() {
		return fmt.Errorf("%s of %s and %s: %w", op, v.TypeName(), o.TypeName(), ErrUnsupported)
	}
	return nil
}

// Add returns v + o tagged with the wider operand kind. Both operands
// must be numeric.
func (v Value) Add(o Value) (Value, error) {
	if err := v.arithCheck("addition", o); err != nil {
		return Value{}, err
	}
	switch wider(v.kind, o.kind) {
	case DoubleKind:
		a, _ := v.AsDouble()
		b, _ := o.AsDouble()
		return OfDouble(a + b), nil
	case FloatKind:
		a, _ := v.AsFloat()
		b, _ := o.AsFloat()
		return OfFloat(a + b), nil
	case LongKind:
		a, _ := v.AsLong()
		b, _ := o.AsLong()
		return OfLong(a + b), nil
	}
	a, _ := v.AsInt()
	b, _ := o.AsInt()
	return OfInt(a + b), nil
}

// Subtract returns v - o tagged with the wider operand kind.
func (v Value) Subtract(o Value) (Value, error) {
	if err := v.arithCheck("subtraction", o); err != nil {
		return Value{}, err
	}
	switch wider(v.kind, o.kind) {
	case DoubleKind:
		a, _ := v.AsDouble()
		b, _ := o.AsDouble()
		return OfDouble(a - b), nil
	case FloatKind:
		a, _ := v.AsFloat()
		b, _ := o.AsFloat()
		return OfFloat(a - b), nil
	case LongKind:
		a, _ := v.AsLong()
		b, _ := o.AsLong()
		return OfLong(a - b), nil
	}
	a, _ := v.AsInt()
	b, _ := o.AsInt()
	return OfInt(a - b), nil
}

// Multiply returns v * o tagged with the wider operand kind.
func (v Value) Multiply(o Value) (Value, error) {
	if err := v.arithCheck("multiplication", o); err != nil {
		return Value{}, err
	}
	switch wider(v.kind, o.kind) {
	case DoubleKind:
		a, _ := v.AsDouble()
		b, _ := o.AsDouble()
		return OfDouble(a * b), nil
	case FloatKind:
		a, _ := v.AsFloat()
		b, _ := o.AsFloat()
		return OfFloat(a * b), nil
	case LongKind:
		a, _ := v.AsLong()
		b, _ := o.AsLong()
		return OfLong(a * b), nil
	}
	a, _ := v.AsInt()
	b, _ := o.AsInt()
	return OfInt(a * b), nil
}

// Divide always computes in double precision and returns a Double-tagged
// result, whatever the operand kinds. It does not guard against a zero
// divisor; the caller owns that policy.
func (v Value) Divide(o Value) (Value, error) {
	if err := v.arithCheck("division", o); err != nil {
		return Value{}, err
	}
	a, _ := v.AsDouble()
	b, _ := o.AsDouble()
	return OfDouble(a / b), nil
}
