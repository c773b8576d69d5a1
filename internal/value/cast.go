package value

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrCast is returned by typed accessors applied to an incompatible kind.
	ErrCast = errors.New("incompatible kind")
	// ErrUnsupported is returned by arithmetic on non-numeric operands.
	ErrUnsupported = errors.New("operation requires numeric operands")
)

// IsNull reports a NullKind Value.
func (v Value) IsNull() bool { return v.kind == NullKind }

// IsNumeric reports whether v participates in arithmetic.
func (v Value) IsNumeric() bool {
	switch v.kind {
	case IntegerKind, LongKind, DoubleKind, FloatKind:
		return true
	}
	return false
}

func (v Value) IsBoolean() bool { return v.kind == BooleanKind }
func (v Value) IsString() bool  { return v.kind == StringKind }
func (v Value) IsList() bool    { return v.kind == ListKind }
func (v Value) IsMap() bool     { return v.kind == MapKind }

// IsCollection reports any of the sequence kinds: list, collection, array.
func (v Value) IsCollection() bool {
	switch v.kind {
	case ListKind, CollectionKind, ArrayKind:
		return true
	}
	return false
}

func (v Value) IsCustom() bool { return v.kind == CustomKind }

// AsInt converts any numeric kind to int32, truncating wider values.
func (v Value) AsInt() (int32, error) {
	switch v.kind {
	case IntegerKind:
		return v.raw.(int32), nil
	case LongKind:
		return int32(v.raw.(int64)), nil
	case DoubleKind:
		return int32(v.raw.(float64)), nil
	case FloatKind:
		return int32(v.raw.(float32)), nil
	}
	return 0, fmt.Errorf("cannot cast %s to integer: %w", v.TypeName(), ErrCast)
}

// AsLong converts any numeric kind to int64.
func (v Value) AsLong() (int64, error) {
	switch v.kind {
	case IntegerKind:
		return int64(v.raw.(int32)), nil
	case LongKind:
		return v.raw.(int64), nil
	case DoubleKind:
		return int64(v.raw.(float64)), nil
	case FloatKind:
		return int64(v.raw.(float32)), nil
	}
	return 0, fmt.Errorf("cannot cast %s to long: %w", v.TypeName(), ErrCast)
}

// AsDouble converts any numeric kind to float64.
func (v Value) AsDouble() (float64, error) {
	switch v.kind {
	case IntegerKind:
		return float64(v.raw.(int32)), nil
	case LongKind:
		return float64(v.raw.(int64)), nil
	case DoubleKind:
		return v.raw.(float64), nil
	case FloatKind:
		return float64(v.raw.(float32)), nil
	}
	return 0, fmt.Errorf("cannot cast %s to double: %w", v.TypeName(), ErrCast)
}

// AsFloat converts any numeric kind to float32.
func (v Value) AsFloat() (float32, error) {
	switch v.kind {
	case IntegerKind:
		return float32(v.raw.(int32)), nil
	case LongKind:
		return float32(v.raw.(int64)), nil
	case DoubleKind:
		return float32(v.raw.(float64)), nil
	case FloatKind:
		return v.raw.(float32), nil
	}
	return 0, fmt.Errorf("cannot cast %s to float: %w", v.TypeName(), ErrCast)
}

// AsBool applies the lexical coercion policy: Boolean kinds convert
// directly, numeric kinds map zero/nonzero, and strings compare
// case-insensitively against "true", "1", "yes" and "on" (anything else
// is false). Other kinds fail.
func (v Value) AsBool() (bool, error) {
	switch v.kind {
	case BooleanKind:
		return v.raw.(bool), nil
	case IntegerKind, LongKind, DoubleKind, FloatKind:
		d, _ := v.AsDouble()
		return d != 0, nil
	case StringKind:
		switch strings.ToLower(strings.TrimSpace(v.raw.(string))) {
		case "true", "1", "yes", "on":
			return true, nil
		}
		return false, nil
	}
	return false, fmt.Errorf("cannot cast %s to boolean: %w", v.TypeName(), ErrCast)
}

// AsString is total: it never fails, rendering every kind to a canonical
// textual form and NullKind to the "null" sentinel.
func (v Value) AsString() string {
	switch v.kind {
	case NullKind:
		return "null"
	case IntegerKind:
		return strconv.FormatInt(int64(v.raw.(int32)), 10)
	case LongKind:
		return strconv.FormatInt(v.raw.(int64), 10)
	case DoubleKind:
		return strconv.FormatFloat(v.raw.(float64), 'g', -1, 64)
	case FloatKind:
		return strconv.FormatFloat(float64(v.raw.(float32)), 'g', -1, 32)
	case BooleanKind:
		return strconv.FormatBool(v.raw.(bool))
	case StringKind:
		return v.raw.(string)
	case ListKind:
		items := v.raw.([]Value)
		parts := make([]string, len(items))
		for i, it := range items {
			parts[i] = it.AsString()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case MapKind:
		m := v.raw.(map[string]Value)
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + m[k].AsString()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return fmt.Sprintf("%v", v.raw)
}

// AsList succeeds only for ListKind.
func (v Value) AsList() ([]Value, error) {
	if v.kind != ListKind {
		return nil, fmt.Errorf("cannot cast %s to list: %w", v.TypeName(), ErrCast)
	}
	return v.raw.([]Value), nil
}

// AsMap succeeds only for MapKind.
func (v Value) AsMap() (map[string]Value, error) {
	if v.kind != MapKind {
		return nil, fmt.Errorf("cannot cast %s to map: %w", v.TypeName(), ErrCast)
	}
	return v.raw.(map[string]Value), nil
}
