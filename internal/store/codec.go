// Package store persists symbol table snapshots. Two backends share one
// kind-tagged document codec: a YAML file holding the whole table, and a
// SQLite database with one row per variable. Tagging every value with its
// kind keeps round-trips faithful — a long stays a long, a float stays a
// float, instead of collapsing to whatever the serializer would infer.
package store

import (
	"fmt"

	"github.com/point-o/sham/internal/value"
)

// record is the serialized form of one Value. The value field must not
// be omitempty: zero scalars (0, false, "") are real payloads.
type record struct {
	Kind   string            `yaml:"kind"`
	Value  any               `yaml:"value"`
	Items  []record          `yaml:"items,omitempty"`
	Fields map[string]record `yaml:"fields,omitempty"`
}

// encode renders v as a record. Opaque kinds (object, custom, collection,
// array) have no faithful serialized form and report ok=false; a list or
// map containing one is skipped whole.
func encode(v value.Value) (record, bool) {
	switch v.Kind() {
	case value.NullKind:
		return record{Kind: "null"}, true
	case value.IntegerKind:
		n, _ := v.AsInt()
		return record{Kind: "integer", Value: int(n)}, true
	case value.LongKind:
		n, _ := v.AsLong()
		return record{Kind: "long", Value: n}, true
	case value.DoubleKind:
		f, _ := v.AsDouble()
		return record{Kind: "double", Value: f}, true
	case value.FloatKind:
		f, _ := v.AsDouble()
		return record{Kind: "float", Value: f}, true
	case value.BooleanKind:
		b, _ := v.AsBool()
		return record{Kind: "boolean", Value: b}, true
	case value.StringKind:
		return record{Kind: "string", Value: v.AsString()}, true
	case value.ListKind:
		items, _ := v.AsList()
		recs := make([]record, len(items))
		for i, it := range items {
			rec, ok := encode(it)
			if !ok {
				return record{}, false
			}
			recs[i] = rec
		}
		return record{Kind: "list", Items: recs}, true
	case value.MapKind:
		m, _ := v.AsMap()
		fields := make(map[string]record, len(m))
		for k, mv := range m {
			rec, ok := encode(mv)
			if !ok {
				return record{}, false
			}
			fields[k] = rec
		}
		return record{Kind: "map", Fields: fields}, true
	}
	return record{}, false
}

func decode(rec record) (value.Value, error) {
	switch rec.Kind {
	case "null":
		return value.OfNull(), nil
	case "integer":
		n, err := asInt64(rec.Value)
		if err != nil {
			return value.Value{}, fmt.Errorf("integer record: %w", err)
		}
		return value.OfInt(int32(n)), nil
	case "long":
		n, err := asInt64(rec.Value)
		if err != nil {
			return value.Value{}, fmt.Errorf("long record: %w", err)
		}
		return value.OfLong(n), nil
	case "double":
		f, err := asFloat64(rec.Value)
		if err != nil {
			return value.Value{}, fmt.Errorf("double record: %w", err)
		}
		return value.OfDouble(f), nil
	case "float":
		f, err := asFloat64(rec.Value)
		if err != nil {
			return value.Value{}, fmt.Errorf("float record: %w", err)
		}
		return value.OfFloat(float32(f)), nil
	case "boolean":
		b, ok := rec.Value.(bool)
		if !ok {
			return value.Value{}, fmt.Errorf("boolean record holds %T", rec.Value)
		}
		return value.OfBool(b), nil
	case "string":
		s, ok := rec.Value.(string)
		if !ok {
			return value.Value{}, fmt.Errorf("string record holds %T", rec.Value)
		}
		return value.OfString(s), nil
	case "list":
		items := make([]value.Value, len(rec.Items))
		for i, r := range rec.Items {
			v, err := decode(r)
			if err != nil {
				return value.Value{}, err
			}
			items[i] = v
		}
		return value.OfList(items), nil
	case "map":
		m := make(map[string]value.Value, len(rec.Fields))
		for k, r := range rec.Fields {
			v, err := decode(r)
			if err != nil {
				return value.Value{}, err
			}
			m[k] = v
		}
		return value.OfMap(m), nil
	}
	return value.Value{}, fmt.Errorf("unknown record kind %q", rec.Kind)
}

// YAML hands back int for integral scalars and float64 otherwise, with
// the width depending on what was written. Accept both shapes.
func asInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		return int64(n), nil
	}
	return 0, fmt.Errorf("numeric record holds %T", v)
}

func asFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	}
	return 0, fmt.Errorf("numeric record holds %T", v)
}
