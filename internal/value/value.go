package value

import (
	"reflect"
	"sync"
)

// Kind is the discriminant of a Value. It is fixed at construction and
// never changes; arithmetic and coercion produce new Values.
type Kind uint8

const (
	NullKind Kind = iota
	IntegerKind
	LongKind
	DoubleKind
	FloatKind
	BooleanKind
	StringKind
	ListKind
	MapKind
	CollectionKind
	ArrayKind
	ObjectKind
	CustomKind
)

var kindNames = [...]string{
	NullKind:       "null",
	IntegerKind:    "integer",
	LongKind:       "long",
	DoubleKind:     "double",
	FloatKind:      "float",
	BooleanKind:    "boolean",
	StringKind:     "string",
	ListKind:       "list",
	MapKind:        "map",
	CollectionKind: "collection",
	ArrayKind:      "array",
	ObjectKind:     "object",
	CustomKind:     "custom",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value wraps one raw host value together with its Kind. Values are
// immutable: no method mutates the receiver.
type Value struct {
	kind Kind
	name string // registered type name, CustomKind only
	raw  any
}

// Registry of custom host types, keyed by concrete type identity.
// Registrations are expected once at process start; registering while
// evaluations are running is not supported.
var (
	regMu       sync.RWMutex
	customTypes = make(map[reflect.Type]string)
)

// RegisterType maps the concrete type of sample to a custom type name.
// Subsequent Of calls with a value of that type yield a CustomKind Value.
func RegisterType(sample any, name string) {
	t := reflect.TypeOf(sample)
	if t == nil {
		return
	}
	regMu.Lock()
	customTypes[t] = name
	regMu.Unlock()
}

func registeredName(raw any) (string, bool) {
	regMu.RLock()
	name, ok := customTypes[reflect.TypeOf(raw)]
	regMu.RUnlock()
	return name, ok
}

// Of wraps raw with an inferred Kind. Inference order: nil, registered
// custom types, then the primitive and collection shapes, with anything
// unmatched becoming an opaque ObjectKind.
func Of(raw any) Value {
	if raw == nil {
		return Value{kind: NullKind}
	}
	if name, ok := registeredName(raw); ok {
		return Value{kind: CustomKind, name: name, raw: raw}
	}
	switch v := raw.(type) {
	case int:
		return OfInt(int32(v))
	case int32:
		return OfInt(v)
	case int64:
		return OfLong(v)
	case float64:
		return OfDouble(v)
	case float32:
		return OfFloat(v)
	case bool:
		return OfBool(v)
	case string:
		return OfString(v)
	case []Value:
		return OfList(v)
	case map[string]Value:
		return OfMap(v)
	}
	switch reflect.TypeOf(raw).Kind() {
	case reflect.Slice:
		return Value{kind: CollectionKind, raw: raw}
	case reflect.Array:
		return Value{kind: ArrayKind, raw: raw}
	}
	return Value{kind: ObjectKind, raw: raw}
}

// Dedicated constructors bypass inference when the kind is already known.

func OfNull() Value            { return Value{kind: NullKind} }
func OfInt(v int32) Value      { return Value{kind: IntegerKind, raw: v} }
func OfLong(v int64) Value     { return Value{kind: LongKind, raw: v} }
func OfDouble(v float64) Value { return Value{kind: DoubleKind, raw: v} }
func OfFloat(v float32) Value  { return Value{kind: FloatKind, raw: v} }
func OfBool(v bool) Value      { return Value{kind: BooleanKind, raw: v} }
func OfString(v string) Value  { return Value{kind: StringKind, raw: v} }

func OfList(items []Value) Value     { return Value{kind: ListKind, raw: items} }
func OfMap(m map[string]Value) Value { return Value{kind: MapKind, raw: m} }

func OfCustom(raw any, name string) Value {
	return Value{kind: CustomKind, name: name, raw: raw}
}

// Kind returns the Value's discriminant.
func (v Value) Kind() Kind { return v.kind }

// Raw returns the underlying host value.
func (v Value) Raw() any { return v.raw }

// TypeName is the name used when rendering this Value's type for users:
// the registered custom name for CustomKind, the kind name otherwise.
func (v Value) TypeName() string {
	if v.kind == CustomKind && v.name != "" {
		return v.name
	}
	return v.kind.String()
}

// Equal reports whether both kind and underlying value match. Values of
// different kinds are never equal, even when numerically identical.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind || v.name != o.name {
		return false
	}
	return reflect.DeepEqual(v.raw, o.raw)
}
