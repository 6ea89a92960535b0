package models

import (
	"encoding/json"
	"math"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "bool"
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case ArrayKind:
		return "array"
	case ObjectKind:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Field is one key/value entry of an object.
type Field struct {
	Key   string
	Value Value
}

// Value is a parsed document node: null, bool, number, string, array or an
// object with insertion-ordered, unique keys. The zero Value is null.
//
// Values are treated as immutable once built. Accessors that return slices
// return the underlying storage, so callers must not modify them; use Clone
// to obtain an independent copy.
type Value struct {
	kind    Kind
	boolean bool
	text    string // number literal or string contents
	items   []Value
	fields  []Field
	index   map[string]int
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: BoolKind, boolean: b} }

// Number returns a number value holding the literal n. The literal must be a
// valid JSON number.
func Number(n json.Number) Value { return Value{kind: NumberKind, text: string(n)} }

// Int returns a number value for an integer.
func Int(i int64) Value { return Value{kind: NumberKind, text: strconv.FormatInt(i, 10)} }

// Float returns a number value for a float. NaN and infinities have no JSON
// representation and become null.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	return Value{kind: NumberKind, text: formatFloat(f)}
}

// String returns a string value.
func String(s string) Value { return Value{kind: StringKind, text: s} }

// Array returns an array value holding items.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: ArrayKind, items: items}
}

// Object returns an object value. A key that appears more than once keeps its
// first position and its last value.
func Object(fields ...Field) Value {
	v := Value{
		kind:   ObjectKind,
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if i, ok := v.index[f.Key]; ok {
			v.fields[i].Value = f.Value
			continue
		}
		v.index[f.Key] = len(v.fields)
		v.fields = append(v.fields, f)
	}
	return v
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == NullKind }

// AsBool returns the boolean held by v, false for other kinds.
func (v Value) AsBool() bool { return v.boolean }

// AsNumber returns the number literal held by v, empty for other kinds.
func (v Value) AsNumber() json.Number {
	if v.kind != NumberKind {
		return ""
	}
	return json.Number(v.text)
}

// AsString returns the string held by v, empty for other kinds.
func (v Value) AsString() string {
	if v.kind != StringKind {
		return ""
	}
	return v.text
}

// Items returns the elements of an array, nil for other kinds.
func (v Value) Items() []Value { return v.items }

// Fields returns the entries of an object in insertion order, nil for other
// kinds.
func (v Value) Fields() []Field { return v.fields }

// Keys returns the keys of an object in insertion order.
func (v Value) Keys() []string {
	keys := make([]string, len(v.fields))
	for i, f := range v.fields {
		keys[i] = f.Key
	}
	return keys
}

// Len returns the number of elements or entries of a container, 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case ArrayKind:
		return len(v.items)
	case ObjectKind:
		return len(v.fields)
	default:
		return 0
	}
}

// Get looks up key in an object.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != ObjectKind {
		return Value{}, false
	}
	i, ok := v.index[key]
	if !ok {
		return Value{}, false
	}
	return v.fields[i].Value, true
}

// Index returns the i-th element of an array.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != ArrayKind || i < 0 || i >= len(v.items) {
		return Value{}, false
	}
	return v.items[i], true
}

// Clone returns a deep copy of v that shares no storage with it.
func (v Value) Clone() Value {
	switch v.kind {
	case ArrayKind:
		items := make([]Value, len(v.items))
		for i, item := range v.items {
			items[i] = item.Clone()
		}
		return Array(items...)
	case ObjectKind:
		fields := make([]Field, len(v.fields))
		for i, f := range v.fields {
			fields[i] = Field{Key: f.Key, Value: f.Value.Clone()}
		}
		return Object(fields...)
	default:
		return v
	}
}

// Equal reports whether a and b are structurally equal. Object entries must
// appear in the same order. Numbers are equal when their literals match or
// when they denote the same float64.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case NullKind:
		return true
	case BoolKind:
		return a.boolean == b.boolean
	case StringKind:
		return a.text == b.text
	case NumberKind:
		if a.text == b.text {
			return true
		}
		fa, errA := strconv.ParseFloat(a.text, 64)
		fb, errB := strconv.ParseFloat(b.text, 64)
		return errA == nil && errB == nil && fa == fb
	case ArrayKind:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case ObjectKind:
		if len(a.fields) != len(b.fields) {
			return false
		}
		for i := range a.fields {
			if a.fields[i].Key != b.fields[i].Key || !Equal(a.fields[i].Value, b.fields[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// formatFloat keeps a fractional part on integral floats so that 1.0 stays
// distinguishable from the integer 1.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	for _, c := range s {
		if c == '.' || c == 'e' || c == 'E' {
			return s
		}
	}
	return s + ".0"
}
