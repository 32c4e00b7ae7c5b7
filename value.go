package morph

import (
	"encoding/json"
	"sort"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	// KindAbsent marks the result of a failed resolution. An absent value
	// is never part of a document and never serializes.
	KindAbsent Kind = iota
	// KindNull is an explicit JSON null present in the document.
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns a human-readable kind name for error messages.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// Value is a node of an immutable JSON tree. The zero Value is absent.
//
// Objects preserve field insertion order, which is what makes deterministic
// rule-ordered output possible. Values are shared freely between trees;
// nothing in this package mutates a Value after it has been handed out, and
// callers must treat every Value as read-only.
type Value struct {
	kind Kind
	str  string // string payload, or the raw text of a number
	num  float64
	b    bool
	arr  []Value
	keys []string
	obj  map[string]Value
}

// Absent returns the absent value. Equivalent to the zero Value.
func Absent() Value { return Value{} }

// Null returns an explicit JSON null.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a numeric Value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f, str: strconv.FormatFloat(f, 'g', -1, 64)}
}

// Int returns a numeric Value holding an integer.
func Int(i int) Value {
	return Value{kind: KindNumber, num: float64(i), str: strconv.Itoa(i)}
}

// rawNumber builds a number from its source text, preserving the original
// formatting for round-trips.
func rawNumber(text string) (Value, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Value{}, err
	}
	return Value{kind: KindNumber, num: f, str: text}, nil
}

// NewArray returns an array Value holding the given elements.
func NewArray(elems ...Value) Value {
	return Value{kind: KindArray, arr: elems}
}

// NewObject returns an empty object Value.
func NewObject() Value {
	return Value{kind: KindObject, obj: map[string]Value{}}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v is the result of a failed resolution.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// IsNull reports whether v is an explicit JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Len returns the number of elements of an array or fields of an object,
// and 0 for every other kind.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.keys)
	}
	return 0
}

// Field returns the named field of an object, or an absent Value when v is
// not an object or the field is missing.
func (v Value) Field(name string) Value {
	if v.kind != KindObject {
		return Value{}
	}
	return v.obj[name]
}

// At returns the i-th element of an array, or an absent Value when v is not
// an array or i is out of bounds.
func (v Value) At(i int) Value {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return Value{}
	}
	return v.arr[i]
}

// Keys returns the field names of an object in insertion order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, len(v.keys))
	copy(keys, v.keys)
	return keys
}

// Elems returns the elements of an array.
func (v Value) Elems() []Value {
	if v.kind != KindArray {
		return nil
	}
	elems := make([]Value, len(v.arr))
	copy(elems, v.arr)
	return elems
}

// AsString returns the string payload when v is a string.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsFloat64 returns the numeric payload when v is a number.
func (v Value) AsFloat64() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// AsBool returns the boolean payload when v is a bool.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// setField writes a field on an object under construction. Overwriting an
// existing field keeps its original position; new fields append. Only the
// executors call this, and only on objects they created themselves.
func (v *Value) setField(name string, val Value) {
	if v.kind != KindObject {
		return
	}
	if _, exists := v.obj[name]; !exists {
		v.keys = append(v.keys, name)
	}
	v.obj[name] = val
}

// push appends an element to an array under construction.
func (v *Value) push(val Value) {
	if v.kind == KindArray {
		v.arr = append(v.arr, val)
	}
}

// FromAny adopts a tree of Go values of the shapes produced by
// encoding/json (map[string]any, []any, string, float64, json.Number, bool,
// nil) and returns the equivalent Value. Map keys are adopted in sorted
// order since Go maps carry none. nil input becomes Null; unsupported types
// become Absent.
func FromAny(data any) Value {
	switch d := data.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(d)
	case string:
		return String(d)
	case float64:
		return Number(d)
	case int:
		return Int(d)
	case int64:
		return Value{kind: KindNumber, num: float64(d), str: strconv.FormatInt(d, 10)}
	case json.Number:
		if n, err := rawNumber(d.String()); err == nil {
			return n
		}
		return Value{}
	case []any:
		arr := make([]Value, 0, len(d))
		for _, e := range d {
			arr = append(arr, FromAny(e))
		}
		return NewArray(arr...)
	case map[string]any:
		keys := make([]string, 0, len(d))
		for k := range d {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			obj.setField(k, FromAny(d[k]))
		}
		return obj
	}
	return Value{}
}

// ToAny exports v as a tree of plain Go values suitable for encoding/json
// or reflective decoding. Absent values export as nil, the same as null;
// they never occur inside a constructed document.
func (v Value) ToAny() any {
	switch v.kind {
	case KindNull, KindAbsent:
		return nil
	case KindBool:
		return v.b
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.ToAny()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.keys))
		for _, k := range v.keys {
			out[k] = v.obj[k].ToAny()
		}
		return out
	}
	return nil
}

// Equal reports deep structural equality. Object comparison ignores field
// order; two numbers are equal when their numeric values are equal,
// regardless of source formatting.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindAbsent, KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.num == b.num
	case KindString:
		return a.str == b.str
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.keys) != len(b.keys) {
			return false
		}
		for _, k := range a.keys {
			bv, ok := b.obj[k]
			if !ok || !Equal(a.obj[k], bv) {
				return false
			}
		}
		return true
	}
	return false
}
