package morph

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Get resolves path within v and returns the located sub-value. It fails
// with ErrInvalidPath for malformed paths and ErrPathNotFound when the
// path does not resolve. Extraction mode applies the broadcast rule: a
// trailing field segment against an array projects the field across the
// elements (see resolveExtract).
func Get(v Value, path string) (Value, error) {
	p, err := ParsePath(path)
	if err != nil {
		return Value{}, err
	}
	r := resolveExtract(v, p)
	if r.IsAbsent() {
		return Value{}, newNotFoundError("get", path)
	}
	return r, nil
}

// GetString retrieves a string value at path, coercing numbers and bools.
func GetString(v Value, path string) (string, error) {
	r, err := Get(v, path)
	if err != nil {
		return "", err
	}
	s, ok := coerceString(r)
	if !ok {
		return "", newTypeError("get_string", path, fmt.Sprintf("cannot convert %s to string", r.kind))
	}
	return s, nil
}

// GetInt retrieves an int value at path. Fractional numbers do not coerce.
func GetInt(v Value, path string) (int, error) {
	r, err := Get(v, path)
	if err != nil {
		return 0, err
	}
	i, ok := coerceInt(r)
	if !ok {
		return 0, newTypeError("get_int", path, fmt.Sprintf("cannot convert %s to int", r.kind))
	}
	return i, nil
}

// GetInt64 retrieves an int64 value at path.
func GetInt64(v Value, path string) (int64, error) {
	r, err := Get(v, path)
	if err != nil {
		return 0, err
	}
	i, ok := coerceInt64(r)
	if !ok {
		return 0, newTypeError("get_int64", path, fmt.Sprintf("cannot convert %s to int64", r.kind))
	}
	return i, nil
}

// GetFloat64 retrieves a float64 value at path.
func GetFloat64(v Value, path string) (float64, error) {
	r, err := Get(v, path)
	if err != nil {
		return 0, err
	}
	f, ok := coerceFloat64(r)
	if !ok {
		return 0, newTypeError("get_float64", path, fmt.Sprintf("cannot convert %s to float64", r.kind))
	}
	return f, nil
}

// GetBool retrieves a bool value at path.
func GetBool(v Value, path string) (bool, error) {
	r, err := Get(v, path)
	if err != nil {
		return false, err
	}
	b, ok := coerceBool(r)
	if !ok {
		return false, newTypeError("get_bool", path, fmt.Sprintf("cannot convert %s to bool", r.kind))
	}
	return b, nil
}

// GetArray retrieves the elements of the array at path.
func GetArray(v Value, path string) ([]Value, error) {
	r, err := Get(v, path)
	if err != nil {
		return nil, err
	}
	if r.kind != KindArray {
		return nil, newTypeError("get_array", path, fmt.Sprintf("expected array, found %s", r.kind))
	}
	return r.Elems(), nil
}

// GetObject retrieves the object at path.
func GetObject(v Value, path string) (Value, error) {
	r, err := Get(v, path)
	if err != nil {
		return Value{}, err
	}
	if r.kind != KindObject {
		return Value{}, newTypeError("get_object", path, fmt.Sprintf("expected object, found %s", r.kind))
	}
	return r, nil
}

// GetStringSlice retrieves the array at path with every element coerced to
// string. Combined with the broadcast rule this turns "items.name" over an
// array of objects into the name of every element.
func GetStringSlice(v Value, path string) ([]string, error) {
	elems, err := GetArray(v, path)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(elems))
	for i, e := range elems {
		s, ok := coerceString(e)
		if !ok {
			return nil, newTypeError("get_string_slice", path,
				fmt.Sprintf("element %d: cannot convert %s to string", i, e.kind))
		}
		out = append(out, s)
	}
	return out, nil
}

// GetWithDefault retrieves the value at path, falling back to def when the
// path is malformed or does not resolve. It never fails.
func GetWithDefault(v Value, path string, def Value) Value {
	r, err := Get(v, path)
	if err != nil {
		return def
	}
	return r
}

// GetStringWithDefault is the non-failing variant of GetString.
func GetStringWithDefault(v Value, path, def string) string {
	s, err := GetString(v, path)
	if err != nil {
		return def
	}
	return s
}

// GetIntWithDefault is the non-failing variant of GetInt.
func GetIntWithDefault(v Value, path string, def int) int {
	i, err := GetInt(v, path)
	if err != nil {
		return def
	}
	return i
}

// GetFloat64WithDefault is the non-failing variant of GetFloat64.
func GetFloat64WithDefault(v Value, path string, def float64) float64 {
	f, err := GetFloat64(v, path)
	if err != nil {
		return def
	}
	return f
}

// GetBoolWithDefault is the non-failing variant of GetBool.
func GetBoolWithDefault(v Value, path string, def bool) bool {
	b, err := GetBool(v, path)
	if err != nil {
		return def
	}
	return b
}

// Decode resolves path within v and decodes the sub-tree into out, which
// must be a pointer. Decoding uses mapstructure, so struct fields map by
// name or `mapstructure` tag. This is the caller-decoded extraction
// surface: the package never binds trees to domain types on its own.
func Decode(v Value, path string, out any) error {
	r, err := Get(v, path)
	if err != nil {
		return err
	}
	if err := mapstructure.Decode(r.ToAny(), out); err != nil {
		return newTypeError("decode", path, err.Error())
	}
	return nil
}

// GetTyped retrieves the value at path decoded into T via Decode.
func GetTyped[T any](v Value, path string) (T, error) {
	var out T
	if err := Decode(v, path, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
