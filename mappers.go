package morph

import (
	"fmt"
	"strings"
)

// Mapper is a pure value-to-value function applied to a resolved value
// before it is written to the destination. Mappers are for normalization;
// they never see the absent value, since absent sources skip the rule
// before mapping.
type Mapper func(v Value) (Value, error)

// TrimSpace trims surrounding whitespace from a string value.
func TrimSpace(v Value) (Value, error) {
	return mapString(v, func(s string) (string, error) {
		return strings.TrimSpace(s), nil
	})
}

// ToLower lower-cases a string value.
func ToLower(v Value) (Value, error) {
	return mapString(v, func(s string) (string, error) {
		return strings.ToLower(s), nil
	})
}

// ToUpper upper-cases a string value.
func ToUpper(v Value) (Value, error) {
	return mapString(v, func(s string) (string, error) {
		return strings.ToUpper(s), nil
	})
}

// BoolToString renders a boolean value as "true" or "false".
func BoolToString(v Value) (Value, error) {
	b, ok := v.AsBool()
	if !ok {
		return Value{}, fmt.Errorf("%s is not a bool", v.kind)
	}
	if b {
		return String("true"), nil
	}
	return String("false"), nil
}

// EnsureScheme returns a mapper that prefixes a URL string with the given
// scheme when it has none. Protocol-relative URLs ("//cdn.example.com/x")
// gain "scheme:", bare URLs gain "scheme://", and URLs that already carry
// a scheme pass through unchanged.
func EnsureScheme(scheme string) Mapper {
	return func(v Value) (Value, error) {
		return mapString(v, func(s string) (string, error) {
			switch {
			case strings.Contains(s, "://"):
				return s, nil
			case strings.HasPrefix(s, "//"):
				return scheme + ":" + s, nil
			default:
				return scheme + "://" + s, nil
			}
		})
	}
}

func mapString(v Value, f func(string) (string, error)) (Value, error) {
	s, ok := v.AsString()
	if !ok {
		return Value{}, fmt.Errorf("%s is not a string", v.kind)
	}
	mapped, err := f(s)
	if err != nil {
		return Value{}, err
	}
	return String(mapped), nil
}
