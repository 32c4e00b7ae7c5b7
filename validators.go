package morph

import (
	"fmt"
	"net"
	"regexp"
)

// Validator is a predicate over a resolved value plus its source path.
// Validators run in rule order; the first failure aborts the whole
// transformation with an error wrapping ErrValidation.
//
// A validator is handed the absent value when the source path does not
// resolve. Every built-in validator except Required accepts absence, which
// makes "skip the rule when the source is missing" the default and
// Required the explicit opt-in for mandatory fields.
type Validator func(path string, v Value) error

var (
	// Rather than pulling in a UUID package, valid UUIDs are matched by
	// regexp, as are identifiers.
	validUUID = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	validID   = regexp.MustCompile(`^[a-zA-Z_]+[0-9a-zA-Z_]*$`)
)

// Required fails when the source path did not resolve.
func Required(path string, v Value) error {
	if v.IsAbsent() {
		return fmt.Errorf("missing mandatory attribute '%s'", path)
	}
	return nil
}

// IsString accepts strings.
func IsString(path string, v Value) error {
	return expectKind(path, v, KindString)
}

// IsBool accepts booleans.
func IsBool(path string, v Value) error {
	return expectKind(path, v, KindBool)
}

// IsNumber accepts numbers.
func IsNumber(path string, v Value) error {
	return expectKind(path, v, KindNumber)
}

// NonEmptyString accepts strings with at least one character.
func NonEmptyString(path string, v Value) error {
	if v.IsAbsent() {
		return nil
	}
	s, ok := v.AsString()
	if !ok {
		return fmt.Errorf("'%s' is not a string", path)
	}
	if s == "" {
		return fmt.Errorf("'%s' is empty", path)
	}
	return nil
}

// ValidUUID accepts strings shaped like a UUID.
func ValidUUID(path string, v Value) error {
	return matchString(path, v, func(s string) error {
		if !validUUID.MatchString(s) {
			return fmt.Errorf("'%s' is not a valid UUID", s)
		}
		return nil
	})
}

// ValidIdentifier accepts strings that are valid identifiers: a letter or
// underscore followed by letters, digits, or underscores.
func ValidIdentifier(path string, v Value) error {
	return matchString(path, v, func(s string) error {
		if !validID.MatchString(s) {
			return fmt.Errorf("'%s' is not a valid identifier", s)
		}
		return nil
	})
}

// ValidIP accepts strings holding an IPv4 or IPv6 address.
func ValidIP(path string, v Value) error {
	return matchString(path, v, func(s string) error {
		if net.ParseIP(s) == nil {
			return fmt.Errorf("'%s' is not a valid IP address", s)
		}
		return nil
	})
}

// ValidCIDR accepts strings holding an address in CIDR notation.
func ValidCIDR(path string, v Value) error {
	return matchString(path, v, func(s string) error {
		if _, _, err := net.ParseCIDR(s); err != nil {
			return fmt.Errorf("'%s' is not a valid CIDR address", s)
		}
		return nil
	})
}

func expectKind(path string, v Value, want Kind) error {
	if v.IsAbsent() {
		return nil
	}
	if v.kind != want {
		return fmt.Errorf("'%s' is %s, expected %s", path, v.kind, want)
	}
	return nil
}

func matchString(path string, v Value, check func(string) error) error {
	if v.IsAbsent() {
		return nil
	}
	s, ok := v.AsString()
	if !ok {
		return fmt.Errorf("'%s' is not a string", path)
	}
	return check(s)
}
