package morph

import (
	"math"
	"strconv"
)

// Scalar coercion tables used by the typed getters. Coercions are
// conservative: numeric conversions must be lossless, strings convert to
// numbers or bools only when they parse cleanly.

// coerceString converts a scalar Value to string.
func coerceString(v Value) (string, bool) {
	switch v.kind {
	case KindString:
		return v.str, true
	case KindNumber:
		return v.str, true
	case KindBool:
		return strconv.FormatBool(v.b), true
	}
	return "", false
}

// coerceInt converts a scalar Value to int, rejecting fractional numbers
// and out-of-range values.
func coerceInt(v Value) (int, bool) {
	i64, ok := coerceInt64(v)
	if !ok || i64 < math.MinInt || i64 > math.MaxInt {
		return 0, false
	}
	return int(i64), true
}

// coerceInt64 converts a scalar Value to int64.
func coerceInt64(v Value) (int64, bool) {
	switch v.kind {
	case KindNumber:
		// Prefer the raw text so large integers are not rounded through
		// the float representation.
		if i, err := strconv.ParseInt(v.str, 10, 64); err == nil {
			return i, true
		}
		if v.num == math.Trunc(v.num) && v.num >= math.MinInt64 && v.num <= math.MaxInt64 {
			return int64(v.num), true
		}
	case KindString:
		if i, err := strconv.ParseInt(v.str, 10, 64); err == nil {
			return i, true
		}
	case KindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// coerceFloat64 converts a scalar Value to float64.
func coerceFloat64(v Value) (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindString:
		if f, err := strconv.ParseFloat(v.str, 64); err == nil {
			return f, true
		}
	case KindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// coerceBool converts a scalar Value to bool. Strings accepted are the
// strconv.ParseBool set ("true", "1", "T", ...).
func coerceBool(v Value) (bool, bool) {
	switch v.kind {
	case KindBool:
		return v.b, true
	case KindNumber:
		if v.num == 0 {
			return false, true
		}
		if v.num == 1 {
			return true, true
		}
	case KindString:
		if b, err := strconv.ParseBool(v.str); err == nil {
			return b, true
		}
	}
	return false, false
}
