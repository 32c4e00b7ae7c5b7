package morph

import (
	"errors"
	"fmt"
)

// Core error definitions
var (
	ErrPathNotFound = errors.New("path not found")
	ErrTypeMismatch = errors.New("type mismatch")
	ErrInvalidPath  = errors.New("invalid path format")
	ErrValidation   = errors.New("validation failed")
)

// Error represents a processing error with essential context.
// Every error returned by this package is an *Error wrapping one of the
// sentinel errors above, so callers can match with errors.Is.
type Error struct {
	Op      string // Operation that failed
	Path    string // Path where the error occurred
	Rule    int    // Index of the failing rule, or -1 when not rule-related
	Message string // Human-readable error message
	Err     error  // Underlying error
}

func (e *Error) Error() string {
	switch {
	case e.Rule >= 0 && e.Path != "":
		return fmt.Sprintf("morph %s failed at rule %d, path '%s': %s", e.Op, e.Rule, e.Path, e.Message)
	case e.Rule >= 0:
		return fmt.Sprintf("morph %s failed at rule %d: %s", e.Op, e.Rule, e.Message)
	case e.Path != "":
		return fmt.Sprintf("morph %s failed at path '%s': %s", e.Op, e.Path, e.Message)
	}
	return fmt.Sprintf("morph %s failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error for error chain support
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if targetErr, ok := target.(*Error); ok {
		return e.Op == targetErr.Op && errors.Is(e.Err, targetErr.Err)
	}
	return errors.Is(e.Err, target)
}

// newPathError creates an *Error for malformed path strings
func newPathError(path, message string) error {
	return &Error{
		Op:      "path_parse",
		Path:    path,
		Rule:    -1,
		Message: message,
		Err:     ErrInvalidPath,
	}
}

// newNotFoundError creates an *Error for failed resolutions in strict mode
func newNotFoundError(op, path string) error {
	return &Error{
		Op:      op,
		Path:    path,
		Rule:    -1,
		Message: "no value at path",
		Err:     ErrPathNotFound,
	}
}

// newTypeError creates an *Error for values of an unexpected kind
func newTypeError(op, path, message string) error {
	return &Error{
		Op:      op,
		Path:    path,
		Rule:    -1,
		Message: message,
		Err:     ErrTypeMismatch,
	}
}

// newRuleError wraps a rule failure with the rule index and source path
func newRuleError(op string, rule int, path, message string, err error) error {
	return &Error{
		Op:      op,
		Path:    path,
		Rule:    rule,
		Message: message,
		Err:     err,
	}
}
