package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned before any computation when an input is unusable
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnresolvableEligibility marks a birth date outside the statutory age table
	ErrUnresolvableEligibility = errors.New("statutory pension age not determined")
	// ErrDegenerateArithmetic classifies a formula that would divide by zero.
	// Zero-rate formulas take a linear fallback, so no calculation returns it;
	// it exists for ErrorCode and for callers composing their own formulas.
	ErrDegenerateArithmetic = errors.New("degenerate arithmetic")
)

// ValidationError names the first invalid field of a request
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// Unwrap lets callers test with errors.Is(err, ErrInvalidInput)
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError creates a ValidationError for a field
func NewValidationError(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ErrorCode classifies an error for API callers
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return "INVALID_INPUT"
	case errors.Is(err, ErrUnresolvableEligibility):
		return "UNRESOLVABLE_ELIGIBILITY"
	case errors.Is(err, ErrDegenerateArithmetic):
		return "DEGENERATE_ARITHMETIC"
	default:
		return "INTERNAL"
	}
}
