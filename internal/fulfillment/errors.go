package fulfillment

import (
	"errors"
	"fmt"
)

var (
	ErrOrderClosed          = errors.New("order is closed")
	ErrInvalidEnumValue     = errors.New("invalid enum value")
	ErrInvalidEstimate      = errors.New("invalid estimate")
	ErrInvalidQueuePosition = errors.New("queue position must be at least 1")
	ErrNotFound             = errors.New("order not found")
	ErrUnauthorized         = errors.New("access denied")
)

// FieldError names the input field a validation failure belongs to.
type FieldError struct {
	Field Field
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v %q", e.Field, e.Err, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a client input error rather than a state conflict.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidEnumValue) ||
		errors.Is(err, ErrInvalidEstimate) ||
		errors.Is(err, ErrInvalidQueuePosition)
}

// FieldOf returns the offending field of a validation error, or "".
func FieldOf(err error) Field {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field
	}
	return ""
}
