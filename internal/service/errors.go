package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the scoped query service.
var (
	// ErrNotFound covers both "record does not exist" and "record is
	// owned by another user". The two are never distinguished in any
	// observable response.
	ErrNotFound = errors.New("not found")

	// ErrIDMismatch is returned when an update payload carries an id
	// different from the target id. Rejected before any store access.
	ErrIDMismatch = errors.New("payload id does not match target id")

	// ErrInternal wraps unexpected store failures. Raw driver errors
	// never cross the service boundary on their own.
	ErrInternal = errors.New("internal storage error")
)

// ValidationError reports a field-level problem with an input payload, so
// a caller can surface it next to the relevant input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// fieldErr wraps a validation failure with the field it belongs to.
func fieldErr(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: err.Error()}
}
