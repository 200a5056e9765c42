// Package apperr defines the write-rejection errors shared by the domain
// services and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError reports a field that failed a presence, type or
// enumeration constraint before any persistence was attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Invalid builds a *ValidationError for field.
func Invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Required is shorthand for a missing required field.
func Required(field string) error {
	return &ValidationError{Field: field, Reason: "is required"}
}

// IntegrityError reports a foreign-key or uniqueness constraint rejected by
// the store.
type IntegrityError struct {
	Constraint string
	Detail     string
	Err        error
}

func (e *IntegrityError) Error() string {
	msg := "integrity violation"
	if e.Constraint != "" {
		msg += " on " + e.Constraint
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *IntegrityError) Unwrap() error { return e.Err }

// IsValidation reports whether err wraps a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsIntegrity reports whether err wraps an *IntegrityError.
func IsIntegrity(err error) bool {
	var i *IntegrityError
	return errors.As(err, &i)
}
