package errors

import (
	"errors"
	"fmt"
)

// Common error types used across the lazystream library

var (
	// ErrConsumed indicates that a stream was handed to a second owner after
	// a combinator already took it over.
	ErrConsumed = errors.New("stream already consumed")

	// ErrClosed indicates that an operation was attempted on a closed resource
	ErrClosed = errors.New("resource is closed")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrWorkerFailed indicates that at least one task of a fork/join batch failed
	ErrWorkerFailed = errors.New("worker failed")

	// ErrNotFound indicates that a persisted resource does not exist
	ErrNotFound = errors.New("not found")
)

// ValidationError describes a rejected configuration or argument value.
type ValidationError struct {
	Module string
	Field  string
	Value  interface{}
	Reason string
	Hint   string
}

// NewValidationError creates a ValidationError without a hint.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// WithHint attaches a remediation hint and returns the same error for chaining.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Unwrap makes every ValidationError match ErrInvalidConfiguration.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// OperationError records which operation of which module failed and why.
type OperationError struct {
	Module    string
	Operation string
	Cause     error
	Context   string
}

// NewOperationError creates an OperationError without extra context.
func NewOperationError(module, operation string, cause error) *OperationError {
	return &OperationError{
		Module:    module,
		Operation: operation,
		Cause:     cause,
	}
}

// WithContext attaches a free-form description and returns the same error for chaining.
func (e *OperationError) WithContext(context string) *OperationError {
	e.Context = context
	return e
}

func (e *OperationError) Error() string {
	msg := fmt.Sprintf("%s.%s failed: %v", e.Module, e.Operation, e.Cause)
	if e.Context != "" {
		msg += " (" + e.Context + ")"
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	return e.Cause
}

// IsValidationError reports whether err is, or wraps, a ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// IsContractViolation reports whether err signals misuse of a stream rather
// than a runtime failure.
func IsContractViolation(err error) bool {
	return errors.Is(err, ErrConsumed) || IsValidationError(err)
}
