package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeValidation represents caller-supplied data failing a field rule
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeNotFound represents a reference to an identity that does not exist
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeInvariant represents a broken internal invariant (a programming error)
	ErrorTypeInvariant ErrorType = "invariant"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Validation Errors

// ErrInvalid is returned when a draft violates a documented field rule.
// Field names the attribute, Reason the rule it broke.
type ErrInvalid struct {
	*BaseError
	Field  string
	Reason string
}

func NewInvalid(field, reason string) *ErrInvalid {
	return &ErrInvalid{
		BaseError: NewBaseError(ErrorTypeValidation, fmt.Sprintf("%s: %s", field, reason), nil),
		Field:     field,
		Reason:    reason,
	}
}

// Lookup Errors

// ErrNotFound is returned when an identity is absent from the named store
type ErrNotFound struct {
	*BaseError
	Store string
	ID    int64
}

func NewNotFound(store string, id int64) *ErrNotFound {
	return &ErrNotFound{
		BaseError: NewBaseError(ErrorTypeNotFound, fmt.Sprintf("%s with id %d not found", store, id), nil),
		Store:     store,
		ID:        id,
	}
}

// Invariant Errors

// ErrInvariantViolation marks state that can only exist through a bug.
// It is raised with panic, never returned to callers as an ordinary error.
type ErrInvariantViolation struct {
	*BaseError
	Detail string
}

func NewInvariantViolation(detail string) *ErrInvariantViolation {
	return &ErrInvariantViolation{
		BaseError: NewBaseError(ErrorTypeInvariant, fmt.Sprintf("invariant violated: %s", detail), nil),
		Detail:    detail,
	}
}

// Config Errors

// ErrConfigValidationFailed is returned when configuration validation fails
type ErrConfigValidationFailed struct {
	*BaseError
	Field  string
	Reason string
}

func NewConfigValidationFailed(field, reason string) *ErrConfigValidationFailed {
	return &ErrConfigValidationFailed{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("config validation failed: %s - %s", field, reason), nil),
		Field:     field,
		Reason:    reason,
	}
}

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

// IsErrorType checks if an error, or anything it wraps, is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	var typed interface{ errorType() ErrorType }
	if stderrors.As(err, &typed) {
		return typed.errorType() == errType
	}
	return false
}

func (e *BaseError) errorType() ErrorType {
	return e.Type
}

// IsInvalid reports whether err is a validation failure
func IsInvalid(err error) bool {
	var target *ErrInvalid
	return stderrors.As(err, &target)
}

// IsNotFound reports whether err is a missing-identity failure
func IsNotFound(err error) bool {
	var target *ErrNotFound
	return stderrors.As(err, &target)
}
