// Package shared contains common domain types, errors, and value objects
// that are used across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")
	ErrInvalidEntity = errors.New("invalid entity")

	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidID       = errors.New("invalid ID")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrNegativeValue   = errors.New("value cannot be negative")
	ErrValueOutOfRange = errors.New("value out of range")
	ErrInvalidFormat   = errors.New("invalid format")

	// State errors
	ErrInvalidState = errors.New("invalid state")
	ErrExpired      = errors.New("expired")

	// External service errors
	ErrExternalService    = errors.New("external service error")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrTimeout            = errors.New("operation timeout")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "timetable", "enrollment", "attendance"
	Op      string // Operation that failed, e.g., "Parse", "Enroll"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Timetable domain errors
var (
	ErrEmptyGrid       = NewDomainError("timetable", "Parse", ErrEmptyValue, "grid text is empty")
	ErrUnknownDay      = NewDomainError("timetable", "Parse", ErrInvalidInput, "unknown weekday name")
	ErrCatalogNotBuilt = NewDomainError("timetable", "Query", ErrInvalidState, "catalog has not been built")
	ErrCatalogStale    = NewDomainError("timetable", "Refresh", ErrExpired, "cached catalog is stale")
)

// Enrollment domain errors
var (
	ErrEnrollmentNotFound = NewDomainError("enrollment", "Find", ErrNotFound, "enrolled course not found")
	ErrAlreadyEnrolled    = NewDomainError("enrollment", "Enroll", ErrAlreadyExists, "course already enrolled")
	ErrInvalidTimeRange   = NewDomainError("enrollment", "Validate", ErrInvalidFormat, "invalid time range")
	ErrInvalidWeekday     = NewDomainError("enrollment", "Validate", ErrInvalidInput, "invalid weekday")
)

// Attendance domain errors
var (
	ErrRecordNotFound  = NewDomainError("attendance", "Find", ErrNotFound, "attendance record not found")
	ErrDuplicateRecord = NewDomainError("attendance", "Record", ErrAlreadyExists, "record already exists for this date")
	ErrInvalidStatus   = NewDomainError("attendance", "Validate", ErrInvalidInput, "invalid session status")
	ErrInvalidDate     = NewDomainError("attendance", "Validate", ErrInvalidFormat, "invalid ISO date")
)

// External service errors
var (
	ErrSheetUnavailable    = NewDomainError("sheets", "Fetch", ErrServiceUnavailable, "timetable sheet is unavailable")
	ErrSheetTimeout        = NewDomainError("sheets", "Fetch", ErrTimeout, "timetable sheet request timeout")
	ErrSheetInvalidPayload = NewDomainError("sheets", "Parse", ErrInvalidFormat, "unexpected payload from timetable sheet")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if the error is an "already exists" error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrNegativeValue) ||
		errors.Is(err, ErrValueOutOfRange) ||
		errors.Is(err, ErrInvalidFormat)
}

// IsExternalService checks if the error is from an external service.
func IsExternalService(err error) bool {
	return errors.Is(err, ErrExternalService) ||
		errors.Is(err, ErrServiceUnavailable) ||
		errors.Is(err, ErrTimeout)
}
