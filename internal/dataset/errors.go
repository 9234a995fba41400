package dataset

import (
	"errors"
	"fmt"
)

// QueryError represents an error detected while answering a key-level or
// partial-tuple query against the dataset.
type QueryError struct {
	// Code identifies the error category.
	Code QueryErrorCode

	// Message is a human-readable description.
	Message string

	// Axis is the offending axis name (for unknown-axis errors).
	Axis string

	// Key is the offending lookup tuple rendered as text (for not-found errors).
	Key string
}

// QueryErrorCode categorizes dataset query errors.
type QueryErrorCode string

const (
	// ErrCodeUnknownAxis indicates an axis name that is not a recognized level.
	ErrCodeUnknownAxis QueryErrorCode = "UNKNOWN_AXIS"

	// ErrCodeKeyNotFound indicates a lookup tuple with no matching rows.
	ErrCodeKeyNotFound QueryErrorCode = "KEY_NOT_FOUND"

	// ErrCodeInvalidIndexArity indicates a lookup with more than 5 components.
	ErrCodeInvalidIndexArity QueryErrorCode = "INVALID_INDEX_ARITY"
)

// Error implements the error interface.
func (e *QueryError) Error() string {
	if e.Axis != "" {
		return fmt.Sprintf("%s: %s (axis=%s)", e.Code, e.Message, e.Axis)
	}
	if e.Key != "" {
		return fmt.Sprintf("%s: %s (key=%s)", e.Code, e.Message, e.Key)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnknownAxis returns true if the error is an unknown-axis error.
// Uses errors.As to handle wrapped errors.
func IsUnknownAxis(err error) bool {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Code == ErrCodeUnknownAxis
	}
	return false
}

// IsKeyNotFound returns true if the error is a key-not-found error.
// Uses errors.As to handle wrapped errors.
func IsKeyNotFound(err error) bool {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Code == ErrCodeKeyNotFound
	}
	return false
}

// IsInvalidIndexArity returns true if the error is an index-arity error.
func IsInvalidIndexArity(err error) bool {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Code == ErrCodeInvalidIndexArity
	}
	return false
}

// NewUnknownAxisError creates a QueryError for an unrecognized axis name.
func NewUnknownAxisError(axis string) *QueryError {
	return &QueryError{
		Code:    ErrCodeUnknownAxis,
		Message: "not a recognized index level",
		Axis:    axis,
	}
}

// NewKeyNotFoundError creates a QueryError for a lookup with no match.
func NewKeyNotFoundError(key string) *QueryError {
	return &QueryError{
		Code:    ErrCodeKeyNotFound,
		Message: "no rows match lookup tuple",
		Key:     key,
	}
}

// NewInvalidArityError creates a QueryError for too many lookup components.
func NewInvalidArityError(n int) *QueryError {
	return &QueryError{
		Code:    ErrCodeInvalidIndexArity,
		Message: fmt.Sprintf("too many indexers (%d > 5)", n),
	}
}
