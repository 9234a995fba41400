package query

import (
	"errors"
	"fmt"
)

// EngineError represents an error detected while applying query directives.
type EngineError struct {
	// Code identifies the error category.
	Code EngineErrorCode

	// Message is a human-readable description.
	Message string

	// Detail carries the offending token (aggregate name, literal value).
	Detail string
}

// EngineErrorCode categorizes query engine errors.
type EngineErrorCode string

const (
	// ErrCodeUnknownAggregate indicates an unrecognized aggregate function name.
	ErrCodeUnknownAggregate EngineErrorCode = "UNKNOWN_AGGREGATE"

	// ErrCodeInvalidArgument indicates a malformed directive value.
	ErrCodeInvalidArgument EngineErrorCode = "INVALID_ARGUMENT"
)

// Error implements the error interface.
func (e *EngineError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnknownAggregate returns true if the error is an unknown-aggregate error.
// Uses errors.As to handle wrapped errors.
func IsUnknownAggregate(err error) bool {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeUnknownAggregate
	}
	return false
}

// IsInvalidArgument returns true if the error is a malformed-value error.
func IsInvalidArgument(err error) bool {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeInvalidArgument
	}
	return false
}

// NewUnknownAggregateError creates an EngineError for a bad aggregate name.
func NewUnknownAggregateError(name string) *EngineError {
	return &EngineError{
		Code:    ErrCodeUnknownAggregate,
		Message: "not a recognized aggregate function",
		Detail:  name,
	}
}

// NewInvalidArgumentError creates an EngineError for a malformed value.
func NewInvalidArgumentError(message, detail string) *EngineError {
	return &EngineError{
		Code:    ErrCodeInvalidArgument,
		Message: message,
		Detail:  detail,
	}
}
