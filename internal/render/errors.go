package render

import (
	"errors"
	"fmt"
)

// SinkError represents an error selecting or configuring an output format.
type SinkError struct {
	// Code identifies the error category.
	Code SinkErrorCode

	// Message is a human-readable description.
	Message string

	// Format is the requested format name.
	Format string
}

// SinkErrorCode categorizes output sink errors.
type SinkErrorCode string

const (
	// ErrCodeUnsupportedFormat indicates a format with no registry entry.
	ErrCodeUnsupportedFormat SinkErrorCode = "UNSUPPORTED_FORMAT"

	// ErrCodeInvalidArgument indicates options rejected by the format's schema.
	ErrCodeInvalidArgument SinkErrorCode = "INVALID_ARGUMENT"
)

// Error implements the error interface.
func (e *SinkError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("%s: %s (format=%s)", e.Code, e.Message, e.Format)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnsupportedFormat returns true if the error is an unknown-format error.
// Uses errors.As to handle wrapped errors.
func IsUnsupportedFormat(err error) bool {
	var se *SinkError
	if errors.As(err, &se) {
		return se.Code == ErrCodeUnsupportedFormat
	}
	return false
}

// IsInvalidOptions returns true if the error is an option-validation error.
func IsInvalidOptions(err error) bool {
	var se *SinkError
	if errors.As(err, &se) {
		return se.Code == ErrCodeInvalidArgument
	}
	return false
}
