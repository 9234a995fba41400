package source

import (
	"errors"
	"fmt"
)

// SourceError represents a failure to produce any dataset snapshot.
type SourceError struct {
	// Code identifies the error category.
	Code SourceErrorCode

	// Message is a human-readable description.
	Message string

	// Err is the underlying fetch or parse error.
	Err error
}

// SourceErrorCode categorizes source errors.
type SourceErrorCode string

// ErrCodeSourceUnavailable indicates the source could not be fetched and
// no cached snapshot exists to fall back to.
const ErrCodeSourceUnavailable SourceErrorCode = "SOURCE_UNAVAILABLE"

// Error implements the error interface.
func (e *SourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *SourceError) Unwrap() error {
	return e.Err
}

// IsUnavailable returns true if the error is a source-unavailable error.
// Uses errors.As to handle wrapped errors.
func IsUnavailable(err error) bool {
	var se *SourceError
	if errors.As(err, &se) {
		return se.Code == ErrCodeSourceUnavailable
	}
	return false
}
