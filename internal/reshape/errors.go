package reshape

import (
	"errors"
	"fmt"
)

// ReshapeError represents an error configuring or applying the reshape
// stage.
type ReshapeError struct {
	// Code identifies the error category.
	Code ReshapeErrorCode

	// Message is a human-readable description.
	Message string
}

// ReshapeErrorCode categorizes reshape errors.
type ReshapeErrorCode string

const (
	// ErrCodeUnitSystemConflict indicates the unit transform was requested
	// twice, too late, or on a table without a full row index.
	ErrCodeUnitSystemConflict ReshapeErrorCode = "UNIT_SYSTEM_CONFLICT"

	// ErrCodeInvalidArgument indicates an unrecognized mode name.
	ErrCodeInvalidArgument ReshapeErrorCode = "INVALID_ARGUMENT"
)

// Error implements the error interface.
func (e *ReshapeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnitSystemConflict returns true if the error is a unit transform
// ordering violation. Uses errors.As to handle wrapped errors.
func IsUnitSystemConflict(err error) bool {
	var re *ReshapeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeUnitSystemConflict
	}
	return false
}

// IsInvalidMode returns true if the error is a bad mode name.
func IsInvalidMode(err error) bool {
	var re *ReshapeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeInvalidArgument
	}
	return false
}
