package cli

import (
	"errors"
	"fmt"

	"github.com/roach88/retailgrid/internal/dataset"
	"github.com/roach88/retailgrid/internal/query"
	"github.com/roach88/retailgrid/internal/render"
	"github.com/roach88/retailgrid/internal/reshape"
	"github.com/roach88/retailgrid/internal/source"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Query failure (unknown key, bad directive, conflicting units, etc.)
	ExitCommandError = 2 // Command error (invalid paths, unreadable config, source unavailable)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Diagnostic formats an error for the user as a single stderr line:
//
//	ERROR [retailgrid/<command>:<CODE>]: <message>
//
// The code is taken from the typed error that caused the failure, so a
// caller can tell a missing key from a missing source without parsing
// the message.
func Diagnostic(command string, err error) string {
	return fmt.Sprintf("ERROR [retailgrid/%s:%s]: %s", command, errorCode(err), err.Error())
}

func errorCode(err error) string {
	var queryErr *dataset.QueryError
	if errors.As(err, &queryErr) {
		return string(queryErr.Code)
	}
	var engineErr *query.EngineError
	if errors.As(err, &engineErr) {
		return string(engineErr.Code)
	}
	var reshapeErr *reshape.ReshapeError
	if errors.As(err, &reshapeErr) {
		return string(reshapeErr.Code)
	}
	var sinkErr *render.SinkError
	if errors.As(err, &sinkErr) {
		return string(sinkErr.Code)
	}
	var sourceErr *source.SourceError
	if errors.As(err, &sourceErr) {
		return string(sourceErr.Code)
	}
	return "INTERNAL"
}
