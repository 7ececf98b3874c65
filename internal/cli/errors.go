// Package cli provides shared configuration and exit handling for the
// resultant-rights CLI.
package cli

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes. Zero matched rows is still ExitSuccess; only unhandled
// failures terminate with ExitFailure.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// ExitError wraps an error with the message rendered at the process
// boundary. Every failure is printed exactly once as a single error line.
type ExitError struct {
	Message string
	Err     error
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

// ExitWithError prints the error and exits with ExitFailure.
func ExitWithError(err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", exitErr.Error())
		os.Exit(ExitFailure)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(ExitFailure)
}

// ConfigError creates an ExitError for configuration failures.
func ConfigError(msg string, err error) *ExitError {
	return &ExitError{Message: msg, Err: err}
}

// GeneralError creates an ExitError for any other failure.
func GeneralError(msg string, err error) *ExitError {
	return &ExitError{Message: msg, Err: err}
}
