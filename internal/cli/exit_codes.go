package cli

import "fmt"

// Exit codes for the schemalint CLI. These support programmatic composition
// and CI gates.
const (
	// ExitSuccess indicates the document is valid (or was fully repaired).
	ExitSuccess = 0
	// ExitIncomplete indicates unresolved completeness errors.
	ExitIncomplete = 1
	// ExitUnparseable indicates the input is not a schema document at all.
	ExitUnparseable = 2
	// ExitInvalidArguments indicates invalid command arguments.
	ExitInvalidArguments = 3
)

// exitError is a custom error type that carries an exit code.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// NewExitError creates a new exit error with the given code.
func NewExitError(code int) error {
	return &exitError{code: code}
}

// ExitCode returns the exit code for an error returned by Execute.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if e, ok := err.(*exitError); ok {
		return e.code
	}
	return ExitInvalidArguments
}
