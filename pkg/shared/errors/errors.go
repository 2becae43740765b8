package errors

// Exit codes returned by the CLI.
const (
	ExitCodeOK = iota
	ExitCodeFailure
	ExitCodeOutputExists
)

// CommandError carries the exit code a failed command should terminate with.
type CommandError struct {
	ExitCode int
	Err      error
}

// Error implements the error interface, returning the message from the wrapped error.
func (e *CommandError) Error() string {
	return e.Err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError wraps err with the given exit code.
func NewCommandError(err error, code int) *CommandError {
	return &CommandError{
		ExitCode: code,
		Err:      err,
	}
}
