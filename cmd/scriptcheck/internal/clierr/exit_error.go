package clierr

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// ExitError is an error that carries an explicit process exit code.
// It supports wrapping via Unwrap so errors.Is/As work as expected.
type ExitError struct {
	code   int
	msg    string
	cause  error
	silent bool
}

func (e *ExitError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	if e.msg == "" {
		return e.cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

func (e *ExitError) ExitCode() int { return e.code }

// Unwrap enables errors.Is/As to traverse the underlying cause.
func (e *ExitError) Unwrap() error { return e.cause }

// Silent reports whether the error has already been reported to the user.
func (e *ExitError) Silent() bool { return e.silent }

// New creates an ExitError with a message.
func New(code int, msg string) error {
	return &ExitError{code: normalize(code), msg: msg}
}

// Wrap creates an ExitError that wraps an underlying cause.
func Wrap(code int, msg string, cause error) error {
	if cause == nil {
		return New(code, msg)
	}
	return &ExitError{code: normalize(code), msg: msg, cause: cause}
}

// Silent returns an error that only sets the exit code. The command has
// already written everything the user needs to see.
func Silent(code int) error {
	return &ExitError{code: normalize(code), msg: fmt.Sprintf("exit status %d", normalize(code)), silent: true}
}

// IsSilent reports whether err, or any error it wraps, is a silent ExitError.
func IsSilent(err error) bool {
	var ee *ExitError
	return errors.As(err, &ee) && ee.silent
}

// ExitCodeOf extracts an exit code from any error, defaulting to 1.
// Only ExitError sets the code: a wrapped *exec.ExitError from a failed git
// call also has an ExitCode method, and git's status must not leak out.
func ExitCodeOf(err error) int {
	if err == nil {
		return ExitOK
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitFailure
}

func normalize(code int) int {
	// Exit code 0 means success; errors should never be 0.
	if code <= 0 {
		return ExitFailure
	}
	return code
}
