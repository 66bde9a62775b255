// Package output provides CLI output and coded errors for flowdoc.
//
// Commands report through a Printer, which renders either lipgloss-styled
// text or JSON (--json). Every failure a command returns is an *ExitError,
// and its code becomes the process exit status:
//
//	0  export, validate or preview completed
//	1  bad flags or config, unreadable input documents, failed validation
//	2  the output directory or an input file could not be read or written
//	3  the output directory already has content and --overwrite was not given
package output

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitSystemError = 2
	ExitConflict    = 3
)

// ErrNotEmpty is the cause of every NewNotEmptyError, so callers can test
// for the overwrite conflict with errors.Is.
var ErrNotEmpty = errors.New("output directory not empty")

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError reports a usage mistake: a missing flag, a malformed config
// value, or documents that failed validation.
func NewUserError(message string) *ExitError {
	return &ExitError{Code: ExitUserError, Message: message}
}

// NewInputError reports an input path that cannot be exported or previewed,
// such as a missing directory or a document that does not parse.
func NewInputError(path string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitUserError,
		Message: fmt.Sprintf("invalid input %s: %v", path, cause),
		Cause:   cause,
	}
}

// NewIOError reports a filesystem failure while acting on path, e.g.
// NewIOError("write", ".../buckets.md", err).
func NewIOError(action, path string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: fmt.Sprintf("failed to %s %s: %v", action, path, cause),
		Cause:   cause,
	}
}

// NewRenderError reports a failure to render Markdown for the terminal.
func NewRenderError(cause error) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: fmt.Sprintf("failed to render markdown: %v", cause),
		Cause:   cause,
	}
}

// NewNotEmptyError refuses to export into dir because it already has
// entries. It wraps ErrNotEmpty.
func NewNotEmptyError(dir string) *ExitError {
	return &ExitError{
		Code:    ExitConflict,
		Message: fmt.Sprintf("output directory '%s' not empty; pass --overwrite to replace its exports", dir),
		Cause:   ErrNotEmpty,
	}
}

// GetExitCode maps an error to the process exit status. Errors that are not
// an *ExitError (cobra flag parsing, for one) count as user errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUserError
}
