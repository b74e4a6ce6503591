package errs

import (
	"errors"
)

// Code is an application error code.
type Code string

const (
	// Scenario-local codes: recovered into a failed result, never abort the run.
	ElementNotFound   Code = "element_not_found"
	UnsupportedAction Code = "unsupported_action"
	ExpectationParse  Code = "expectation_parse"
	Navigation        Code = "navigation"

	// Run-level codes.
	SessionFatal    Code = "session_fatal"
	InvalidArgument Code = "invalid_argument"
	Internal        Code = "internal"
)

// Error is a coded application error.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a coded error with message.
func New(code Code, message string) error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a coded error with message and cause.
func Wrap(code Code, message string, cause error) error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     cause,
	}
}

// CodeOf returns the error code, defaulting to internal.
func CodeOf(err error) Code {
	if err == nil {
		return Internal
	}
	var coded *Error
	if errors.As(err, &coded) {
		if coded.Code == "" {
			return Internal
		}
		return coded.Code
	}
	return Internal
}

// MessageOf returns a user-facing error message.
// If the error has no typed wrapper, returns "internal error" to prevent
// leaking driver internals or file paths into scenario diagnostics.
func MessageOf(err error) string {
	if err == nil {
		return string(Internal)
	}
	var coded *Error
	if errors.As(err, &coded) && coded.Message != "" {
		return coded.Message
	}
	return "internal error"
}

// IsFatal reports whether the error must abort the whole run rather than
// fail a single scenario.
func IsFatal(err error) bool {
	return CodeOf(err) == SessionFatal
}
