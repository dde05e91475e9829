// Package errors provides structured error types for apibook.
//
// Errors carry a machine-readable [Code] so the CLI can report a single
// top-level failure while tests and callers can still branch on the category:
//   - INVALID_*: input, configuration, or name validation failures
//   - MISSING_MODULE / MALFORMED_NODE: structural problems in the reflection tree
//   - FILE_NOT_FOUND: missing input files
//   - OUT_OF_DATE: check mode found a book that differs from the generated one
//   - INTERNAL_ERROR: invariant violations inside apibook itself
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingModule, "module %q not found", name)
//	if errors.Is(err, errors.ErrCodeMissingModule) {
//	    // Handle missing module
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidName   Code = "INVALID_NAME"

	// Reflection tree errors
	ErrCodeMissingModule Code = "MISSING_MODULE"
	ErrCodeMalformedNode Code = "MALFORMED_NODE"

	// Filesystem errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Check mode
	ErrCodeOutOfDate Code = "OUT_OF_DATE"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// OutOfDateError lists the book files that differ from a fresh build.
type OutOfDateError struct {
	Diffs map[string]string // book-relative path -> unified diff
	Paths []string          // same keys, in write order
}

// Error implements the error interface.
func (e *OutOfDateError) Error() string {
	if len(e.Paths) == 1 {
		return fmt.Sprintf("book is out of date: %s differs", e.Paths[0])
	}
	return fmt.Sprintf("book is out of date: %d files differ", len(e.Paths))
}

// Code returns the error code for this error type.
func (e *OutOfDateError) Code() Code {
	return ErrCodeOutOfDate
}
