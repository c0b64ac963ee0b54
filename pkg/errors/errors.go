// Package errors provides structured error types for the Arbor application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and library layers
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND_*: Resource not found
//   - GIT_*: Version-control errors surfaced by the sync service
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidList, "duplicate dependency name: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidList) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeGit, origErr, "failed to clone %s", url)
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
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidList     Code = "INVALID_DEPENDENCY_LIST"
	ErrCodeInvalidName     Code = "INVALID_DEPENDENCY_NAME"
	ErrCodeInvalidFolder   Code = "INVALID_FOLDER_NAME"
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"
	ErrCodeInvalidVersion  Code = "INVALID_VERSION_CONSTRAINT"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound           Code = "NOT_FOUND"
	ErrCodeDependencyNotFound Code = "DEPENDENCY_NOT_FOUND"
	ErrCodeFileNotFound       Code = "FILE_NOT_FOUND"
	ErrCodeTagNotFound        Code = "TAG_NOT_FOUND"

	// Version-control errors
	ErrCodeGit         Code = "GIT_ERROR"
	ErrCodeGitMissing  Code = "GIT_BINARY_MISSING"
	ErrCodeGitCheckout Code = "GIT_CHECKOUT_FAILED"

	// Dependency tree errors
	ErrCodeCycle Code = "DEPENDENCY_CYCLE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
