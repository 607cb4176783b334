// Package errors provides structured error types for servicescan.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the collector and the CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The codes mirror the failure taxonomy of a collection run:
//   - UNREACHABLE, ABORTED_*: conditions that end a run without output
//   - NOT_FOUND: a remote resource (group, file) does not exist
//   - RATE_LIMITED, TIMEOUT: transient conditions, retried with backoff
//   - HTTP_ERROR, NETWORK_ERROR: definitive per-call failures
//   - PARSE_ERROR: malformed YAML, handled by the regex fallback
//   - UNIT_FAULT: a failure isolated to one project's analysis
//
// # Usage
//
//	err := errors.New(errors.ErrCodeAbortNoProjects, "no projects retrieved")
//	if errors.IsAbort(err) {
//	    // Stop without writing output
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "GET %s", url)
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
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource errors
	ErrCodeNotFound    Code = "NOT_FOUND"
	ErrCodeUnreachable Code = "UNREACHABLE"

	// Network errors
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeHTTP        Code = "HTTP_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	// Content errors
	ErrCodeParse Code = "PARSE_ERROR"

	// Collection errors
	ErrCodeUnitFault        Code = "UNIT_FAULT"
	ErrCodeAbortUnreachable Code = "ABORTED_UNREACHABLE"
	ErrCodeAbortNoProjects  Code = "ABORTED_NO_PROJECTS"
	ErrCodeInternal         Code = "INTERNAL_ERROR"
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

// IsAbort reports whether err ended a collection run before any project
// was analyzed.
func IsAbort(err error) bool {
	switch GetCode(err) {
	case ErrCodeAbortUnreachable, ErrCodeAbortNoProjects:
		return true
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

// RateLimitedError reports a 429 response. Attempt is the zero-based
// attempt that was throttled.
type RateLimitedError struct {
	Attempt int
	URL     string
}

// Error implements the error interface.
func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited: %s (attempt %d)", e.URL, e.Attempt+1)
}

// Code returns the error code for this error type.
func (e *RateLimitedError) Code() Code {
	return ErrCodeRateLimited
}
