// Package errors provides structured error types for the lgi codec and tools.
//
// Every failure produced by the encoder, decoder, source adapters and batch
// driver is an [*Error] carrying a machine-readable [Code]. Callers branch on
// the code instead of matching message text:
//
//	lgiStr, err := enc.Encode(g, true)
//	if errors.Is(err, errors.ErrCodeDegreeOutOfRange) {
//	    // skip graphs the alphabet cannot express
//	}
//
// # Error Codes
//
// Codification failures:
//   - DEGREE_OUT_OF_RANGE: a vertex degree outside 0..6 on encode
//   - PARSE_ERROR: the structure engine rejected a notation string
//   - DEGREE_MISMATCH: a decoded atom's real degree differs from its character
//   - TIMEOUT: a single translation exceeded its time bound
//   - ENGINE_FAILURE: any other unexpected engine failure
//
// Input and environment failures use the INVALID_* and *_NOT_FOUND families.
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Codec errors
	ErrCodeDegreeOutOfRange Code = "DEGREE_OUT_OF_RANGE"
	ErrCodeParse            Code = "PARSE_ERROR"
	ErrCodeDegreeMismatch   Code = "DEGREE_MISMATCH"
	ErrCodeTimeout          Code = "TIMEOUT"
	ErrCodeEngine           Code = "ENGINE_FAILURE"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidGraph6 Code = "INVALID_GRAPH6"
	ErrCodeInvalidGraph  Code = "INVALID_GRAPH"
	ErrCodeInvalidSource Code = "INVALID_SOURCE"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Codes lists every code in display order. Report tables iterate it so that
// failure summaries are stable across runs.
var Codes = []Code{
	ErrCodeDegreeOutOfRange,
	ErrCodeParse,
	ErrCodeDegreeMismatch,
	ErrCodeTimeout,
	ErrCodeEngine,
	ErrCodeInvalidInput,
	ErrCodeInvalidGraph6,
	ErrCodeInvalidGraph,
	ErrCodeInvalidSource,
	ErrCodeInvalidFormat,
	ErrCodeInvalidPath,
	ErrCodeFileNotFound,
	ErrCodeInternal,
}

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

// CodeOf is like GetCode but classifies foreign errors as ErrCodeInternal.
// It returns the empty code for a nil error.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	if c := GetCode(err); c != "" {
		return c
	}
	return ErrCodeInternal
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

// Recovered converts a value obtained from recover() into an ENGINE_FAILURE.
func Recovered(r any) *Error {
	if err, ok := r.(error); ok {
		return Wrap(ErrCodeEngine, err, "engine panic")
	}
	return New(ErrCodeEngine, "engine panic: %v", r)
}
