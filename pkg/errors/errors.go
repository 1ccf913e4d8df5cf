// Package errors provides structured error types for musicbox.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the HTTP API
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The layout engine reports four terminal conditions, none of which are
// retried: [ErrCodeUnsupportedDivision], [ErrCodeTrackNotFound],
// [ErrCodeEmptyTrack] and [ErrCodeInvalidNote]. The remaining codes describe
// bad input, bad configuration, and unexpected failures in the adapters.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeTrackNotFound, "track %d not found (%d tracks)", i, n)
//	if errors.Is(err, errors.ErrCodeTrackNotFound) {
//	    // suggest a different --track
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Layout engine errors
	ErrCodeUnsupportedDivision Code = "UNSUPPORTED_DIVISION"
	ErrCodeTrackNotFound       Code = "TRACK_NOT_FOUND"
	ErrCodeEmptyTrack          Code = "EMPTY_TRACK"
	ErrCodeInvalidNote         Code = "INVALID_NOTE"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap is like New but keeps cause in the chain.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether the first *Error in err's chain has code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of a coded error without the code prefix
// or cause. Other errors are returned as is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// InvalidNoteError reports a tape pitch that has no row in the configured
// pitch list.
type InvalidNoteError struct {
	Pitch uint8
}

func (e *InvalidNoteError) Error() string {
	return fmt.Sprintf("invalid note %d", e.Pitch)
}

func (e *InvalidNoteError) Code() Code {
	return ErrCodeInvalidNote
}

// InvalidNote returns an ErrCodeInvalidNote error carrying the offending pitch.
// The pitch can be recovered with [InvalidPitch].
func InvalidNote(pitch uint8) *Error {
	return Wrap(ErrCodeInvalidNote, &InvalidNoteError{Pitch: pitch},
		"pitch %d is not in the pitch list", pitch)
}

// InvalidPitch extracts the pitch from an invalid-note error.
func InvalidPitch(err error) (uint8, bool) {
	var e *InvalidNoteError
	if errors.As(err, &e) {
		return e.Pitch, true
	}
	return 0, false
}
