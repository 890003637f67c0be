package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors (fatal: no target can succeed)
	ErrConfigLoad      ErrorCode = "CONFIG_LOAD"
	ErrConfigParse     ErrorCode = "CONFIG_PARSE"
	ErrSharedDirAbsent ErrorCode = "SHARED_DIR_ABSENT"
	ErrSharedDirNotDir ErrorCode = "SHARED_DIR_NOT_DIR"

	// Per-target errors (recovered locally, target skipped)
	ErrBackupExists   ErrorCode = "BACKUP_EXISTS"
	ErrUnexpectedType ErrorCode = "UNEXPECTED_TYPE"

	// Informational (not a true error)
	ErrHostNotInstalled ErrorCode = "HOST_NOT_INSTALLED"

	// FileSystem errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrRename        ErrorCode = "RENAME"
)

// Error represents a structured error with code and details
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new Error with the given code and message
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new Error with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a structured Error
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var serr *Error
	if errors.As(err, &serr) {
		return serr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not
// a structured Error
func GetErrorCode(err error) ErrorCode {
	var serr *Error
	if errors.As(err, &serr) {
		return serr.Code
	}
	return ErrUnknown
}

// IsFatal reports whether an error aborts the whole run. Configuration
// errors are fatal because no target can succeed; everything else is
// recovered per target.
func IsFatal(err error) bool {
	switch GetErrorCode(err) {
	case ErrSharedDirAbsent, ErrSharedDirNotDir, ErrConfigLoad, ErrConfigParse:
		return true
	}
	return false
}
