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
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Input and platform errors. Raised at the boundary, before any mutation.
	ErrValidation  ErrorCode = "VALIDATION"
	ErrSystemLimit ErrorCode = "SYSTEM_LIMIT"
	ErrPermission  ErrorCode = "PERMISSION"

	// Directory-link errors
	ErrGameDirectory ErrorCode = "GAME_DIRECTORY"
	ErrLinkCreation  ErrorCode = "LINK_CREATION"
	ErrLinkRemoval   ErrorCode = "LINK_REMOVAL"
	ErrNotALink      ErrorCode = "NOT_A_LINK"
	ErrNotCopyLink   ErrorCode = "NOT_COPY_LINK"

	// Persistence errors
	ErrConfigLoad   ErrorCode = "CONFIG_LOAD"
	ErrConfigSave   ErrorCode = "CONFIG_SAVE"
	ErrHistoryStore ErrorCode = "HISTORY_STORE"
	ErrLocked       ErrorCode = "LOCKED"
)

// SavelinkError represents a structured error with code and details
type SavelinkError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SavelinkError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SavelinkError) Unwrap() error {
	return e.Wrapped
}

// Is matches any *SavelinkError carrying the same code.
func (e *SavelinkError) Is(target error) bool {
	var targetErr *SavelinkError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SavelinkError with the given code and message
func New(code ErrorCode, message string) *SavelinkError {
	return &SavelinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SavelinkError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SavelinkError {
	return &SavelinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SavelinkError
func Wrap(err error, code ErrorCode, message string) *SavelinkError {
	if err == nil {
		return nil
	}
	return &SavelinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SavelinkError {
	if err == nil {
		return nil
	}
	return &SavelinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SavelinkError) WithDetail(key string, value interface{}) *SavelinkError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *SavelinkError) WithDetails(details map[string]interface{}) *SavelinkError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode reports whether err, or any error it wraps, carries code.
func IsErrorCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, &SavelinkError{Code: code})
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SavelinkError
func GetErrorCode(err error) ErrorCode {
	var slErr *SavelinkError
	if errors.As(err, &slErr) {
		return slErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SavelinkError
func GetErrorDetails(err error) map[string]interface{} {
	var slErr *SavelinkError
	if errors.As(err, &slErr) {
		return slErr.Details
	}
	return nil
}
