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

	// Configuration document errors
	ErrInputRead    ErrorCode = "INPUT_READ"
	ErrInputParse   ErrorCode = "INPUT_PARSE"
	ErrInputInvalid ErrorCode = "INPUT_INVALID"

	// Tool configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Template errors
	ErrTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrTemplateCompile  ErrorCode = "TEMPLATE_COMPILE"
	ErrTemplateRender   ErrorCode = "TEMPLATE_RENDER"

	// Repository sync errors
	ErrSyncUnavailable ErrorCode = "SYNC_UNAVAILABLE"
	ErrSyncNotRepo     ErrorCode = "SYNC_NOT_REPO"
	ErrSyncFailed      ErrorCode = "SYNC_FAILED"

	// FileSystem errors
	ErrDirAccess ErrorCode = "DIR_ACCESS"
	ErrFileWrite ErrorCode = "FILE_WRITE"

	// Aggregate outcome of a run
	ErrRunFailed ErrorCode = "RUN_FAILED"
)

// perTemplate lists the codes that only fail the template being processed.
// Everything else aborts the run.
var perTemplate = map[ErrorCode]bool{
	ErrTemplateNotFound: true,
	ErrTemplateCompile:  true,
	ErrTemplateRender:   true,
	ErrFileWrite:        true,
}

// Y2CError represents a structured error with code and details
type Y2CError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *Y2CError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *Y2CError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *Y2CError) Is(target error) bool {
	var targetErr *Y2CError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new Y2CError with the given code and message
func New(code ErrorCode, message string) *Y2CError {
	return &Y2CError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new Y2CError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *Y2CError {
	return &Y2CError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a Y2CError
func Wrap(err error, code ErrorCode, message string) *Y2CError {
	if err == nil {
		return nil
	}
	return &Y2CError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *Y2CError {
	if err == nil {
		return nil
	}
	return &Y2CError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *Y2CError) WithDetail(key string, value interface{}) *Y2CError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Human returns the message and cause without the code prefix, for
// printing to users.
func (e *Y2CError) Human() string {
	if e.Wrapped == nil {
		return e.Message
	}
	var inner *Y2CError
	if errors.As(e.Wrapped, &inner) {
		return fmt.Sprintf("%s: %s", e.Message, inner.Human())
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Wrapped)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var y2cErr *Y2CError
	if errors.As(err, &y2cErr) {
		return y2cErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a Y2CError
func GetErrorCode(err error) ErrorCode {
	var y2cErr *Y2CError
	if errors.As(err, &y2cErr) {
		return y2cErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a Y2CError
func GetErrorDetails(err error) map[string]interface{} {
	var y2cErr *Y2CError
	if errors.As(err, &y2cErr) {
		return y2cErr.Details
	}
	return nil
}

// IsFatal reports whether err must abort the whole run. Errors that only
// concern a single template (missing, broken, failed to render or write)
// are not fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return !perTemplate[GetErrorCode(err)]
}

// Message returns the user-facing text of err.
func Message(err error) string {
	var y2cErr *Y2CError
	if errors.As(err, &y2cErr) {
		return y2cErr.Human()
	}
	return err.Error()
}
