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
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Rendering diagnostics and failures
	ErrUnknownCommand ErrorCode = "UNKNOWN_COMMAND"
	ErrInvalidUsage   ErrorCode = "INVALID_USAGE"
	ErrNoReplacement  ErrorCode = "NO_REPLACEMENT"
	ErrParse          ErrorCode = "PARSE"
	ErrTableSpec      ErrorCode = "TABLE_SPEC"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Action definition errors
	ErrDefinitionLoad    ErrorCode = "DEFINITION_LOAD"
	ErrDefinitionInvalid ErrorCode = "DEFINITION_INVALID"

	// FileSystem errors
	ErrFileRead  ErrorCode = "FILE_READ"
	ErrFileWrite ErrorCode = "FILE_WRITE"
)

// ScribeError represents a structured error with code and details
type ScribeError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ScribeError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ScribeError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ScribeError) Is(target error) bool {
	var targetErr *ScribeError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ScribeError with the given code and message
func New(code ErrorCode, message string) *ScribeError {
	return &ScribeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ScribeError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ScribeError {
	return &ScribeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ScribeError
func Wrap(err error, code ErrorCode, message string) *ScribeError {
	if err == nil {
		return nil
	}
	return &ScribeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ScribeError {
	if err == nil {
		return nil
	}
	return &ScribeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ScribeError) WithDetail(key string, value interface{}) *ScribeError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *ScribeError) WithDetails(details map[string]interface{}) *ScribeError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var scribeErr *ScribeError
	if errors.As(err, &scribeErr) {
		return scribeErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ScribeError
func GetErrorCode(err error) ErrorCode {
	var scribeErr *ScribeError
	if errors.As(err, &scribeErr) {
		return scribeErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ScribeError
func GetErrorDetails(err error) map[string]interface{} {
	var scribeErr *ScribeError
	if errors.As(err, &scribeErr) {
		return scribeErr.Details
	}
	return nil
}

// Key identifies an error for deduplication: the code plus the "name"
// detail when present, the message otherwise.
func Key(err error) string {
	var scribeErr *ScribeError
	if !errors.As(err, &scribeErr) {
		return string(ErrUnknown) + ":" + err.Error()
	}
	if name, ok := scribeErr.Details["name"]; ok {
		return fmt.Sprintf("%s:%v", scribeErr.Code, name)
	}
	return string(scribeErr.Code) + ":" + scribeErr.Message
}

// Message returns the message of a ScribeError without its code and
// wrapped cause, or err.Error() for other errors
func Message(err error) string {
	var scribeErr *ScribeError
	if errors.As(err, &scribeErr) {
		return scribeErr.Message
	}
	return err.Error()
}
