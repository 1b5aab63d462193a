package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	ErrCodeParse      = "PARSE_ERROR"
	ErrCodeIO         = "IO_ERROR"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeConflict   = "CONFLICT"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

// AppError is the typed failure returned by every core operation.
type AppError struct {
	Code    string // Error code (e.g., "PARSE_ERROR", "IO_ERROR")
	Message string // Human-readable error message
	Status  int    // HTTP status code used by the API layer
	Err     error  // Wrapped underlying error (optional)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewParseError reports a malformed import or snapshot payload.
func NewParseError(what string, reason string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeParse,
		Message: fmt.Sprintf("cannot parse %s: %s", what, reason),
		Status:  422,
		Err:     err,
	}
}

// NewIOError reports a read or write failure on persistence.
func NewIOError(op string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeIO,
		Message: fmt.Sprintf("%s failed", op),
		Status:  500,
		Err:     err,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewConflictError creates a new CONFLICT error
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeConflict,
		Message: message,
		Status:  409,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// HasCode reports whether err wraps an AppError with the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func IsParse(err error) bool      { return HasCode(err, ErrCodeParse) }
func IsIO(err error) bool         { return HasCode(err, ErrCodeIO) }
func IsValidation(err error) bool { return HasCode(err, ErrCodeValidation) }
func IsNotFound(err error) bool   { return HasCode(err, ErrCodeNotFound) }
func IsConflict(err error) bool   { return HasCode(err, ErrCodeConflict) }

// As extracts the AppError from err, wrapping unknown errors as internal errors.
func As(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(err)
}
