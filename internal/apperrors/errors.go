package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrRateNotFound indicates that no direct, inverse or pivot exchange rate exists
// for a currency pair at a given date.
var ErrRateNotFound = errors.New("rate not found")

// AppError carries a status-like code and a human readable message around an
// underlying cause. errors.Is matches both the wrapped cause and the sentinel
// attached by the constructors below.
type AppError struct {
	Code     int
	Message  string
	Err      error
	sentinel error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel this error was created with.
func (e *AppError) Is(target error) bool {
	return e.sentinel != nil && target == e.sentinel
}

// NewAppError wraps err with a code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an error matching ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, sentinel: ErrNotFound}
}

// NewValidationError returns an error matching ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, sentinel: ErrValidation}
}
