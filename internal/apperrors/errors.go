package apperrors

import (
	"errors"
	"fmt"
)

// ErrUnbalanced indicates a transaction whose entries do not sum to zero.
// This is a programmer error in the calling code and is rejected before
// any lock is taken.
var ErrUnbalanced = errors.New("transaction entries do not balance to zero")

// ErrInsufficientFunds indicates a debit that would drive a wallet bucket
// negative without the negative-allowed override. Checked under the row
// lock; the whole transaction rolls back.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// AppError wraps an underlying error with an HTTP-ish status code and a
// human readable message. Repositories use it to surface store failures.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates a 404 AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
