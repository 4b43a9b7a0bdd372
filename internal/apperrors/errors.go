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

// ErrConflict indicates the request is well formed but conflicts with current state.
// No state was mutated; the caller may correct the input and retry.
var ErrConflict = errors.New("conflict")

// ErrInternal indicates an unexpected internal fault.
var ErrInternal = errors.New("internal error")

var (
	ErrAccountNotFound      = fmt.Errorf("%w: account not found", ErrNotFound)
	ErrProductNotFound      = fmt.Errorf("%w: product not found", ErrNotFound)
	ErrInvalidAmount        = fmt.Errorf("%w: amount must be positive with at most 4 decimal places", ErrValidation)
	ErrSameAccount          = fmt.Errorf("%w: source and destination resolve to the same account", ErrConflict)
	ErrUnsupported          = fmt.Errorf("%w: cash to cash transfer is not supported", ErrConflict)
	ErrInsufficientFunds    = fmt.Errorf("%w: insufficient funds", ErrConflict)
	ErrInventoryWriteFailed = errors.New("inventory write failed")
	ErrExpenseWriteFailed   = errors.New("expense ledger write failed")
)

// AppError carries an HTTP-ish status code alongside a wrapped cause.
// Repositories use it for infrastructure faults.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
