package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidOperation indicates the resource's current state does not permit
// the requested transition (e.g. approving a non-pending payable).
var ErrInvalidOperation = errors.New("operation not permitted in current state")

// ErrConflict indicates a concurrent modification lost a race (sequence
// allocation, conditional update of a row another writer changed first).
var ErrConflict = errors.New("conflicting concurrent modification")

// ErrDependency indicates a downstream collaborator (journal engine, audit
// trail) failed. Callers of primary operations never see this kind; it is
// caught and logged at the call site.
var ErrDependency = errors.New("dependency failure")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level error with an HTTP-ish status code and a
// message suitable for logging. Repositories use it so services can wrap
// once more with %w without losing the cause chain.
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

// NewAppError creates an AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
