package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
	Code() string
}

// Sentinels for errors.Is matching.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrConsistency = errors.New("consistency violation")
	ErrTransient   = errors.New("storage unavailable")
)

type (
	// ValidationError indicates the caller supplied an empty or malformed field.
	ValidationError struct {
		Field   string
		Message string
	}

	// NotFoundError indicates the referenced identifier does not exist.
	NotFoundError struct {
		Resource string
		Id       string
	}

	// ConsistencyError is fatal: a folder was removed but its notes still
	// reference it.
	ConsistencyError struct {
		Message string
		Err     error
	}

	// TransientStorageError wraps a storage failure that is safe to retry.
	TransientStorageError struct {
		Op  string
		Err error
	}
)

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func NewNotFoundError(resource string, id fmt.Stringer) *NotFoundError {
	return &NotFoundError{Resource: resource, Id: id.String()}
}

func NewConsistencyError(message string, err error) *ConsistencyError {
	return &ConsistencyError{Message: message, Err: err}
}

func NewTransientStorageError(op string, err error) *TransientStorageError {
	return &TransientStorageError{Op: op, Err: err}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.Id)
}

func (e *ConsistencyError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *TransientStorageError) Error() string {
	return fmt.Sprintf("%s: storage unavailable: %v", e.Op, e.Err)
}

func (e *ConsistencyError) Unwrap() error      { return e.Err }
func (e *TransientStorageError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool       { return target == ErrValidation }
func (e *NotFoundError) Is(target error) bool         { return target == ErrNotFound }
func (e *ConsistencyError) Is(target error) bool      { return target == ErrConsistency }
func (e *TransientStorageError) Is(target error) bool { return target == ErrTransient }

func (e *ValidationError) StatusCode() int       { return http.StatusBadRequest }
func (e *NotFoundError) StatusCode() int         { return http.StatusNotFound }
func (e *ConsistencyError) StatusCode() int      { return http.StatusInternalServerError }
func (e *TransientStorageError) StatusCode() int { return http.StatusServiceUnavailable }

func (e *ValidationError) Code() string       { return "VALIDATION_ERROR" }
func (e *NotFoundError) Code() string         { return "NOT_FOUND" }
func (e *ConsistencyError) Code() string      { return "CONSISTENCY_ERROR" }
func (e *TransientStorageError) Code() string { return "STORAGE_UNAVAILABLE" }
