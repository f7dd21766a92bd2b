package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling (OCP compliance).
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message      string
		ResourceType string
		ResourceID   string
	}

	// ValidationError indicates invalid, caller-correctable input.
	// Field is empty when the failure is not tied to a single field.
	ValidationError struct {
		Message string
		Field   string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }

// Is allows errors.Is() to match the typed errors against the sentinels
func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrPersistence  = errors.New("persistence failed")
)

// ConflictError represents a duplicate name at a location, with details about the existing sibling.
// It is a validation failure as well: errors.Is(err, ErrValidation) holds.
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (room, folder, file)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict and ErrValidation
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict || target == ErrValidation
}

// PersistenceError wraps a failed call to the persistence or storage collaborator.
// The caller cannot correct it, only retry or inform the user.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// StatusCode implements the HTTPError interface
func (e *PersistenceError) StatusCode() int { return http.StatusBadGateway }

// NewValidationError builds a ValidationError with the given message
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Message: message, Field: field}
}

// NewNotFoundError builds a NotFoundError for the given resource
func NewNotFoundError(resourceType, id string) *NotFoundError {
	return &NotFoundError{
		Message:      fmt.Sprintf("%s %s not found", resourceType, id),
		ResourceType: resourceType,
		ResourceID:   id,
	}
}

// Persist wraps err as a PersistenceError unless it is nil or already one
func Persist(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
