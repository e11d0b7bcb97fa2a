// Package apperror holds the error taxonomy shared by handlers and services.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports missing or malformed input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError reports a missing party or an unknown confirmation code.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// ConflictError reports a second RSVP for an email that already answered.
// ConfirmationCode is the code of the stored RSVP.
type ConflictError struct {
	Message          string
	ConfirmationCode string
}

func (e *ConflictError) Error() string { return e.Message }

// PersistenceError wraps a store failure. The write it belonged to has been
// rolled back by the time the caller sees it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *PersistenceError) Unwrap() error { return e.Err }

// TransportError wraps a mail delivery failure. It is only ever logged.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string { return fmt.Sprintf("%s transport: %v", e.Provider, e.Err) }

func (e *TransportError) Unwrap() error { return e.Err }

func Validation(msg string) error { return &ValidationError{Message: msg} }

func NotFound(resource string) error { return &NotFoundError{Resource: resource} }

func Persistence(op string, err error) error { return &PersistenceError{Op: op, Err: err} }

// Status maps err onto an HTTP status code. Unknown errors are 500.
func Status(err error) int {
	var (
		validation *ValidationError
		notFound   *NotFoundError
		conflict   *ConflictError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validation), errors.As(err, &conflict):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
