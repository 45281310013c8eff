// Package httpx provides HTTP response utilities and the domain error taxonomy.
package httpx

import (
	"errors"
	"net/http"
)

// Sentinel error kinds for the domain layer.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("duplicate entry")
)

// Error carries a user-facing message tagged with one of the sentinel kinds.
type Error struct {
	Kind    error
	Message string
	Missing []string
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the kind so errors.Is works against the sentinels.
func (e *Error) Unwrap() error { return e.Kind }

// Validation builds a 400-mapped error.
func Validation(message string) error {
	return &Error{Kind: ErrValidation, Message: message}
}

// MissingFields builds a validation error enumerating absent required fields.
func MissingFields(fields ...string) error {
	return &Error{Kind: ErrValidation, Message: "All fields are required", Missing: fields}
}

// Unauthorized builds a 401-mapped error.
func Unauthorized(message string) error {
	return &Error{Kind: ErrUnauthorized, Message: message}
}

// NotFound builds a 404-mapped error.
func NotFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// Conflict builds a duplicate-entry error. Conflicts surface as 400 to match
// the API contract for duplicate email and duplicate month-salary.
func Conflict(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}

// RespondError maps a domain error to its HTTP status and JSON body.
func RespondError(w http.ResponseWriter, err error) {
	var he *Error
	var missing []string
	if errors.As(err, &he) {
		missing = he.Missing
	}

	switch {
	case errors.Is(err, ErrValidation):
		Message(w, http.StatusBadRequest, err.Error(), missing)
	case errors.Is(err, ErrConflict):
		Message(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, ErrUnauthorized):
		Message(w, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		Message(w, http.StatusNotFound, err.Error(), nil)
	default:
		detail := ""
		if DevMode() {
			detail = err.Error()
		}
		JSON(w, http.StatusInternalServerError, errorBody{Message: "Internal server error", Error: detail})
	}
}
