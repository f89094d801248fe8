// Package apperr defines the error kinds surfaced by services to the HTTP layer.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a failure for the client
type Kind string

const (
	KindValidation         Kind = "validation"
	KindUnauthenticated    Kind = "unauthenticated"
	KindForbidden          Kind = "forbidden"
	KindNotFound           Kind = "not_found"
	KindConflict           Kind = "conflict"
	KindEmptyCart          Kind = "empty_cart"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindInternal           Kind = "internal"
)

// Error is a failure with a client-facing message and an optional cause
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status code for the error kind
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindEmptyCart:
		return http.StatusBadRequest
	case KindUnauthenticated, KindInvalidCredentials:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Validation reports malformed or missing input
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Unauthenticated reports a missing or invalid session
func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

// Forbidden reports a session without the required role
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NotFound reports an unknown or malformed resource id
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict reports a duplicate name, account or booking slot
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// EmptyCart reports an order placed from an empty cart
func EmptyCart(message string) *Error {
	return &Error{Kind: KindEmptyCart, Message: message}
}

// InvalidCredentials reports a failed login
func InvalidCredentials(message string) *Error {
	return &Error{Kind: KindInvalidCredentials, Message: message}
}

// Internal wraps an unexpected failure. The cause is logged, never returned to clients.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal server error", Err: err}
}

// KindOf reports the kind of err, treating unknown errors as internal
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
