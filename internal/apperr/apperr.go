// Package apperr defines the error taxonomy shared by all HTTP handlers.
// Handlers never write error responses themselves; they return one of these
// errors and the httputil pipeline maps it to a status code and JSON body.
package apperr

import (
	"errors"
	"net/http"
)

// Kind is the wire-visible error classification
type Kind string

const (
	KindValidation      Kind = "ValidationError"
	KindInvalidUser     Kind = "InvalidUserError"
	KindAuthentication  Kind = "AuthenticationError"
	KindDuplicateEmail  Kind = "DuplicateEmailError"
	KindNotFound        Kind = "NotFoundError"
	KindTooManyRequests Kind = "TooManyRequestsError"
	KindInternal        Kind = "InternalError"
)

// Error is a typed application error carrying its HTTP mapping
type Error struct {
	Kind    Kind
	Status  int
	Message string
	// Fields holds per-field validation messages, nil for non-validation errors
	Fields map[string]string
	// Err is the underlying cause; logged but never serialized
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation returns a 400 error aggregating every violated field message
func Validation(fields map[string]string) *Error {
	return &Error{
		Kind:    KindValidation,
		Status:  http.StatusBadRequest,
		Message: "Invalid request parameters.",
		Fields:  fields,
	}
}

// InvalidUser returns the uniform 401 login failure. The same value is used
// for unknown emails and wrong passwords so responses cannot be used to
// enumerate accounts.
func InvalidUser() *Error {
	return &Error{
		Kind:    KindInvalidUser,
		Status:  http.StatusUnauthorized,
		Message: "Invalid user",
	}
}

// Authentication returns the 401 used when a request carries no usable token
func Authentication() *Error {
	return &Error{
		Kind:    KindAuthentication,
		Status:  http.StatusUnauthorized,
		Message: "User not authenticated",
	}
}

// DuplicateEmail returns the 409 for a store-level uniqueness violation
func DuplicateEmail() *Error {
	return &Error{
		Kind:    KindDuplicateEmail,
		Status:  http.StatusConflict,
		Message: "The email is already taken.",
	}
}

// NotFound returns the 404 used for unmatched routes
func NotFound() *Error {
	return &Error{
		Kind:    KindNotFound,
		Status:  http.StatusNotFound,
		Message: "Resource not found.",
	}
}

// TooManyRequests returns the 429 emitted by the rate limiter
func TooManyRequests(message string) *Error {
	return &Error{
		Kind:    KindTooManyRequests,
		Status:  http.StatusTooManyRequests,
		Message: message,
	}
}

// Internal wraps an unclassified fault as a 500. The cause is retained for
// logging; the client only ever sees the generic message.
func Internal(err error) *Error {
	return &Error{
		Kind:    KindInternal,
		Status:  http.StatusInternalServerError,
		Message: "Something went wrong.",
		Err:     err,
	}
}

// From normalizes any error into an *Error, wrapping unclassified
// faults as Internal
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
