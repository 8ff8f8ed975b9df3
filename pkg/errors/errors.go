package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error into one of the stable, machine-readable
// failure categories the API reports.
type Kind string

const (
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "not_found"
	KindInvalidRequest  Kind = "invalid_request"
	KindConflict        Kind = "conflict"
	KindStorageFailure  Kind = "storage_failure"
)

// AppError represents an application error
type AppError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
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

// StatusCode maps the error kind to its HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidRequest:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error constructors
func Unauthenticated(message string, err error) *AppError {
	return &AppError{Kind: KindUnauthenticated, Message: message, Err: err}
}

func Forbidden(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func InvalidRequest(message string) *AppError {
	return &AppError{Kind: KindInvalidRequest, Message: message}
}

func Conflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func Storage(err error) *AppError {
	return &AppError{
		Kind:    KindStorageFailure,
		Message: "internal server error",
		Err:     err,
	}
}

// KindOf extracts the Kind from err, unwrapping as needed. Errors that
// are not AppErrors classify as storage failures.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorageFailure
}

// Is reports whether err classifies as the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
