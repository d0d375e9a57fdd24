package utils

import (
	"errors"
	"net/http"
)

// ErrorKind classifies application failures for HTTP mapping
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindConflict
	KindAuthentication
	KindAuthorization
	KindInternal
)

// AppError carries a failure kind alongside a user-facing message
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ValidationError reports missing or invalid required fields
func ValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

// NotFoundError reports an id lookup miss
func NotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

// ConflictError reports a duplicate unique key or a refused delete
func ConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

// AuthenticationError reports bad credentials
func AuthenticationError(message string) *AppError {
	return &AppError{Kind: KindAuthentication, Message: message}
}

// AuthorizationError reports an operation refused by policy, such as
// editing a system role. Permission checks themselves never produce
// errors; they resolve to a boolean.
func AuthorizationError(message string) *AppError {
	return &AppError{Kind: KindAuthorization, Message: message}
}

// InternalError wraps an unexpected failure
func InternalError(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain, KindInternal if untyped
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error kind to its response status code
func HTTPStatus(kind ErrorKind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
