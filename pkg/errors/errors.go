package errors

import (
	"errors"
	"fmt"
)

var (
	// JWT and tokens
	ErrInvalidSigningMethod = fmt.Errorf("invalid token signing method")
	ErrInvalidToken         = fmt.Errorf("invalid token")
	ErrTokenExpired         = fmt.Errorf("token has expired")
	ErrTokenNotYetValid     = fmt.Errorf("token is not valid yet")
	ErrTokenIsNotRefresh    = fmt.Errorf("token is not a refresh token")
	ErrTokenIsNotAccess     = fmt.Errorf("token is not an access token")

	// Authorization
	ErrEmptyAuthHeader    = fmt.Errorf("authorization header is missing")
	ErrInvalidAuthHeader  = fmt.Errorf("malformed authorization header")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrForbidden          = fmt.Errorf("forbidden")

	// Context
	ErrUserIDNotFoundInContext = fmt.Errorf("UserID not found in request context")
	ErrRoleIDNotFoundInContext = fmt.Errorf("RoleID not found in request context")

	// Common
	ErrNotFound   = fmt.Errorf("record not found")
	ErrBadRequest = fmt.Errorf("bad request")
)

// InvalidInputError marks client-side validation failures that must never
// reach the storage layer.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// AlreadyProcessedError is the distinguished conflict class: the entity was
// verified or rejected in an earlier interaction and the caller is acting on
// a stale queue. Handlers downgrade it to an informational response instead
// of a generic error.
type AlreadyProcessedError struct {
	EntityType string
	EntityID   uint64
	Status     string
}

func (e *AlreadyProcessedError) Error() string {
	return fmt.Sprintf("%s %d already processed (status %s)", e.EntityType, e.EntityID, e.Status)
}

func IsAlreadyProcessed(err error) bool {
	var ap *AlreadyProcessedError
	return errors.As(err, &ap)
}

// HttpError carries an HTTP status plus the public message; the wrapped cause
// stays server-side and is only logged.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, ctx map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: ctx}
}
