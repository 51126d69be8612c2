package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard error types
var (
	ErrNotFound            = errors.New("resource not found")
	ErrValidation          = errors.New("validation error")
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrTransport           = errors.New("transport error")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrBadRequest          = errors.New("bad request")
	ErrInternal            = errors.New("internal server error")
)

// AppError represents an application error with context
type AppError struct {
	Err        error             `json:"-"`
	Message    string            `json:"message"`
	Code       string            `json:"code"`
	StatusCode int               `json:"status_code"`
	Details    map[string]string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code string, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, code string, message string, statusCode int) *AppError {
	return &AppError{
		Err:        err,
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// WithDetails adds details to an AppError
func (e *AppError) WithDetails(details map[string]string) *AppError {
	e.Details = details
	return e
}

// Common error constructors

// NotFound reports that an id or key referenced an entity absent from the
// target aggregate or registry.
func NotFound(resource string) *AppError {
	return &AppError{
		Err:        ErrNotFound,
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: http.StatusNotFound,
	}
}

// NotFoundID is a NotFound variant that names the offending identifier.
func NotFoundID(resource, id string) *AppError {
	return &AppError{
		Err:        ErrNotFound,
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s %q not found", resource, id),
		StatusCode: http.StatusNotFound,
	}
}

// Validation reports missing or malformed input, detailed per field.
func Validation(details map[string]string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		Code:       "VALIDATION_ERROR",
		Message:    "validation failed",
		StatusCode: http.StatusBadRequest,
		Details:    details,
	}
}

// ProviderUnavailable reports that the resolved backend provider has no
// implementation for the requested operation, or is missing the configuration
// needed to reach it. Distinct from NotFound so callers can tell "not yet
// available" apart from "does not exist".
func ProviderUnavailable(provider, operation string) *AppError {
	return &AppError{
		Err:        ErrProviderUnavailable,
		Code:       "PROVIDER_UNAVAILABLE",
		Message:    fmt.Sprintf("%s provider: %s not yet available", provider, operation),
		StatusCode: http.StatusNotImplemented,
	}
}

// Transport reports a network, timeout, or non-2xx failure while talking to a
// live backend. Always wraps the underlying cause.
func Transport(err error, message string) *AppError {
	return &AppError{
		Err:        fmt.Errorf("%w: %w", ErrTransport, err),
		Code:       "TRANSPORT_ERROR",
		Message:    message,
		StatusCode: http.StatusBadGateway,
	}
}

func BadRequest(message string) *AppError {
	return &AppError{
		Err:        ErrBadRequest,
		Code:       "BAD_REQUEST",
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{
		Err:        ErrUnauthorized,
		Code:       "UNAUTHORIZED",
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func Internal(message string) *AppError {
	return &AppError{
		Err:        ErrInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	}
}

// Is checks if the error matches a target error
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As attempts to convert an error to a specific type
func As(err error, target any) bool {
	return errors.As(err, target)
}
