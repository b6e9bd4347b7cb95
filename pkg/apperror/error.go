package apperror

import (
	"errors"
	"net/http"
)

// Kind is the error taxonomy surfaced to callers.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindExternalService Kind = "external_service"
	KindRateLimited     Kind = "rate_limited"
	KindInternal        Kind = "internal"
)

type AppError struct {
	Code      int         `json:"code"`
	Kind      Kind        `json:"kind"`
	Message   string      `json:"message"`
	Retryable bool        `json:"retryable,omitempty"`
	Details   interface{} `json:"details,omitempty"`
	Err       error       `json:"-"`
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

func New(code int, kind Kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, KindValidation, message, nil)
}

// Validation is a BadRequest that carries field level details.
func Validation(message string, details interface{}) *AppError {
	e := New(http.StatusBadRequest, KindValidation, message, nil)
	e.Details = details
	return e
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, KindNotFound, message, nil)
}

func Conflict(message string, details interface{}) *AppError {
	e := New(http.StatusConflict, KindConflict, message, nil)
	e.Details = details
	return e
}

func External(retryable bool, err error) *AppError {
	e := New(http.StatusBadGateway, KindExternalService, "External booking service failed", err)
	e.Retryable = retryable
	return e
}

func TooManyRequests(message string) *AppError {
	return New(http.StatusTooManyRequests, KindRateLimited, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, KindInternal, "Internal Server Error", err)
}

// IsKind reports whether err wraps an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
