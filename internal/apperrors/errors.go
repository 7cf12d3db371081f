package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials, including a failed
// Google token refresh.
var ErrUnauthorized = errors.New("unauthorized")

// ErrUpstream indicates a failure talking to the spreadsheet store or the
// identity provider.
var ErrUpstream = errors.New("upstream unavailable")

// ErrSchemaMismatch indicates a tenant spreadsheet whose header row does not
// match the expected column layout.
var ErrSchemaMismatch = errors.New("spreadsheet schema mismatch")

// AppError is an error carrying an HTTP status code and a client-safe message.
// Handlers unwrap it with errors.As to pick the response status.
type AppError struct {
	Code    int    `json:"code"`
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

// NewAppError creates an AppError wrapping an underlying cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: message, Err: ErrUnauthorized}
}

func NewInternalServerError(message string) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message}
}

func NewBadGatewayError(message string) *AppError {
	return &AppError{Code: http.StatusBadGateway, Message: message, Err: ErrUpstream}
}
