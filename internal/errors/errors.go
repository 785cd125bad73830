// Package errors provides custom error types for the expense tracker API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, optional field-level details,
// and optional internal error.
type AppError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	StatusCode int               `json:"-"`
	Internal   error             `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// WithDetails creates a new AppError carrying field-level details for the
// error envelope.
func WithDetails(sentinel *AppError, message string, details map[string]string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		Details:    details,
		StatusCode: sentinel.StatusCode,
	}
}

// ValidationFailed builds a field-scoped validation error: the message
// doubles as the detail for the offending field.
func ValidationFailed(field, message string) *AppError {
	return WithDetails(ErrValidation, message, map[string]string{field: message})
}

// General errors.
var (
	ErrValidation         = &AppError{Code: "VALIDATION_ERROR", Message: "Validation failed", StatusCode: http.StatusBadRequest}
	ErrInvalidJSON        = &AppError{Code: "INVALID_JSON", Message: "Invalid JSON payload", StatusCode: http.StatusBadRequest}
	ErrInvalidContentType = &AppError{Code: "INVALID_CONTENT_TYPE", Message: "Content-Type must be application/json", StatusCode: http.StatusBadRequest}
	ErrNotFound           = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrStorage            = &AppError{Code: "SERVICE_ERROR", Message: "A storage error occurred", StatusCode: http.StatusInternalServerError}
	ErrInternalServer     = &AppError{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred", StatusCode: http.StatusInternalServerError}
)

// Expense errors.
var (
	ErrExpenseNotFound = &AppError{Code: "NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
)
