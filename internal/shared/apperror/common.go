package apperror

import "net/http"

const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

var (
	// ErrNotFound answers requests for routes that do not exist.
	ErrNotFound = New(CodeNotFound, "Resource not found", http.StatusNotFound)

	ErrInternal = New(CodeInternalError, "Internal server error", http.StatusInternalServerError)

	ErrTooManyRequests = New(CodeRateLimited, "Too many requests", http.StatusTooManyRequests)

	ErrServiceUnavailable = New(CodeServiceUnavailable, "Service unavailable", http.StatusServiceUnavailable)
)

// RequiredField reports a missing request field.
func RequiredField(field string) *AppError {
	return New(CodeInvalidInput, field+" is required", http.StatusBadRequest)
}

// InvalidField reports a request field that failed validation.
func InvalidField(field string) *AppError {
	return New(CodeInvalidInput, field+" is invalid", http.StatusBadRequest)
}
