package errors

import (
	"errors"
	"fmt"
)

// Domain errors - these represent business rule violations
var (
	// Authentication & Authorization
	ErrUnauthorized      = errors.New("unauthorized")
	ErrEditGrantRequired = errors.New("profile edit requires password confirmation")

	// Account
	ErrEmailTaken     = errors.New("user using this email already exists")
	ErrUnknownCountry = errors.New("unknown country")
	ErrInvalidRole    = errors.New("invalid role")

	// ErrEmailCheckUnclassified marks an email-uniqueness check that failed for a
	// reason other than the backend rejecting the address.
	ErrEmailCheckUnclassified = errors.New("email check failed")

	// Password
	ErrPasswordRequired     = errors.New("password is required")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrPasswordNotConfirmed = errors.New("password does not match")

	// Registration
	ErrInvalidBirthDate     = errors.New("invalid birth date")
	ErrRegistrationRejected = errors.New("registration was not accepted")
	ErrRegistrationFailed   = errors.New("registration request failed")

	// Backend
	ErrBackendUnavailable = errors.New("account backend unavailable")

	// Generic
	ErrInternal    = errors.New("internal server error")
	ErrRateLimited = errors.New("rate limit exceeded")
)

// AppError wraps errors with additional context for HTTP responses
type AppError struct {
	Err        error  // The underlying error
	Message    string // User-friendly message
	Code       string // Machine-readable error code
	StatusCode int    // HTTP status code
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error constructors for common cases
func NewBadRequestError(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		Code:       "BAD_REQUEST",
		StatusCode: 400,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Err:        ErrUnauthorized,
		Message:    message,
		Code:       "UNAUTHORIZED",
		StatusCode: 401,
	}
}

func NewRateLimitError() *AppError {
	return &AppError{
		Err:        ErrRateLimited,
		Message:    "Too many requests. Please try again later.",
		Code:       "RATE_LIMITED",
		StatusCode: 429,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Err:        err,
		Message:    "An unexpected error occurred",
		Code:       "INTERNAL_ERROR",
		StatusCode: 500,
	}
}

// ValidationErrors holds multiple field validation errors
type ValidationErrors struct {
	Errors map[string][]string `json:"errors"`
}

func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{
		Errors: make(map[string][]string),
	}
}

func (v *ValidationErrors) Add(field, message string) {
	v.Errors[field] = append(v.Errors[field], message)
}

func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// First returns the first message recorded for field, or "".
func (v *ValidationErrors) First(field string) string {
	if msgs := v.Errors[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (v *ValidationErrors) Error() string {
	return fmt.Sprintf("validation failed: %d field(s) have errors", len(v.Errors))
}
