package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/lorrc/mentor-portal/internal/core/errors"
)

// ErrorResponse is the standard JSON error response format
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ValidationErrorResponse includes field-level validation errors
type ValidationErrorResponse struct {
	Error  string              `json:"error"`
	Code   string              `json:"code"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// ErrorHandler provides centralized error handling with logging
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler with the given logger
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle processes an error and writes the appropriate HTTP response
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		h.logError(r, appErr.StatusCode, appErr.Err)
		h.writeErrorResponse(w, appErr.StatusCode, ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		})
		return
	}

	var validationErrs *apperrors.ValidationErrors
	if errors.As(err, &validationErrs) {
		h.logError(r, http.StatusUnprocessableEntity, err)
		h.writeValidationErrorResponse(w, validationErrs)
		return
	}

	statusCode, response := h.mapDomainError(err)
	h.logError(r, statusCode, err)
	h.writeErrorResponse(w, statusCode, response)
}

// mapDomainError converts domain errors to HTTP status codes and responses
func (h *ErrorHandler) mapDomainError(err error) (int, ErrorResponse) {
	switch {
	// Authentication & Authorization
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, ErrorResponse{
			Error: "Authentication required",
			Code:  "UNAUTHORIZED",
		}
	case errors.Is(err, apperrors.ErrEditGrantRequired):
		return http.StatusForbidden, ErrorResponse{
			Error: "Please confirm your password first",
			Code:  "EDIT_GRANT_REQUIRED",
		}

	// Conflict errors
	case errors.Is(err, apperrors.ErrEmailTaken):
		return http.StatusConflict, ErrorResponse{
			Error: "User using this email already exists",
			Code:  "EMAIL_TAKEN",
		}

	// Validation errors
	case errors.Is(err, apperrors.ErrPasswordRequired),
		errors.Is(err, apperrors.ErrPasswordMismatch),
		errors.Is(err, apperrors.ErrInvalidBirthDate),
		errors.Is(err, apperrors.ErrUnknownCountry),
		errors.Is(err, apperrors.ErrInvalidRole):
		return http.StatusUnprocessableEntity, ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		}
	case errors.Is(err, apperrors.ErrPasswordNotConfirmed):
		return http.StatusUnprocessableEntity, ErrorResponse{
			Error: "Password does not match.",
			Code:  "PASSWORD_NOT_CONFIRMED",
		}

	// Upstream failures
	case errors.Is(err, apperrors.ErrEmailCheckUnclassified):
		return http.StatusBadGateway, ErrorResponse{
			Error: "We could not verify your email address. Please try again.",
			Code:  "EMAIL_CHECK_FAILED",
		}
	case errors.Is(err, apperrors.ErrRegistrationRejected),
		errors.Is(err, apperrors.ErrRegistrationFailed):
		return http.StatusBadGateway, ErrorResponse{
			Error: "Sign up failed. Please try again.",
			Code:  "SIGNUP_FAILED",
		}
	case errors.Is(err, apperrors.ErrBackendUnavailable):
		return http.StatusBadGateway, ErrorResponse{
			Error: "The account service is unavailable",
			Code:  "BACKEND_UNAVAILABLE",
		}

	// Default to internal server error
	default:
		return http.StatusInternalServerError, ErrorResponse{
			Error: "An unexpected error occurred",
			Code:  "INTERNAL_ERROR",
		}
	}
}

// Describe returns the status and body Handle would answer err with.
func (h *ErrorHandler) Describe(err error) (int, ErrorResponse) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode, ErrorResponse{Error: appErr.Message, Code: appErr.Code}
	}
	var validationErrs *apperrors.ValidationErrors
	if errors.As(err, &validationErrs) {
		return http.StatusUnprocessableEntity, ErrorResponse{Error: "Validation failed", Code: "VALIDATION_ERROR"}
	}
	return h.mapDomainError(err)
}

// logError logs the error with appropriate context
func (h *ErrorHandler) logError(r *http.Request, statusCode int, err error) {
	logAttrs := []any{
		"method", r.Method,
		"path", r.URL.Path,
		"status_code", statusCode,
		"error", err.Error(),
	}

	ctx := r.Context()
	switch {
	case statusCode >= 500:
		h.logger.ErrorContext(ctx, "server error", logAttrs...)
	case statusCode >= 400:
		h.logger.WarnContext(ctx, "client error", logAttrs...)
	default:
		h.logger.InfoContext(ctx, "request error", logAttrs...)
	}
}

// writeErrorResponse writes a JSON error response
func (h *ErrorHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, response ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(response)
}

// writeValidationErrorResponse writes a validation error response
func (h *ErrorHandler) writeValidationErrorResponse(w http.ResponseWriter, errs *apperrors.ValidationErrors) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	_ = json.NewEncoder(w).Encode(ValidationErrorResponse{
		Error:  "Validation failed",
		Code:   "VALIDATION_ERROR",
		Fields: errs.Errors,
	})
}

// HandleError Helper function to handle errors inline in handlers
// Usage: if HandleError(w, r, err, h.errorHandler) { return }
func HandleError(w http.ResponseWriter, r *http.Request, err error, handler *ErrorHandler) bool {
	if err != nil {
		handler.Handle(w, r, err)
		return true
	}
	return false
}
