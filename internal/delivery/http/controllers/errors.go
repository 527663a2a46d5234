package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"volunteerhub/internal/delivery/http/helpers"
	"volunteerhub/internal/delivery/http/middleware"
	"volunteerhub/internal/domain"
)

const msgInternal = "Internal server error"

// writeServiceError maps a service error to its HTTP status and error code.
// Unexpected errors are logged and reported without their details.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, code, message := classify(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	helpers.WriteJSONError(w, status, code, message)
}

func classify(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, domain.ErrRegisterFailed),
		errors.Is(err, domain.ErrUnregisterFailed),
		errors.Is(err, domain.ErrCompleteFailed):
		return http.StatusInternalServerError, helpers.ErrCodeInternalError, msgInternal
	case errors.Is(err, domain.ErrMissingField):
		return http.StatusBadRequest, helpers.ErrCodeMissingField, err.Error()
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrNoFields):
		return http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "Incorrect email or password"
	case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "Invalid or expired token"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, helpers.ErrCodeForbidden, "Forbidden: admin role required"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, helpers.ErrCodeNotFound, "User not found"
	case errors.Is(err, domain.ErrEventNotFound):
		return http.StatusNotFound, helpers.ErrCodeNotFound, "Event not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, helpers.ErrCodeNotFound, "Not found"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusBadRequest, helpers.ErrCodeConflict, "Email already taken. Please choose a different email."
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return http.StatusBadRequest, helpers.ErrCodeConflict, "User is already registered for this event"
	case errors.Is(err, domain.ErrNotRegistered):
		return http.StatusBadRequest, helpers.ErrCodeConflict, "User is not registered for this event"
	case errors.Is(err, domain.ErrAlreadyCompleted):
		return http.StatusBadRequest, helpers.ErrCodeConflict, "Event is already marked as completed"
	case errors.Is(err, domain.ErrEventCompleted):
		return http.StatusBadRequest, helpers.ErrCodeCannotModifyCompleted, "Event is completed and can no longer be modified"
	default:
		return http.StatusInternalServerError, helpers.ErrCodeInternalError, msgInternal
	}
}

// currentUser returns the caller set by the auth middleware, writing 401 when absent.
func currentUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "Unauthorized: User not authenticated")
		return nil, false
	}
	return u, true
}

// authorizeSelf enforces that userID names the caller when strict identity is on.
func authorizeSelf(w http.ResponseWriter, r *http.Request, strict bool, userID string) bool {
	if !strict {
		return true
	}
	u, ok := currentUser(w, r)
	if !ok {
		return false
	}
	if u.ID != userID {
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "Forbidden: you can only act on your own account")
		return false
	}
	return true
}
