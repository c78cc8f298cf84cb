package api

import (
	"errors"
	"net/http"

	"github.com/taskward/taskward-api/internal/domain"
	"github.com/taskward/taskward-api/internal/service/auth"
)

// MapErrorToStatusCode maps domain errors to HTTP status codes. The domain
// taxonomy is deliberately small so this mapping stays unambiguous.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrBadRequest),
		errors.Is(err, domain.ErrUserNotExists):
		return http.StatusBadRequest

	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorizedUser):
		return http.StatusUnauthorized

	case errors.Is(err, domain.ErrNoTaskExists):
		return http.StatusNoContent

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the given
// domain error. Internal detail never leaks through here.
func GetSafeErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		return "Invalid request"
	case errors.Is(err, domain.ErrUserNotExists):
		return "User does not exist"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, domain.ErrUnauthorizedUser):
		return "You do not own this task"
	case errors.Is(err, domain.ErrNoTaskExists):
		return "Task not found"
	default:
		return "An unexpected error occurred"
	}
}
