// Package service provides the application services for credentials and
// tasks: the layer that decides, for every operation, whether it is permitted
// and which domain error to surface.
package service

import (
	"errors"

	"github.com/taskward/taskward-api/internal/domain"
	"github.com/taskward/taskward-api/internal/service/auth"
)

// isDomainError reports whether err is one of the values a service is allowed
// to return to its callers.
func isDomainError(err error) bool {
	return errors.Is(err, domain.ErrBadRequest) ||
		errors.Is(err, domain.ErrUserNotExists) ||
		errors.Is(err, domain.ErrUnauthorizedUser) ||
		errors.Is(err, domain.ErrNoTaskExists) ||
		errors.Is(err, domain.ErrUnexpected) ||
		errors.Is(err, auth.ErrInvalidCredentials)
}

// normalizeError converts anything that is not a domain outcome into
// domain.ErrUnexpected. Every public service method passes its result through
// this exactly once at its own boundary, so raw infrastructure errors never
// escape the service layer.
func normalizeError(err error) error {
	if err == nil {
		return nil
	}
	if isDomainError(err) {
		return err
	}
	return domain.ErrUnexpected
}
