// Package domain defines the core business entities and errors.
package domain

import "errors"

// Domain outcome errors. These five values are the complete error taxonomy
// returned by the credential and task services; the API layer maps each to a
// distinct HTTP status code. Compare with errors.Is.
var (
	// ErrBadRequest is returned when required input is missing or empty.
	ErrBadRequest = errors.New("bad request")

	// ErrUserNotExists is returned when a referenced user cannot be found.
	ErrUserNotExists = errors.New("user does not exist")

	// ErrUnauthorizedUser is returned when the acting user does not own the
	// task being mutated.
	ErrUnauthorizedUser = errors.New("user is not authorized for this task")

	// ErrNoTaskExists is returned when the referenced task cannot be found.
	ErrNoTaskExists = errors.New("task does not exist")

	// ErrUnexpected is the single catch-all for infrastructure failures.
	// Services normalize every storage-layer fault to this value at their own
	// boundary; raw driver errors never cross it.
	ErrUnexpected = errors.New("unexpected error")
)
