package store

import (
	"context"
	"database/sql"

	"github.com/taskward/taskward-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// FindByUsername retrieves a user by their unique username.
	// Returns ErrUserNotFound if the user does not exist.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// Save persists the user. A user without an ID is inserted and the
	// storage-assigned ID is written back; a user with an ID is updated in
	// place. Returns ErrUsernameExists if inserting a duplicate username and
	// ErrUserNotFound when updating a user that no longer exists.
	Save(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a UserStore that runs its operations on the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}
