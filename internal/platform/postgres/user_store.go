package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/taskward/taskward-api/internal/domain"
	"github.com/taskward/taskward-api/internal/platform/logger"
	"github.com/taskward/taskward-api/internal/store"
)

// UserStore implements the store.UserStore interface using a PostgreSQL
// database as the storage backend.
type UserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewUserStore creates a new PostgreSQL implementation of the UserStore
// interface. The connection (or transaction) is managed by the caller.
func NewUserStore(db store.DBTX, log *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &UserStore{
		db:     db,
		logger: log.With(slog.String("component", "user_store")),
	}
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// WithTx implements store.UserStore.WithTx.
func (s *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &UserStore{db: tx, logger: s.logger}
}

// FindByUsername implements store.UserStore.FindByUsername.
// Returns store.ErrUserNotFound if no user has the given username.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_name, password, COALESCE(token, '')
		FROM app_user
		WHERE user_name = $1
	`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.Token,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("username", username))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by username",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, err
	}

	return &user, nil
}

// Save implements store.UserStore.Save. A user without an ID is inserted and
// the generated ID written back; otherwise the existing row is updated.
func (s *UserStore) Save(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during save",
			slog.String("error", err.Error()))
		return err
	}

	if user.ID == 0 {
		return s.insert(ctx, log, user)
	}
	return s.update(ctx, log, user)
}

func (s *UserStore) insert(ctx context.Context, log *slog.Logger, user *domain.User) error {
	query := `
		INSERT INTO app_user (user_name, password, token)
		VALUES ($1, $2, NULLIF($3, ''))
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query, user.Username, user.Password, user.Token).
		Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("duplicate username during user creation",
				slog.String("username", user.Username))
			return store.ErrUsernameExists
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("username", user.Username))
		return err
	}

	log.Info("user created",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username))
	return nil
}

func (s *UserStore) update(ctx context.Context, log *slog.Logger, user *domain.User) error {
	query := `
		UPDATE app_user
		SET user_name = $1, password = $2, token = NULLIF($3, '')
		WHERE id = $4
	`

	result, err := s.db.ExecContext(ctx, query, user.Username, user.Password, user.Token, user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("duplicate username during user update",
				slog.String("username", user.Username))
			return store.ErrUsernameExists
		}
		log.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", user.ID))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("user_id", user.ID))
		return err
	}
	if rowsAffected == 0 {
		log.Debug("user not found for update", slog.Int64("user_id", user.ID))
		return store.ErrUserNotFound
	}

	return nil
}

// Delete implements store.UserStore.Delete.
func (s *UserStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM app_user WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return err
	}
	if rowsAffected == 0 {
		log.Debug("user not found for delete", slog.Int64("user_id", id))
		return store.ErrUserNotFound
	}

	log.Info("user deleted", slog.Int64("user_id", id))
	return nil
}
