package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/taskward/taskward-api/internal/domain"
	"github.com/taskward/taskward-api/internal/platform/logger"
	"github.com/taskward/taskward-api/internal/service/auth"
	"github.com/taskward/taskward-api/internal/store"
)

// CredentialService validates registration input, stores user records, and
// exchanges username/password pairs for signed expiring tokens.
type CredentialService interface {
	// RegisterUser persists a new user with the given credentials.
	// Returns domain.ErrBadRequest if either field is empty and
	// domain.ErrUnexpected if persistence fails.
	RegisterUser(ctx context.Context, username, password string) error

	// Authenticate checks the credentials and, on success, issues a new
	// token, records it on the user row, and returns it. An unknown username
	// and a wrong password both yield auth.ErrInvalidCredentials with no
	// distinguishing detail. Persistence failure yields domain.ErrUnexpected.
	Authenticate(ctx context.Context, username, password string) (string, error)
}

// credentialServiceImpl implements the CredentialService interface.
type credentialServiceImpl struct {
	userStore  store.UserStore
	jwtService auth.JWTService
	verifier   auth.PasswordVerifier
	db         *sql.DB
	logger     *slog.Logger
}

// NewCredentialService creates a new CredentialService.
func NewCredentialService(
	userStore store.UserStore,
	jwtService auth.JWTService,
	verifier auth.PasswordVerifier,
	db *sql.DB,
	log *slog.Logger,
) CredentialService {
	if log == nil {
		log = slog.Default()
	}
	return &credentialServiceImpl{
		userStore:  userStore,
		jwtService: jwtService,
		verifier:   verifier,
		db:         db,
		logger:     log.With(slog.String("component", "credential_service")),
	}
}

// RegisterUser implements CredentialService.RegisterUser.
// The password is stored exactly as supplied; see auth.PasswordVerifier.
func (s *credentialServiceImpl) RegisterUser(ctx context.Context, username, password string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(username, password)
	if err != nil {
		log.Debug("registration rejected: invalid input",
			slog.String("error", err.Error()))
		return domain.ErrBadRequest
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Save(ctx, user)
	})
	if err != nil {
		// Duplicate usernames surface here too; the registration contract
		// reports every persistence failure as the generic unexpected error.
		log.Error("failed to save new user",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return domain.ErrUnexpected
	}

	log.Info("user registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", username))
	return nil
}

// Authenticate implements CredentialService.Authenticate. The credential
// check, token issuance, and token persistence run as one transaction.
func (s *credentialServiceImpl) Authenticate(ctx context.Context, username, password string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var token string
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.FindByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return auth.ErrInvalidCredentials
			}
			log.Error("failed to look up user for login",
				slog.String("error", err.Error()),
				slog.String("username", username))
			return domain.ErrUnexpected
		}

		if err := s.verifier.Compare(user.Password, password); err != nil {
			return auth.ErrInvalidCredentials
		}

		token, err = s.jwtService.GenerateToken(ctx, username)
		if err != nil {
			log.Error("failed to generate token",
				slog.String("error", err.Error()),
				slog.String("username", username))
			return domain.ErrUnexpected
		}

		// Recorded as "last issued token" only; validation never reads it.
		user.Token = token
		if err := txStore.Save(ctx, user); err != nil {
			log.Error("failed to persist issued token",
				slog.String("error", err.Error()),
				slog.String("username", username))
			return domain.ErrUnexpected
		}

		return nil
	})
	if err != nil {
		return "", normalizeError(err)
	}

	log.Info("user authenticated", slog.String("username", username))
	return token, nil
}
