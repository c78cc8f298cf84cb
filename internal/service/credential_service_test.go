package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskward/taskward-api/internal/domain"
	"github.com/taskward/taskward-api/internal/service/auth"
)

const testJWTSecret = "unit-test-signing-secret"

func newCredentialServiceForTest(
	t *testing.T,
	users *fakeUserStore,
) CredentialService {
	t.Helper()
	jwtService := auth.NewTestJWTService(testJWTSecret, time.Hour, nil)
	return NewCredentialService(users, jwtService, auth.NewPlaintextVerifier(), newTestDB(t), nil)
}

func TestRegisterUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("persists a valid user", func(t *testing.T) {
		t.Parallel()
		users := newFakeUserStore()
		svc := newCredentialServiceForTest(t, users)

		err := svc.RegisterUser(ctx, "alice", "s3cret")
		require.NoError(t, err)

		saved, ok := users.Users["alice"]
		require.True(t, ok, "user should be persisted")
		assert.NotZero(t, saved.ID)
		// Stored exactly as supplied, no hashing under the plaintext scheme.
		assert.Equal(t, "s3cret", saved.Password)
	})

	t.Run("rejects empty fields with bad request", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name     string
			username string
			password string
		}{
			{name: "empty username", username: "", password: "s3cret"},
			{name: "empty password", username: "alice", password: ""},
			{name: "both empty", username: "", password: ""},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()
				users := newFakeUserStore()
				svc := newCredentialServiceForTest(t, users)

				err := svc.RegisterUser(ctx, tc.username, tc.password)
				assert.ErrorIs(t, err, domain.ErrBadRequest)
				assert.Empty(t, users.Users, "nothing should be persisted")
			})
		}
	})

	t.Run("reports persistence failure as unexpected", func(t *testing.T) {
		t.Parallel()
		users := newFakeUserStore()
		users.SaveFn = func(ctx context.Context, user *domain.User) error {
			return errors.New("connection reset")
		}
		svc := newCredentialServiceForTest(t, users)

		err := svc.RegisterUser(ctx, "alice", "s3cret")
		assert.ErrorIs(t, err, domain.ErrUnexpected)
	})

	t.Run("reports duplicate username as unexpected", func(t *testing.T) {
		t.Parallel()
		users := newFakeUserStore()
		svc := newCredentialServiceForTest(t, users)
		require.NoError(t, svc.RegisterUser(ctx, "alice", "s3cret"))

		err := svc.RegisterUser(ctx, "alice", "other")
		assert.ErrorIs(t, err, domain.ErrUnexpected)
	})
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("returns a valid token for correct credentials", func(t *testing.T) {
		t.Parallel()
		users := newFakeUserStore()
		jwtService := auth.NewTestJWTService(testJWTSecret, time.Hour, nil)
		svc := NewCredentialService(users, jwtService, auth.NewPlaintextVerifier(), newTestDB(t), nil)
		require.NoError(t, svc.RegisterUser(ctx, "alice", "s3cret"))

		token, err := svc.Authenticate(ctx, "alice", "s3cret")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := jwtService.ValidateToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Subject)
	})

	t.Run("records the issued token on the user", func(t *testing.T) {
		t.Parallel()
		users := newFakeUserStore()
		svc := newCredentialServiceForTest(t, users)
		require.NoError(t, svc.RegisterUser(ctx, "alice", "s3cret"))

		token, err := svc.Authenticate(ctx, "alice", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, token, users.Users["alice"].Token)
	})

	t.Run("unknown user and wrong password are indistinguishable", func(t *testing.T) {
		t.Parallel()
		users := newFakeUserStore()
		svc := newCredentialServiceForTest(t, users)
		require.NoError(t, svc.RegisterUser(ctx, "alice", "s3cret"))

		_, unknownErr := svc.Authenticate(ctx, "nobody", "s3cret")
		_, wrongErr := svc.Authenticate(ctx, "alice", "wrong")

		assert.ErrorIs(t, unknownErr, auth.ErrInvalidCredentials)
		assert.ErrorIs(t, wrongErr, auth.ErrInvalidCredentials)
		assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	})

	t.Run("reports lookup failure as unexpected", func(t *testing.T) {
		t.Parallel()
		users := newFakeUserStore()
		users.FindByUsernameFn = func(ctx context.Context, username string) (*domain.User, error) {
			return nil, errors.New("connection reset")
		}
		svc := newCredentialServiceForTest(t, users)

		token, err := svc.Authenticate(ctx, "alice", "s3cret")
		assert.ErrorIs(t, err, domain.ErrUnexpected)
		assert.Empty(t, token)
	})

	t.Run("reports token persistence failure as unexpected", func(t *testing.T) {
		t.Parallel()
		users := newFakeUserStore()
		svc := newCredentialServiceForTest(t, users)
		require.NoError(t, svc.RegisterUser(ctx, "alice", "s3cret"))

		users.SaveFn = func(ctx context.Context, user *domain.User) error {
			return errors.New("connection reset")
		}
		token, err := svc.Authenticate(ctx, "alice", "s3cret")
		assert.ErrorIs(t, err, domain.ErrUnexpected)
		assert.Empty(t, token)
	})
}
