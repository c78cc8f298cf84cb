package config

import (
	"bytes"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequiredEnv sets the two keys without defaults so Load can succeed.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TASKWARD_DATABASE_URL", "postgres://localhost:5432/taskward")
	t.Setenv("TASKWARD_AUTH_JWT_SECRET",
		base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0x2a}, 64)))
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "info", cfg.Server.LogLevel)
		assert.True(t, cfg.Database.MigrateOnStart)
		assert.Equal(t, 240*time.Hour, cfg.Auth.TokenTTL)
		assert.Equal(t, "plaintext", cfg.Auth.PasswordScheme)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("TASKWARD_SERVER_PORT", "9090")
		t.Setenv("TASKWARD_SERVER_LOG_LEVEL", "debug")
		t.Setenv("TASKWARD_AUTH_TOKEN_TTL", "1h")
		t.Setenv("TASKWARD_AUTH_PASSWORD_SCHEME", "bcrypt")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Server.LogLevel)
		assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
		assert.Equal(t, "bcrypt", cfg.Auth.PasswordScheme)
	})

	t.Run("fails without a database url", func(t *testing.T) {
		t.Setenv("TASKWARD_AUTH_JWT_SECRET",
			base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0x2a}, 64)))

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("fails without a jwt secret", func(t *testing.T) {
		t.Setenv("TASKWARD_DATABASE_URL", "postgres://localhost:5432/taskward")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("rejects an invalid log level", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("TASKWARD_SERVER_LOG_LEVEL", "loud")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("rejects an unknown password scheme", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("TASKWARD_AUTH_PASSWORD_SCHEME", "md5")

		_, err := Load()
		assert.Error(t, err)
	})
}
