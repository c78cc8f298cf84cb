package config

import "time"

// Config holds all application configuration, grouped by concern.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`

	// MigrateOnStart runs the embedded schema migrations during startup.
	MigrateOnStart bool `mapstructure:"migrate_on_start"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	// JWTSecret is the base64-encoded HMAC signing secret. It is decoded once
	// at service construction; the decoded key must be long enough for the
	// signing algorithm (64 bytes for HMAC-SHA512).
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,base64"`

	// TokenTTL is the fixed lifetime of issued tokens.
	TokenTTL time.Duration `mapstructure:"token_ttl" validate:"required"`

	// PasswordScheme selects how stored passwords are compared at login:
	// "plaintext" (exact equality, the historical behavior) or "bcrypt".
	PasswordScheme string `mapstructure:"password_scheme" validate:"required,oneof=plaintext bcrypt"`
}
