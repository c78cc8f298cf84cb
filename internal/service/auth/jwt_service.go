package auth

import (
	"context"
	"time"
)

// JWTService defines operations for issuing and validating authentication
// tokens.
type JWTService interface {
	// GenerateToken creates a signed token for the given username. The
	// operation is pure given (username, now, signing key) and touches no
	// storage.
	GenerateToken(ctx context.Context, username string) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns an error if validation fails (expired, invalid
	// signature, malformed).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims carries the decoded content of a valid token.
type Claims struct {
	// Subject is the username the token was issued for.
	Subject string `json:"sub,omitempty"`

	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`

	// ID is the unique token identifier (jti).
	ID string `json:"jti,omitempty"`
}
