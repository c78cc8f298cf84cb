package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier defines the interface for comparing a stored password
// against a login attempt.
type PasswordVerifier interface {
	// Compare compares the stored password with the supplied plaintext.
	// Returns nil on success, or an error on mismatch.
	Compare(storedPassword, password string) error
}

// PlaintextVerifier compares passwords by exact equality. Stored passwords
// are kept exactly as supplied at registration; this preserves the system's
// historical comparison semantics. See DESIGN.md before changing the default.
type PlaintextVerifier struct{}

// NewPlaintextVerifier creates a new PlaintextVerifier.
func NewPlaintextVerifier() *PlaintextVerifier {
	return &PlaintextVerifier{}
}

// Compare implements PasswordVerifier by constant-time string equality.
func (v *PlaintextVerifier) Compare(storedPassword, password string) error {
	if subtle.ConstantTimeCompare([]byte(storedPassword), []byte(password)) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

// BcryptVerifier implements PasswordVerifier using bcrypt. Usable only when
// stored passwords are bcrypt hashes.
type BcryptVerifier struct{}

// NewBcryptVerifier creates a new BcryptVerifier.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

// Compare implements the PasswordVerifier interface using bcrypt.
func (v *BcryptVerifier) Compare(storedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(storedPassword), []byte(password))
}

// NewPasswordVerifier returns the verifier matching the configured scheme.
func NewPasswordVerifier(scheme string) (PasswordVerifier, error) {
	switch scheme {
	case "plaintext":
		return NewPlaintextVerifier(), nil
	case "bcrypt":
		return NewBcryptVerifier(), nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}
