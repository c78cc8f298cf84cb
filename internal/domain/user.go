package domain

import "errors"

// User validation errors.
var (
	ErrEmptyUsername = errors.New("username cannot be empty")
	ErrEmptyPassword = errors.New("password cannot be empty")
)

// User represents a registered account. The ID is assigned by storage on
// first save. Token records the most recently issued authentication token;
// it is kept purely as a record and plays no part in token validation.
//
// Password holds the credential exactly as supplied at registration. See the
// auth.PasswordVerifier implementations for the comparison semantics.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
	Token    string `json:"-"`
}

// Validate checks that the User carries both credential fields.
func (u *User) Validate() error {
	if u.Username == "" {
		return ErrEmptyUsername
	}
	if u.Password == "" {
		return ErrEmptyPassword
	}
	return nil
}

// NewUser creates a User with the given credentials.
// Returns an error if validation fails.
func NewUser(username, password string) (*User, error) {
	user := &User{
		Username: username,
		Password: password,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}
