// Package credentials is the credential vault: one-way password hashing and
// signed session tokens. Both primitives are configured at construction so no
// secret lives in package state.
package credentials

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned when a caller tries to hash an empty password.
var ErrEmptyPassword = errors.New("password must not be empty")

// HashPassword derives a one-way bcrypt hash with a per-call random salt.
// Two calls with the same input produce different hashes; VerifyPassword
// succeeds for both.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored hash. Malformed
// hashes compare as false rather than erroring.
func VerifyPassword(password, passwordHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) == nil
}
