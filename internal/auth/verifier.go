// Package auth guards the admin surface with a single operator-configured
// password.
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrSecretNotConfigured means the operator never set the admin password.
	ErrSecretNotConfigured = errors.New("admin password is not configured")
	// ErrInvalidPassword means the submitted password does not match.
	ErrInvalidPassword = errors.New("invalid password")
)

// Verifier compares submitted passwords against the operator secret.
type Verifier struct {
	secret []byte
	hashed bool
}

// NewVerifier builds a Verifier. The secret may be plain text or a bcrypt
// hash.
func NewVerifier(secret string) *Verifier {
	trimmed := strings.TrimSpace(secret)
	return &Verifier{secret: []byte(trimmed), hashed: isBcryptHash(trimmed)}
}

// Configured reports whether a secret is set.
func (v *Verifier) Configured() bool {
	return v != nil && len(v.secret) > 0
}

// Verify returns nil on a match, ErrSecretNotConfigured without a secret and
// ErrInvalidPassword otherwise.
func (v *Verifier) Verify(password string) error {
	if !v.Configured() {
		return ErrSecretNotConfigured
	}

	if v.hashed {
		if err := bcrypt.CompareHashAndPassword(v.secret, []byte(password)); err != nil {
			return ErrInvalidPassword
		}
		return nil
	}

	if subtle.ConstantTimeCompare(v.secret, []byte(password)) != 1 {
		return ErrInvalidPassword
	}
	return nil
}

func isBcryptHash(value string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}
