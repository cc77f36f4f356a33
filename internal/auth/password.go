package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
)

const (
	bcryptCost        = 12
	minPasswordLength = 8
)

// Verifier turns a password into its stored credential form and checks a
// password against a stored credential.
type Verifier interface {
	Hash(password string) (string, error)
	Verify(password, stored string) bool
}

// PlainVerifier stores passwords as-is, matching the original store's wire
// contract. See DESIGN.md before using it anywhere that matters.
type PlainVerifier struct{}

func (PlainVerifier) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is required")
	}
	return password, nil
}

func (PlainVerifier) Verify(password, stored string) bool {
	return password == stored
}

// BcryptVerifier stores bcrypt hashes instead of plaintext. Records written
// with it are not readable by clients expecting the plaintext contract.
type BcryptVerifier struct{}

func (BcryptVerifier) Hash(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (BcryptVerifier) Verify(password, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
