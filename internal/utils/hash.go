package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a bcrypt hash from the given plain-text password
// using the default cost factor.
//
// Returns the encoded hash string ready for storage, or a wrapped error if
// hashing fails (e.g. the password exceeds bcrypt's 72-byte limit).
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

// ComparePassword reports whether the plain-text password matches the stored
// bcrypt hash. A nil error means the password is correct.
func ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
