package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrWeakPassword indicates the password does not meet minimum requirements.
var ErrWeakPassword = errors.New("password must be at least 8 characters")

const minPasswordLength = 8

// ValidatePassword checks the password against minimum requirements.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
