package bcrypt

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is deliberately above the library default to keep offline
// brute force expensive.
const DefaultCost = 12

func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

func ComparePassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
