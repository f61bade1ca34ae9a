package utils

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashOrRead returns the bcrypt hash of password, accepting an already
// hashed value as-is so operators can inject precomputed hashes via env.
func HashOrRead(password string) ([]byte, error) {
	if strings.HasPrefix(password, "$2a$") || strings.HasPrefix(password, "$2b$") || strings.HasPrefix(password, "$2y$") {
		return []byte(password), nil // already bcrypt
	}
	return bcrypt.GenerateFromPassword([]byte(password), 10)
}
