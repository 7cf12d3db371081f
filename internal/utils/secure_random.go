package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateSecureRandomString returns n cryptographically random bytes hex
// encoded, so the result is 2n characters long. Used for OAuth state tokens.
func GenerateSecureRandomString(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("byte length must be positive, got %d", n)
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
