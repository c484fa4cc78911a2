package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// MinPasswordLength is the shortest password accepted for an account
const MinPasswordLength = 8

// GenerateSecurePassword creates a random URL-safe password of the
// specified length
func GenerateSecurePassword(length int) (string, error) {
	if length < MinPasswordLength {
		length = MinPasswordLength
	}

	// base64 expands 3 bytes into 4 characters
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b)[:length], nil
}
