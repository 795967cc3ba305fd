package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// RandomToken returns n cryptographically random bytes hex-encoded, so the
// resulting string is 2n characters long.
func RandomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
