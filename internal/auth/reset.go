package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// NewResetToken returns a random URL-safe token to mail to the user and the
// hash under which it is stored.
func NewResetToken() (token, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("auth.NewResetToken: %w", err)
	}
	token = base64.RawURLEncoding.EncodeToString(buf)
	return token, HashResetToken(token), nil
}

// HashResetToken returns the hex SHA-256 of token.
func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
