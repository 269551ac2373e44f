package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account holder. Email is stored lower-cased and is unique.
// PasswordHash never leaves the service layer.
type User struct {
	ID           uuid.UUID
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is one signed-in device. The session ID is embedded in the issued
// token, so deleting the row revokes the token.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is no longer usable at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// PasswordReset is a pending password-reset request. Only the SHA-256 hash of
// the emailed token is persisted.
type PasswordReset struct {
	TokenHash string
	UserID    uuid.UUID
	ExpiresAt time.Time
}
