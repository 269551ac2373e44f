// Package auth issues and verifies session tokens and hashes passwords.
// It knows nothing about HTTP or storage; the service layer decides when a
// session exists and the middleware decides where the token comes from.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pkordes/packrat/internal/domain"
)

const issuer = "packrat"

// Claims identifies one session of one user.
type Claims struct {
	SessionID uuid.UUID
	UserID    uuid.UUID
	ExpiresAt time.Time
}

// TokenIssuer signs and parses HS256 session tokens.
// The token's jti is the session ID and its sub is the user ID.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

// NewTokenIssuer returns a TokenIssuer keyed with secret.
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

// Issue signs a token for sess.
func (ti *TokenIssuer) Issue(sess domain.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   sess.UserID.String(),
		ID:        sess.ID.String(),
		IssuedAt:  jwt.NewNumericDate(ti.now()),
		ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("auth.TokenIssuer.Issue: %w", err)
	}
	return signed, nil
}

// Parse verifies signature, issuer, and expiry and returns the embedded claims.
// Any failure is reported as domain.ErrUnauthorized.
func (ti *TokenIssuer) Parse(token string) (Claims, error) {
	var rc jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &rc, func(t *jwt.Token) (any, error) {
		return ti.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ti.now),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("auth.TokenIssuer.Parse: %w: %w", domain.ErrUnauthorized, err)
	}

	sessionID, errS := uuid.Parse(rc.ID)
	userID, errU := uuid.Parse(rc.Subject)
	if err := errors.Join(errS, errU); err != nil {
		return Claims{}, fmt.Errorf("auth.TokenIssuer.Parse: %w: malformed claims", domain.ErrUnauthorized)
	}
	return Claims{SessionID: sessionID, UserID: userID, ExpiresAt: rc.ExpiresAt.Time}, nil
}
