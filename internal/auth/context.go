package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/packrat/internal/domain"
)

// Session is the authenticated caller of a request.
type Session struct {
	ID   uuid.UUID
	User domain.User
}

type ctxKey struct{}

// WithSession returns a copy of ctx carrying sess.
func WithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, sess)
}

// SessionFrom returns the session stored by WithSession, if any.
func SessionFrom(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(ctxKey{}).(Session)
	return sess, ok
}
