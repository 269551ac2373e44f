package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/packrat/internal/domain"
)

func TestUserRepo_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	email := uuid.NewString() + "@example.com"

	_, err := f.repos.Users.Create(ctx, domain.User{Email: email, PasswordHash: "h"})
	require.NoError(t, err)

	_, err = f.repos.Users.Create(ctx, domain.User{Email: email, PasswordHash: "h"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	email := uuid.NewString() + "@example.com"

	created, err := f.repos.Users.Create(ctx, domain.User{Email: email, DisplayName: "Ana", PasswordHash: "h"})
	require.NoError(t, err)

	got, err := f.repos.Users.GetByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Ana", got.DisplayName)

	_, err = f.repos.Users.GetByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionRepo_CreateAndRevoke(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess, err := f.repos.Sessions.Create(ctx, f.userID, time.Now().Add(time.Hour))
	require.NoError(t, err)

	got, err := f.repos.Sessions.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, f.userID, got.UserID)

	require.NoError(t, f.repos.Sessions.Delete(ctx, sess.ID))
	_, err = f.repos.Sessions.GetByID(ctx, sess.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionRepo_ConsumeResetOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	reset := domain.PasswordReset{TokenHash: uuid.NewString(), UserID: f.userID, ExpiresAt: time.Now().Add(time.Minute)}
	require.NoError(t, f.repos.Sessions.CreateReset(ctx, reset))

	got, err := f.repos.Sessions.ConsumeReset(ctx, reset.TokenHash)
	require.NoError(t, err)
	assert.Equal(t, f.userID, got.UserID)

	_, err = f.repos.Sessions.ConsumeReset(ctx, reset.TokenHash)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
