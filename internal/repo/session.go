package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/packrat/internal/domain"
)

// SessionRepo persists signed-in sessions and pending password resets.
type SessionRepo interface {
	// Create opens a session for userID that expires at expiresAt.
	Create(ctx context.Context, userID uuid.UUID, expiresAt time.Time) (domain.Session, error)

	// GetByID returns domain.ErrNotFound if the session was revoked or never existed.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Session, error)

	// Delete revokes one session. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByUser revokes every session of a user.
	DeleteByUser(ctx context.Context, userID uuid.UUID) error

	// CreateReset stores a password-reset token hash.
	CreateReset(ctx context.Context, reset domain.PasswordReset) error

	// ConsumeReset deletes and returns the reset with the given hash.
	// Returns domain.ErrNotFound if no such reset exists.
	ConsumeReset(ctx context.Context, tokenHash string) (domain.PasswordReset, error)
}

type pgSessionRepo struct {
	db db
}

// NewSessionRepo constructs a SessionRepo backed by the provided db connection.
func NewSessionRepo(db db) SessionRepo {
	return &pgSessionRepo{db: db}
}

func (r *pgSessionRepo) Create(ctx context.Context, userID uuid.UUID, expiresAt time.Time) (domain.Session, error) {
	const q = `
		INSERT INTO sessions (user_id, expires_at)
		VALUES (@user_id, @expires_at)
		RETURNING id, user_id, expires_at, created_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID, "expires_at": expiresAt})
	result, err := scanSession(row)
	if err != nil {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	const q = `SELECT id, user_id, expires_at, created_at FROM sessions WHERE id = @id`

	result, err := scanSession(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.SessionRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.SessionRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgSessionRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE user_id = @user_id`, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.SessionRepo.DeleteByUser: %w", err)
	}
	return nil
}

func (r *pgSessionRepo) CreateReset(ctx context.Context, reset domain.PasswordReset) error {
	const q = `
		INSERT INTO password_resets (token_hash, user_id, expires_at)
		VALUES (@token_hash, @user_id, @expires_at)`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"token_hash": reset.TokenHash,
		"user_id":    reset.UserID,
		"expires_at": reset.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("repo.SessionRepo.CreateReset: %w", mapPgError(err))
	}
	return nil
}

func (r *pgSessionRepo) ConsumeReset(ctx context.Context, tokenHash string) (domain.PasswordReset, error) {
	const q = `
		DELETE FROM password_resets
		WHERE token_hash = @token_hash
		RETURNING token_hash, user_id, expires_at`

	var (
		reset domain.PasswordReset
		uid   pgtype.UUID
	)
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"token_hash": tokenHash}).
		Scan(&reset.TokenHash, &uid, &reset.ExpiresAt)
	if err != nil {
		return domain.PasswordReset{}, fmt.Errorf("repo.SessionRepo.ConsumeReset: %w", mapPgError(err))
	}
	reset.UserID = uuid.UUID(uid.Bytes)
	return reset, nil
}

func scanSession(s scanner) (domain.Session, error) {
	var (
		sess     domain.Session
		id, user pgtype.UUID
	)
	if err := s.Scan(&id, &user, &sess.ExpiresAt, &sess.CreatedAt); err != nil {
		return domain.Session{}, mapPgError(err)
	}
	sess.ID = uuid.UUID(id.Bytes)
	sess.UserID = uuid.UUID(user.Bytes)
	return sess, nil
}
