package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/packrat/internal/domain"
)

// UserRepo defines the persistence operations for user accounts.
type UserRepo interface {
	// Create inserts a user. Returns domain.ErrConflict if the email is taken.
	Create(ctx context.Context, user domain.User) (domain.User, error)

	// GetByID returns domain.ErrNotFound if no such user exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// GetByEmail looks a user up by lower-cased email.
	// Returns domain.ErrNotFound if no such user exists.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// UpdateProfile overwrites display name and email.
	// Returns domain.ErrConflict if the new email belongs to another account.
	UpdateProfile(ctx context.Context, user domain.User) (domain.User, error)

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
}

type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

const userColumns = `id, email, display_name, password_hash, created_at, updated_at`

func (r *pgUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	q := `
		INSERT INTO users (email, display_name, password_hash)
		VALUES (@email, @display_name, @password_hash)
		RETURNING ` + userColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"email":         user.Email,
		"display_name":  user.DisplayName,
		"password_hash": user.PasswordHash,
	})
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = @id`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email = @email`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByEmail: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) UpdateProfile(ctx context.Context, user domain.User) (domain.User, error) {
	q := `
		UPDATE users
		SET email        = @email,
		    display_name = @display_name,
		    updated_at   = now()
		WHERE id = @id
		RETURNING ` + userColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"id":           user.ID,
		"email":        user.Email,
		"display_name": user.DisplayName,
	})
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.UpdateProfile: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	const q = `UPDATE users SET password_hash = @hash, updated_at = now() WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "hash": hash})
	if err != nil {
		return fmt.Errorf("repo.UserRepo.UpdatePassword: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.UserRepo.UpdatePassword: %w", domain.ErrNotFound)
	}
	return nil
}

func scanUser(s scanner) (domain.User, error) {
	var (
		u  domain.User
		id pgtype.UUID
	)
	if err := s.Scan(&id, &u.Email, &u.DisplayName, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return domain.User{}, mapPgError(err)
	}
	u.ID = uuid.UUID(id.Bytes)
	return u, nil
}
