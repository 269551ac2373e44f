// Package repo contains all database access logic for the Pack Rat API.
// Each aggregate has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/packrat/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, and lets
// TxManager hand the same repos a transaction instead of the pool.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Begin(ctx context.Context) (pgx.Tx, error)
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scan helpers to
// be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// Repos bundles every repository over one connection or transaction.
type Repos struct {
	Users     UserRepo
	Sessions  SessionRepo
	Trips     TripRepo
	Events    EventRepo
	Instances EventInstanceRepo
	Items     PackingItemRepo
	Bags      BagRepo
}

// NewRepos constructs all repositories over db.
func NewRepos(db db) Repos {
	return Repos{
		Users:     NewUserRepo(db),
		Sessions:  NewSessionRepo(db),
		Trips:     NewTripRepo(db),
		Events:    NewEventRepo(db),
		Instances: NewEventInstanceRepo(db),
		Items:     NewPackingItemRepo(db),
		Bags:      NewBagRepo(db),
	}
}

// TxManager runs a function against repos bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(Repos) error) error
}

type pgTxManager struct {
	db db
}

// NewTxManager returns a TxManager that begins transactions on db.
// Passing a pgx.Tx nests the work in a savepoint, which keeps integration
// tests inside their rollback-only outer transaction.
func NewTxManager(db db) TxManager {
	return &pgTxManager{db: db}
}

func (m *pgTxManager) WithinTx(ctx context.Context, fn func(Repos) error) error {
	err := pgx.BeginFunc(ctx, m.db, func(tx pgx.Tx) error {
		return fn(NewRepos(tx))
	})
	if err != nil {
		return fmt.Errorf("repo.TxManager.WithinTx: %w", err)
	}
	return nil
}

// Postgres error codes mapped onto domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// constraintMessages gives client-facing wording for the schema's named
// constraints. Unlisted constraints fall back to a generic message.
var constraintMessages = map[string]string{
	"users_email_key":                          "an account with this email already exists",
	"event_instances_event_id_trip_id_day_key": "event is already added to this day",
	"trips_packing_days_check":                 "packing days must be between 1 and 365",
	"event_items_quantity_check":               "quantity must be at least 1",
	"packing_items_quantity_check":             "quantity must be at least 1",
	"packing_items_day_check":                  "day must be at least 1",
	"event_instances_day_check":                "day must be at least 1",
}

func constraintMessage(name, fallback string) string {
	if msg, ok := constraintMessages[name]; ok {
		return msg
	}
	return fallback
}

// mapPgError translates constraint violations into domain sentinels so the
// service and handler layers never inspect driver errors. Constraint names
// stay out of the message.
func mapPgError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", domain.ErrConflict, constraintMessage(pgErr.ConstraintName, "record already exists"))
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", domain.ErrNotFound, constraintMessage(pgErr.ConstraintName, "referenced record does not exist"))
		case pgCheckViolation:
			return fmt.Errorf("%w: %s", domain.ErrValidation, constraintMessage(pgErr.ConstraintName, "value is out of range"))
		}
	}
	return err
}
