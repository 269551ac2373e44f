package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/packrat/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
// Every read and write is scoped by the owning user's ID; a trip owned by
// someone else is indistinguishable from a missing one.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with DB-generated
	// id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip owned by userID.
	// Returns domain.ErrNotFound if no such trip exists.
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)

	// GetForUpdate is GetByID plus a row lock held until the surrounding
	// transaction ends. Used by multi-step day operations.
	GetForUpdate(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)

	// ListPaged returns one page of the user's trips, newest first, and the total count.
	ListPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// Update overwrites the mutable fields of a trip owned by trip.UserID.
	// Returns domain.ErrNotFound if no such trip exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// AdjustPackingDays adds delta to packing_days and returns the updated trip.
	AdjustPackingDays(ctx context.Context, id uuid.UUID, delta int) (domain.Trip, error)

	// MaxUsedDay returns the highest day referenced by any packing item or
	// event instance of the trip, or 0 when none exist.
	MaxUsedDay(ctx context.Context, id uuid.UUID) (int, error)

	// Delete removes a trip owned by userID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, user_id, trip_name, origin, destination, start_date, end_date,
	packing_days, notes, created_at, updated_at`

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	q := `
		INSERT INTO trips (user_id, trip_name, origin, destination, start_date, end_date, packing_days, notes)
		VALUES (@user_id, @trip_name, @origin, @destination, @start_date, @end_date, @packing_days, @notes)
		RETURNING ` + tripColumns

	row := r.db.QueryRow(ctx, q, tripArgs(trip))
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE id = @id AND user_id = @user_id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetForUpdate(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE id = @id AND user_id = @user_id FOR UPDATE`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetForUpdate: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of trips ordered by created_at descending (newest first).
func (r *pgTripRepo) ListPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM trips WHERE user_id = @user_id`,
		pgx.NamedArgs{"user_id": userID}).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}

	q := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE user_id = @user_id
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"user_id": userID,
		"limit":   p.Limit,
		"offset":  p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: rows: %w", err)
	}
	return trips, total, nil
}

// Update overwrites the mutable fields of a trip and returns the updated record.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	q := `
		UPDATE trips
		SET trip_name    = @trip_name,
		    origin       = @origin,
		    destination  = @destination,
		    start_date   = @start_date,
		    end_date     = @end_date,
		    packing_days = @packing_days,
		    notes        = @notes,
		    updated_at   = now()
		WHERE id = @id AND user_id = @user_id
		RETURNING ` + tripColumns

	args := tripArgs(trip)
	args["id"] = trip.ID
	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) AdjustPackingDays(ctx context.Context, id uuid.UUID, delta int) (domain.Trip, error) {
	q := `
		UPDATE trips
		SET packing_days = packing_days + @delta,
		    updated_at   = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "delta": delta}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.AdjustPackingDays: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) MaxUsedDay(ctx context.Context, id uuid.UUID) (int, error) {
	const q = `
		SELECT GREATEST(
			COALESCE((SELECT max(day) FROM packing_items WHERE trip_id = @id), 0),
			COALESCE((SELECT max(day) FROM event_instances WHERE trip_id = @id), 0)
		)`

	var day int
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&day); err != nil {
		return 0, fmt.Errorf("repo.TripRepo.MaxUsedDay: %w", err)
	}
	return day, nil
}

// Delete removes a trip by primary key; child rows go with it via ON DELETE CASCADE.
func (r *pgTripRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func tripArgs(t domain.Trip) pgx.NamedArgs {
	return pgx.NamedArgs{
		"user_id":      t.UserID,
		"trip_name":    t.Name,
		"origin":       t.Origin,
		"destination":  t.Destination,
		"start_date":   pgtype.Date{Time: t.StartDate, Valid: true},
		"end_date":     t.EndDate, // nil becomes NULL
		"packing_days": t.PackingDays,
		"notes":        t.Notes,
	}
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the UUID and nullable end_date conversions.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t         domain.Trip
		id, owner pgtype.UUID
		start     pgtype.Date
		end       pgtype.Date
	)

	err := s.Scan(&id, &owner, &t.Name, &t.Origin, &t.Destination, &start, &end,
		&t.PackingDays, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Trip{}, mapPgError(err)
	}

	t.ID = uuid.UUID(id.Bytes)
	t.UserID = uuid.UUID(owner.Bytes)
	t.StartDate = start.Time
	if end.Valid {
		ed := end.Time
		t.EndDate = &ed
	}
	return t, nil
}
