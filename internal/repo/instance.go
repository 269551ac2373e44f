package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/packrat/internal/domain"
)

// EventInstanceRepo persists the attachments of events to trip days.
type EventInstanceRepo interface {
	// Create inserts an instance. Returns domain.ErrConflict if the event is
	// already attached to that trip day.
	Create(ctx context.Context, inst domain.EventInstance) (domain.EventInstance, error)

	// GetByID returns domain.ErrNotFound if the instance is not part of the trip.
	GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.EventInstance, error)

	// ListByTrip returns every instance of the trip with its event name,
	// ordered by day then attachment order.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.EventInstance, error)

	// Templates returns the instances on one day of a trip (attachment order)
	// paired with their event's item names.
	Templates(ctx context.Context, tripID uuid.UUID, day int) ([]domain.InstanceTemplate, error)

	// DaysForEvent returns the days on which eventID is attached to the trip, ascending.
	DaysForEvent(ctx context.Context, tripID, eventID uuid.UUID) ([]int, error)

	Delete(ctx context.Context, tripID, id uuid.UUID) error

	// DeleteByDay removes every instance on day and returns how many were removed.
	DeleteByDay(ctx context.Context, tripID uuid.UUID, day int) (int64, error)

	// ShiftDaysAfter moves every instance on a day after the given one down by one day.
	ShiftDaysAfter(ctx context.Context, tripID uuid.UUID, day int) (int64, error)
}

type pgEventInstanceRepo struct {
	db db
}

// NewEventInstanceRepo constructs an EventInstanceRepo backed by the provided db connection.
func NewEventInstanceRepo(db db) EventInstanceRepo {
	return &pgEventInstanceRepo{db: db}
}

const instanceColumns = `ei.id, ei.event_id, ei.trip_id, e.name, ei.day, ei.created_at`

func (r *pgEventInstanceRepo) Create(ctx context.Context, inst domain.EventInstance) (domain.EventInstance, error) {
	q := `
		WITH ei AS (
			INSERT INTO event_instances (event_id, trip_id, day)
			VALUES (@event_id, @trip_id, @day)
			RETURNING id, event_id, trip_id, day, created_at
		)
		SELECT ` + instanceColumns + `
		FROM ei JOIN events e ON e.id = ei.event_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"event_id": inst.EventID,
		"trip_id":  inst.TripID,
		"day":      inst.Day,
	})
	result, err := scanInstance(row)
	if err != nil {
		return domain.EventInstance{}, fmt.Errorf("repo.EventInstanceRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgEventInstanceRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.EventInstance, error) {
	q := `
		SELECT ` + instanceColumns + `
		FROM event_instances ei JOIN events e ON e.id = ei.event_id
		WHERE ei.id = @id AND ei.trip_id = @trip_id`

	result, err := scanInstance(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID}))
	if err != nil {
		return domain.EventInstance{}, fmt.Errorf("repo.EventInstanceRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgEventInstanceRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.EventInstance, error) {
	q := `
		SELECT ` + instanceColumns + `
		FROM event_instances ei JOIN events e ON e.id = ei.event_id
		WHERE ei.trip_id = @trip_id
		ORDER BY ei.day, ei.created_at, ei.id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.EventInstanceRepo.ListByTrip: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.EventInstance, error) {
		return scanInstance(row)
	})
	if err != nil {
		return nil, fmt.Errorf("repo.EventInstanceRepo.ListByTrip: scan: %w", err)
	}
	if out == nil {
		out = []domain.EventInstance{}
	}
	return out, nil
}

func (r *pgEventInstanceRepo) Templates(ctx context.Context, tripID uuid.UUID, day int) ([]domain.InstanceTemplate, error) {
	q := `
		SELECT ` + instanceColumns + `,
		       COALESCE(
		           (SELECT array_agg(it.name ORDER BY it.created_at, it.id)
		            FROM event_items it WHERE it.event_id = ei.event_id),
		           '{}')
		FROM event_instances ei JOIN events e ON e.id = ei.event_id
		WHERE ei.trip_id = @trip_id AND ei.day = @day
		ORDER BY ei.created_at, ei.id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID, "day": day})
	if err != nil {
		return nil, fmt.Errorf("repo.EventInstanceRepo.Templates: %w", err)
	}
	defer rows.Close()

	out := []domain.InstanceTemplate{}
	for rows.Next() {
		var (
			tpl                   domain.InstanceTemplate
			id, eventID, tripUUID pgtype.UUID
		)
		err := rows.Scan(&id, &eventID, &tripUUID, &tpl.Instance.EventName, &tpl.Instance.Day,
			&tpl.Instance.CreatedAt, &tpl.ItemNames)
		if err != nil {
			return nil, fmt.Errorf("repo.EventInstanceRepo.Templates: scan: %w", err)
		}
		tpl.Instance.ID = uuid.UUID(id.Bytes)
		tpl.Instance.EventID = uuid.UUID(eventID.Bytes)
		tpl.Instance.TripID = uuid.UUID(tripUUID.Bytes)
		out = append(out, tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.EventInstanceRepo.Templates: rows: %w", err)
	}
	return out, nil
}

func (r *pgEventInstanceRepo) DaysForEvent(ctx context.Context, tripID, eventID uuid.UUID) ([]int, error) {
	const q = `
		SELECT day FROM event_instances
		WHERE trip_id = @trip_id AND event_id = @event_id
		ORDER BY day`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID, "event_id": eventID})
	if err != nil {
		return nil, fmt.Errorf("repo.EventInstanceRepo.DaysForEvent: %w", err)
	}
	days, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("repo.EventInstanceRepo.DaysForEvent: scan: %w", err)
	}
	return days, nil
}

func (r *pgEventInstanceRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM event_instances WHERE id = @id AND trip_id = @trip_id`,
		pgx.NamedArgs{"id": id, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.EventInstanceRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.EventInstanceRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgEventInstanceRepo) DeleteByDay(ctx context.Context, tripID uuid.UUID, day int) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM event_instances WHERE trip_id = @trip_id AND day = @day`,
		pgx.NamedArgs{"trip_id": tripID, "day": day})
	if err != nil {
		return 0, fmt.Errorf("repo.EventInstanceRepo.DeleteByDay: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ShiftDaysAfter relies on the (event_id, trip_id, day) constraint being
// deferrable, so uniqueness is checked once the whole statement has run.
func (r *pgEventInstanceRepo) ShiftDaysAfter(ctx context.Context, tripID uuid.UUID, day int) (int64, error) {
	tag, err := r.db.Exec(ctx, `UPDATE event_instances SET day = day - 1 WHERE trip_id = @trip_id AND day > @day`,
		pgx.NamedArgs{"trip_id": tripID, "day": day})
	if err != nil {
		return 0, fmt.Errorf("repo.EventInstanceRepo.ShiftDaysAfter: %w", mapPgError(err))
	}
	return tag.RowsAffected(), nil
}

func scanInstance(s scanner) (domain.EventInstance, error) {
	var (
		inst                domain.EventInstance
		id, eventID, tripID pgtype.UUID
	)
	if err := s.Scan(&id, &eventID, &tripID, &inst.EventName, &inst.Day, &inst.CreatedAt); err != nil {
		return domain.EventInstance{}, mapPgError(err)
	}
	inst.ID = uuid.UUID(id.Bytes)
	inst.EventID = uuid.UUID(eventID.Bytes)
	inst.TripID = uuid.UUID(tripID.Bytes)
	return inst, nil
}
