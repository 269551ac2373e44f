package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/packrat/internal/domain"
)

// PackingItemRepo persists the day-scoped checklist rows of trips.
// Every method is scoped by trip ID; ownership of the trip is checked by the caller.
type PackingItemRepo interface {
	// List returns the trip's items in creation order. A non-nil day restricts
	// the result to that day.
	List(ctx context.Context, tripID uuid.UUID, day *int) ([]domain.PackingItem, error)

	// GetByID returns domain.ErrNotFound if the item is not part of the trip.
	GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.PackingItem, error)

	Create(ctx context.Context, item domain.PackingItem) (domain.PackingItem, error)

	// CreateBatch inserts several items in one round trip, preserving input order.
	CreateBatch(ctx context.Context, items []domain.PackingItem) ([]domain.PackingItem, error)

	// Update overwrites name, category, quantity, and day.
	Update(ctx context.Context, item domain.PackingItem) (domain.PackingItem, error)

	Delete(ctx context.Context, tripID, id uuid.UUID) error

	// SetPackedByName sets is_packed on every item of the trip whose name
	// equals name exactly, on any day. Returns the number of rows changed.
	SetPackedByName(ctx context.Context, tripID uuid.UUID, name string, packed bool) (int64, error)

	// DeleteByInstance removes the items materialized from an event instance.
	DeleteByInstance(ctx context.Context, tripID, instanceID uuid.UUID) (int64, error)

	// DeleteByDay removes every item on day.
	DeleteByDay(ctx context.Context, tripID uuid.UUID, day int) (int64, error)

	// ShiftDaysAfter moves every item on a day after the given one down by one day.
	ShiftDaysAfter(ctx context.Context, tripID uuid.UUID, day int) (int64, error)

	// ExportRows returns the flat printable list ordered by day then creation.
	ExportRows(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error)
}

type pgPackingItemRepo struct {
	db db
}

// NewPackingItemRepo constructs a PackingItemRepo backed by the provided db connection.
func NewPackingItemRepo(db db) PackingItemRepo {
	return &pgPackingItemRepo{db: db}
}

const packingColumns = `id, trip_id, event_instance_id, name, category, quantity, day, is_packed, created_at`

func (r *pgPackingItemRepo) List(ctx context.Context, tripID uuid.UUID, day *int) ([]domain.PackingItem, error) {
	q := `
		SELECT ` + packingColumns + `
		FROM packing_items
		WHERE trip_id = @trip_id
		  AND (@day::int IS NULL OR day = @day::int)
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID, "day": day})
	if err != nil {
		return nil, fmt.Errorf("repo.PackingItemRepo.List: %w", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PackingItem, error) {
		return scanPackingItem(row)
	})
	if err != nil {
		return nil, fmt.Errorf("repo.PackingItemRepo.List: scan: %w", err)
	}
	return items, nil
}

func (r *pgPackingItemRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.PackingItem, error) {
	q := `SELECT ` + packingColumns + ` FROM packing_items WHERE id = @id AND trip_id = @trip_id`

	item, err := scanPackingItem(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID}))
	if err != nil {
		return domain.PackingItem{}, fmt.Errorf("repo.PackingItemRepo.GetByID: %w", err)
	}
	return item, nil
}

const insertPackingItem = `
	INSERT INTO packing_items (trip_id, event_instance_id, name, category, quantity, day, is_packed)
	VALUES (@trip_id, @event_instance_id, @name, @category, @quantity, @day, @is_packed)
	RETURNING ` + packingColumns

func (r *pgPackingItemRepo) Create(ctx context.Context, item domain.PackingItem) (domain.PackingItem, error) {
	result, err := scanPackingItem(r.db.QueryRow(ctx, insertPackingItem, packingArgs(item)))
	if err != nil {
		return domain.PackingItem{}, fmt.Errorf("repo.PackingItemRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgPackingItemRepo) CreateBatch(ctx context.Context, items []domain.PackingItem) ([]domain.PackingItem, error) {
	if len(items) == 0 {
		return []domain.PackingItem{}, nil
	}
	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(insertPackingItem, packingArgs(it))
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	out := make([]domain.PackingItem, 0, len(items))
	for range items {
		item, err := scanPackingItem(br.QueryRow())
		if err != nil {
			return nil, fmt.Errorf("repo.PackingItemRepo.CreateBatch: %w", err)
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *pgPackingItemRepo) Update(ctx context.Context, item domain.PackingItem) (domain.PackingItem, error) {
	q := `
		UPDATE packing_items
		SET name = @name, category = @category, quantity = @quantity, day = @day
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + packingColumns

	args := packingArgs(item)
	args["id"] = item.ID
	result, err := scanPackingItem(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.PackingItem{}, fmt.Errorf("repo.PackingItemRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgPackingItemRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM packing_items WHERE id = @id AND trip_id = @trip_id`,
		pgx.NamedArgs{"id": id, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.PackingItemRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PackingItemRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgPackingItemRepo) SetPackedByName(ctx context.Context, tripID uuid.UUID, name string, packed bool) (int64, error) {
	const q = `
		UPDATE packing_items
		SET is_packed = @packed
		WHERE trip_id = @trip_id AND name = @name`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "name": name, "packed": packed})
	if err != nil {
		return 0, fmt.Errorf("repo.PackingItemRepo.SetPackedByName: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgPackingItemRepo) DeleteByInstance(ctx context.Context, tripID, instanceID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM packing_items WHERE trip_id = @trip_id AND event_instance_id = @instance_id`,
		pgx.NamedArgs{"trip_id": tripID, "instance_id": instanceID})
	if err != nil {
		return 0, fmt.Errorf("repo.PackingItemRepo.DeleteByInstance: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgPackingItemRepo) DeleteByDay(ctx context.Context, tripID uuid.UUID, day int) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM packing_items WHERE trip_id = @trip_id AND day = @day`,
		pgx.NamedArgs{"trip_id": tripID, "day": day})
	if err != nil {
		return 0, fmt.Errorf("repo.PackingItemRepo.DeleteByDay: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgPackingItemRepo) ShiftDaysAfter(ctx context.Context, tripID uuid.UUID, day int) (int64, error) {
	tag, err := r.db.Exec(ctx, `UPDATE packing_items SET day = day - 1 WHERE trip_id = @trip_id AND day > @day`,
		pgx.NamedArgs{"trip_id": tripID, "day": day})
	if err != nil {
		return 0, fmt.Errorf("repo.PackingItemRepo.ShiftDaysAfter: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgPackingItemRepo) ExportRows(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error) {
	const q = `
		SELECT p.day, p.name, p.category, p.quantity, p.is_packed, COALESCE(e.name, '')
		FROM packing_items p
		LEFT JOIN event_instances ei ON ei.id = p.event_instance_id
		LEFT JOIN events e ON e.id = ei.event_id
		WHERE p.trip_id = @trip_id
		ORDER BY p.day, p.created_at, p.id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.PackingItemRepo.ExportRows: %w", err)
	}
	defer rows.Close()

	out := []domain.ExportRow{}
	for rows.Next() {
		var (
			row      domain.ExportRow
			category string
		)
		if err := rows.Scan(&row.Day, &row.Name, &category, &row.Quantity, &row.Packed, &row.Event); err != nil {
			return nil, fmt.Errorf("repo.PackingItemRepo.ExportRows: scan: %w", err)
		}
		row.Category = domain.Category(category)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PackingItemRepo.ExportRows: rows: %w", err)
	}
	return out, nil
}

func packingArgs(it domain.PackingItem) pgx.NamedArgs {
	return pgx.NamedArgs{
		"trip_id":           it.TripID,
		"event_instance_id": it.EventInstanceID, // nil becomes NULL
		"name":              it.Name,
		"category":          string(it.Category),
		"quantity":          it.Quantity,
		"day":               it.Day,
		"is_packed":         it.IsPacked,
	}
}

func scanPackingItem(s scanner) (domain.PackingItem, error) {
	var (
		it         domain.PackingItem
		id, tripID pgtype.UUID
		instanceID pgtype.UUID
		category   string
	)
	err := s.Scan(&id, &tripID, &instanceID, &it.Name, &category, &it.Quantity, &it.Day, &it.IsPacked, &it.CreatedAt)
	if err != nil {
		return domain.PackingItem{}, mapPgError(err)
	}
	it.ID = uuid.UUID(id.Bytes)
	it.TripID = uuid.UUID(tripID.Bytes)
	if instanceID.Valid {
		iid := uuid.UUID(instanceID.Bytes)
		it.EventInstanceID = &iid
	}
	it.Category = domain.Category(category)
	return it, nil
}
