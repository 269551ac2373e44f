package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/packrat/internal/domain"
)

// EventRepo defines the persistence operations for events and their template items.
// Event rows are scoped by user; item rows are addressed through their event.
type EventRepo interface {
	// List returns the user's events ordered by name, each with its items.
	List(ctx context.Context, userID uuid.UUID) ([]domain.Event, error)

	// GetByID returns one event with its items.
	// Returns domain.ErrNotFound if the event does not exist or belongs to another user.
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Event, error)

	// Create inserts the event row only. Items are written with InsertItems.
	Create(ctx context.Context, event domain.Event) (domain.Event, error)

	// Update overwrites name and description.
	Update(ctx context.Context, event domain.Event) (domain.Event, error)

	Delete(ctx context.Context, userID, id uuid.UUID) error

	// ListItems returns the event's items in creation order.
	ListItems(ctx context.Context, eventID uuid.UUID) ([]domain.EventItem, error)

	// InsertItems adds items to an event in one round trip and returns them
	// with their generated IDs, in input order.
	InsertItems(ctx context.Context, eventID uuid.UUID, items []domain.EventItem) ([]domain.EventItem, error)

	// UpdateItems overwrites name, category, and quantity of existing items.
	UpdateItems(ctx context.Context, eventID uuid.UUID, items []domain.EventItem) error

	// DeleteItems removes items of the event by ID.
	DeleteItems(ctx context.Context, eventID uuid.UUID, ids []uuid.UUID) error
}

type pgEventRepo struct {
	db db
}

// NewEventRepo constructs an EventRepo backed by the provided db connection.
func NewEventRepo(db db) EventRepo {
	return &pgEventRepo{db: db}
}

const (
	eventColumns     = `id, user_id, name, description, created_at, updated_at`
	eventItemColumns = `id, event_id, name, category, quantity`
)

func (r *pgEventRepo) List(ctx context.Context, userID uuid.UUID) ([]domain.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events WHERE user_id = @user_id ORDER BY name, created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.List: %w", err)
	}
	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Event, error) {
		return scanEvent(row)
	})
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.List: scan: %w", err)
	}
	if len(events) == 0 {
		return []domain.Event{}, nil
	}

	ids := make([]uuid.UUID, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.List: %w", err)
	}
	for i := range events {
		events[i].Items = itemsOrEmpty(items[events[i].ID])
	}
	return events, nil
}

func (r *pgEventRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events WHERE id = @id AND user_id = @user_id`

	event, err := scanEvent(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID}))
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.GetByID: %w", err)
	}
	event.Items, err = r.ListItems(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.GetByID: %w", err)
	}
	return event, nil
}

func (r *pgEventRepo) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	q := `
		INSERT INTO events (user_id, name, description)
		VALUES (@user_id, @name, @description)
		RETURNING ` + eventColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"user_id":     event.UserID,
		"name":        event.Name,
		"description": event.Description,
	})
	result, err := scanEvent(row)
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Create: %w", err)
	}
	result.Items = []domain.EventItem{}
	return result, nil
}

func (r *pgEventRepo) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	q := `
		UPDATE events
		SET name        = @name,
		    description = @description,
		    updated_at  = now()
		WHERE id = @id AND user_id = @user_id
		RETURNING ` + eventColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"id":          event.ID,
		"user_id":     event.UserID,
		"name":        event.Name,
		"description": event.Description,
	})
	result, err := scanEvent(row)
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgEventRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = @id AND user_id = @user_id`,
		pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.EventRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.EventRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgEventRepo) ListItems(ctx context.Context, eventID uuid.UUID) ([]domain.EventItem, error) {
	items, err := r.itemsFor(ctx, []uuid.UUID{eventID})
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.ListItems: %w", err)
	}
	return itemsOrEmpty(items[eventID]), nil
}

// itemsFor loads the items of several events in one query, keyed by event ID.
func (r *pgEventRepo) itemsFor(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID][]domain.EventItem, error) {
	q := `
		SELECT ` + eventItemColumns + `
		FROM event_items
		WHERE event_id = ANY(@ids)
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": eventIDs})
	if err != nil {
		return nil, fmt.Errorf("items: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]domain.EventItem, len(eventIDs))
	for rows.Next() {
		item, err := scanEventItem(rows)
		if err != nil {
			return nil, fmt.Errorf("items: scan: %w", err)
		}
		out[item.EventID] = append(out[item.EventID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("items: rows: %w", err)
	}
	return out, nil
}

func (r *pgEventRepo) InsertItems(ctx context.Context, eventID uuid.UUID, items []domain.EventItem) ([]domain.EventItem, error) {
	if len(items) == 0 {
		return []domain.EventItem{}, nil
	}
	q := `
		INSERT INTO event_items (event_id, name, category, quantity)
		VALUES (@event_id, @name, @category, @quantity)
		RETURNING ` + eventItemColumns

	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(q, pgx.NamedArgs{
			"event_id": eventID,
			"name":     it.Name,
			"category": string(it.Category),
			"quantity": it.Quantity,
		})
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	out := make([]domain.EventItem, 0, len(items))
	for range items {
		item, err := scanEventItem(br.QueryRow())
		if err != nil {
			return nil, fmt.Errorf("repo.EventRepo.InsertItems: %w", err)
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *pgEventRepo) UpdateItems(ctx context.Context, eventID uuid.UUID, items []domain.EventItem) error {
	if len(items) == 0 {
		return nil
	}
	const q = `
		UPDATE event_items
		SET name = @name, category = @category, quantity = @quantity
		WHERE id = @id AND event_id = @event_id`

	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(q, pgx.NamedArgs{
			"id":       it.ID,
			"event_id": eventID,
			"name":     it.Name,
			"category": string(it.Category),
			"quantity": it.Quantity,
		})
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	for _, it := range items {
		tag, err := br.Exec()
		if err != nil {
			return fmt.Errorf("repo.EventRepo.UpdateItems: %w", mapPgError(err))
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("repo.EventRepo.UpdateItems: item %s: %w", it.ID, domain.ErrNotFound)
		}
	}
	return nil
}

func (r *pgEventRepo) DeleteItems(ctx context.Context, eventID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx, `DELETE FROM event_items WHERE event_id = @event_id AND id = ANY(@ids)`,
		pgx.NamedArgs{"event_id": eventID, "ids": ids})
	if err != nil {
		return fmt.Errorf("repo.EventRepo.DeleteItems: %w", err)
	}
	return nil
}

func itemsOrEmpty(items []domain.EventItem) []domain.EventItem {
	if items == nil {
		return []domain.EventItem{}
	}
	return items
}

func scanEvent(s scanner) (domain.Event, error) {
	var (
		e         domain.Event
		id, owner pgtype.UUID
	)
	if err := s.Scan(&id, &owner, &e.Name, &e.Description, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return domain.Event{}, mapPgError(err)
	}
	e.ID = uuid.UUID(id.Bytes)
	e.UserID = uuid.UUID(owner.Bytes)
	return e, nil
}

func scanEventItem(s scanner) (domain.EventItem, error) {
	var (
		it          domain.EventItem
		id, eventID pgtype.UUID
		category    string
	)
	if err := s.Scan(&id, &eventID, &it.Name, &category, &it.Quantity); err != nil {
		return domain.EventItem{}, mapPgError(err)
	}
	it.ID = uuid.UUID(id.Bytes)
	it.EventID = uuid.UUID(eventID.Bytes)
	it.Category = domain.Category(category)
	return it, nil
}
