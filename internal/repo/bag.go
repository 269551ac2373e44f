package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/packrat/internal/domain"
)

// BagRepo persists bags and their checklist rows. Bags are scoped by trip.
type BagRepo interface {
	// List returns the trip's bags in creation order, each with its items.
	List(ctx context.Context, tripID uuid.UUID) ([]domain.Bag, error)

	// GetByID returns domain.ErrNotFound if the bag is not part of the trip.
	GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Bag, error)

	Create(ctx context.Context, bag domain.Bag) (domain.Bag, error)
	Delete(ctx context.Context, tripID, id uuid.UUID) error

	AddItem(ctx context.Context, item domain.BagItem) (domain.BagItem, error)

	// ToggleItem flips the packed flag of one bag item and returns the updated row.
	ToggleItem(ctx context.Context, bagID, itemID uuid.UUID) (domain.BagItem, error)

	DeleteItem(ctx context.Context, bagID, itemID uuid.UUID) error
}

type pgBagRepo struct {
	db db
}

// NewBagRepo constructs a BagRepo backed by the provided db connection.
func NewBagRepo(db db) BagRepo {
	return &pgBagRepo{db: db}
}

const (
	bagColumns     = `id, trip_id, user_id, name, created_at`
	bagItemColumns = `id, bag_id, name, category, packed, created_at`
)

func (r *pgBagRepo) List(ctx context.Context, tripID uuid.UUID) ([]domain.Bag, error) {
	q := `SELECT ` + bagColumns + ` FROM bags WHERE trip_id = @trip_id ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.BagRepo.List: %w", err)
	}
	bags, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Bag, error) {
		return scanBag(row)
	})
	if err != nil {
		return nil, fmt.Errorf("repo.BagRepo.List: scan: %w", err)
	}

	items, err := r.itemsFor(ctx, tripID, nil)
	if err != nil {
		return nil, fmt.Errorf("repo.BagRepo.List: %w", err)
	}
	for i := range bags {
		bags[i].Items = bagItemsOrEmpty(items[bags[i].ID])
	}
	return bags, nil
}

func (r *pgBagRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Bag, error) {
	q := `SELECT ` + bagColumns + ` FROM bags WHERE id = @id AND trip_id = @trip_id`

	bag, err := scanBag(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID}))
	if err != nil {
		return domain.Bag{}, fmt.Errorf("repo.BagRepo.GetByID: %w", err)
	}
	items, err := r.itemsFor(ctx, tripID, &id)
	if err != nil {
		return domain.Bag{}, fmt.Errorf("repo.BagRepo.GetByID: %w", err)
	}
	bag.Items = bagItemsOrEmpty(items[id])
	return bag, nil
}

// itemsFor loads bag items of a trip keyed by bag ID, optionally for one bag only.
func (r *pgBagRepo) itemsFor(ctx context.Context, tripID uuid.UUID, bagID *uuid.UUID) (map[uuid.UUID][]domain.BagItem, error) {
	q := `
		SELECT bi.id, bi.bag_id, bi.name, bi.category, bi.packed, bi.created_at
		FROM bag_items bi JOIN bags b ON b.id = bi.bag_id
		WHERE b.trip_id = @trip_id
		  AND (@bag_id::uuid IS NULL OR bi.bag_id = @bag_id::uuid)
		ORDER BY bi.created_at, bi.id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID, "bag_id": bagID})
	if err != nil {
		return nil, fmt.Errorf("items: %w", err)
	}
	defer rows.Close()

	out := map[uuid.UUID][]domain.BagItem{}
	for rows.Next() {
		it, err := scanBagItem(rows)
		if err != nil {
			return nil, fmt.Errorf("items: scan: %w", err)
		}
		out[it.BagID] = append(out[it.BagID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("items: rows: %w", err)
	}
	return out, nil
}

func (r *pgBagRepo) Create(ctx context.Context, bag domain.Bag) (domain.Bag, error) {
	q := `
		INSERT INTO bags (trip_id, user_id, name)
		VALUES (@trip_id, @user_id, @name)
		RETURNING ` + bagColumns

	result, err := scanBag(r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"trip_id": bag.TripID,
		"user_id": bag.UserID,
		"name":    bag.Name,
	}))
	if err != nil {
		return domain.Bag{}, fmt.Errorf("repo.BagRepo.Create: %w", err)
	}
	result.Items = []domain.BagItem{}
	return result, nil
}

func (r *pgBagRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM bags WHERE id = @id AND trip_id = @trip_id`,
		pgx.NamedArgs{"id": id, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.BagRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.BagRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgBagRepo) AddItem(ctx context.Context, item domain.BagItem) (domain.BagItem, error) {
	q := `
		INSERT INTO bag_items (bag_id, name, category, packed)
		VALUES (@bag_id, @name, @category, @packed)
		RETURNING ` + bagItemColumns

	result, err := scanBagItem(r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"bag_id":   item.BagID,
		"name":     item.Name,
		"category": string(item.Category),
		"packed":   item.Packed,
	}))
	if err != nil {
		return domain.BagItem{}, fmt.Errorf("repo.BagRepo.AddItem: %w", err)
	}
	return result, nil
}

func (r *pgBagRepo) ToggleItem(ctx context.Context, bagID, itemID uuid.UUID) (domain.BagItem, error) {
	q := `
		UPDATE bag_items SET packed = NOT packed
		WHERE id = @id AND bag_id = @bag_id
		RETURNING ` + bagItemColumns

	result, err := scanBagItem(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": itemID, "bag_id": bagID}))
	if err != nil {
		return domain.BagItem{}, fmt.Errorf("repo.BagRepo.ToggleItem: %w", err)
	}
	return result, nil
}

func (r *pgBagRepo) DeleteItem(ctx context.Context, bagID, itemID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM bag_items WHERE id = @id AND bag_id = @bag_id`,
		pgx.NamedArgs{"id": itemID, "bag_id": bagID})
	if err != nil {
		return fmt.Errorf("repo.BagRepo.DeleteItem: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.BagRepo.DeleteItem: %w", domain.ErrNotFound)
	}
	return nil
}

func bagItemsOrEmpty(items []domain.BagItem) []domain.BagItem {
	if items == nil {
		return []domain.BagItem{}
	}
	return items
}

func scanBag(s scanner) (domain.Bag, error) {
	var (
		b                  domain.Bag
		id, tripID, userID pgtype.UUID
	)
	if err := s.Scan(&id, &tripID, &userID, &b.Name, &b.CreatedAt); err != nil {
		return domain.Bag{}, mapPgError(err)
	}
	b.ID = uuid.UUID(id.Bytes)
	b.TripID = uuid.UUID(tripID.Bytes)
	b.UserID = uuid.UUID(userID.Bytes)
	return b, nil
}

func scanBagItem(s scanner) (domain.BagItem, error) {
	var (
		it        domain.BagItem
		id, bagID pgtype.UUID
		category  string
	)
	if err := s.Scan(&id, &bagID, &it.Name, &category, &it.Packed, &it.CreatedAt); err != nil {
		return domain.BagItem{}, mapPgError(err)
	}
	it.ID = uuid.UUID(id.Bytes)
	it.BagID = uuid.UUID(bagID.Bytes)
	it.Category = domain.Category(category)
	return it, nil
}
