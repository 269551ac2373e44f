package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/packrat/internal/domain"
	"github.com/pkordes/packrat/internal/repo"
)

// PackingService owns the per-day packing lists of a trip: items, event
// attachments, day views, and day deletion.
//
// repos are bound to the connection pool and serve single-statement reads
// and writes; tx runs the multi-step operations atomically.
type PackingService struct {
	repos repo.Repos
	tx    repo.TxManager
}

// NewPackingService constructs a PackingService.
func NewPackingService(repos repo.Repos, tx repo.TxManager) *PackingService {
	return &PackingService{repos: repos, tx: tx}
}

// ListItems returns the trip's packing items in creation order, optionally
// restricted to one day.
func (s *PackingService) ListItems(ctx context.Context, userID, tripID uuid.UUID, day *int) ([]domain.PackingItem, error) {
	trip, err := s.repos.Trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.PackingService.ListItems: %w", err)
	}
	if day != nil && !trip.HasDay(*day) {
		return nil, fmt.Errorf("service.PackingService.ListItems: %w", dayOutOfRange(trip))
	}
	items, err := s.repos.Items.List(ctx, tripID, day)
	if err != nil {
		return nil, fmt.Errorf("service.PackingService.ListItems: %w", err)
	}
	return items, nil
}

// AddItem adds a hand-entered item to one day of a trip.
func (s *PackingService) AddItem(ctx context.Context, userID uuid.UUID, item domain.PackingItem) (domain.PackingItem, error) {
	trip, err := s.repos.Trips.GetByID(ctx, userID, item.TripID)
	if err != nil {
		return domain.PackingItem{}, fmt.Errorf("service.PackingService.AddItem: %w", err)
	}
	item, err = normalizePackingItem(trip, item)
	if err != nil {
		return domain.PackingItem{}, fmt.Errorf("service.PackingService.AddItem: %w", err)
	}
	item.EventInstanceID = nil
	item.IsPacked = false

	result, err := s.repos.Items.Create(ctx, item)
	if err != nil {
		return domain.PackingItem{}, fmt.Errorf("service.PackingService.AddItem: %w", err)
	}
	return result, nil
}

// UpdateItem overwrites name, category, quantity, and day of an item.
// The packed state is changed only through TogglePacked.
func (s *PackingService) UpdateItem(ctx context.Context, userID uuid.UUID, item domain.PackingItem) (domain.PackingItem, error) {
	trip, err := s.repos.Trips.GetByID(ctx, userID, item.TripID)
	if err != nil {
		return domain.PackingItem{}, fmt.Errorf("service.PackingService.UpdateItem: %w", err)
	}
	item, err = normalizePackingItem(trip, item)
	if err != nil {
		return domain.PackingItem{}, fmt.Errorf("service.PackingService.UpdateItem: %w", err)
	}

	result, err := s.repos.Items.Update(ctx, item)
	if err != nil {
		return domain.PackingItem{}, fmt.Errorf("service.PackingService.UpdateItem: %w", err)
	}
	return result, nil
}

func (s *PackingService) DeleteItem(ctx context.Context, userID, tripID, itemID uuid.UUID) error {
	if _, err := s.repos.Trips.GetByID(ctx, userID, tripID); err != nil {
		return fmt.Errorf("service.PackingService.DeleteItem: %w", err)
	}
	if err := s.repos.Items.Delete(ctx, tripID, itemID); err != nil {
		return fmt.Errorf("service.PackingService.DeleteItem: %w", err)
	}
	return nil
}

// TogglePacked flips the packed state of one item and applies the new state
// to every item of the trip with the same name, on any day.
func (s *PackingService) TogglePacked(ctx context.Context, userID, tripID, itemID uuid.UUID) (domain.ToggleResult, error) {
	var result domain.ToggleResult
	err := s.tx.WithinTx(ctx, func(r repo.Repos) error {
		if _, err := r.Trips.GetByID(ctx, userID, tripID); err != nil {
			return err
		}
		item, err := r.Items.GetByID(ctx, tripID, itemID)
		if err != nil {
			return err
		}
		packed := !item.IsPacked
		n, err := r.Items.SetPackedByName(ctx, tripID, item.Name, packed)
		if err != nil {
			return err
		}
		result = domain.ToggleResult{Name: item.Name, IsPacked: packed, Affected: n}
		return nil
	})
	if err != nil {
		return domain.ToggleResult{}, fmt.Errorf("service.PackingService.TogglePacked: %w", err)
	}
	return result, nil
}

// Export returns the flat printable packing list of a trip.
func (s *PackingService) Export(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ExportRow, error) {
	if _, err := s.repos.Trips.GetByID(ctx, userID, tripID); err != nil {
		return nil, fmt.Errorf("service.PackingService.Export: %w", err)
	}
	rows, err := s.repos.Items.ExportRows(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.PackingService.Export: %w", err)
	}
	return rows, nil
}

func normalizePackingItem(trip domain.Trip, item domain.PackingItem) (domain.PackingItem, error) {
	var err error
	if item.Name, err = requireName("item name", item.Name); err != nil {
		return domain.PackingItem{}, err
	}
	if item.Category, err = domain.ParseCategory(string(item.Category)); err != nil {
		return domain.PackingItem{}, err
	}
	if !trip.HasDay(item.Day) {
		return domain.PackingItem{}, dayOutOfRange(trip)
	}
	item.Quantity = domain.NormalizeQuantity(item.Quantity)
	return item, nil
}

func dayOutOfRange(trip domain.Trip) error {
	return fmt.Errorf("%w: day must be between 1 and %d", domain.ErrValidation, trip.PackingDays)
}
