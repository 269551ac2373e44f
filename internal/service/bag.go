package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/packrat/internal/domain"
	"github.com/pkordes/packrat/internal/repo"
)

// BagService manages the bags of a trip. Bags are not tied to a day and their
// items are toggled one row at a time.
type BagService struct {
	trips repo.TripRepo
	bags  repo.BagRepo
}

// NewBagService constructs a BagService.
func NewBagService(trips repo.TripRepo, bags repo.BagRepo) *BagService {
	return &BagService{trips: trips, bags: bags}
}

func (s *BagService) List(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Bag, error) {
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return nil, fmt.Errorf("service.BagService.List: %w", err)
	}
	bags, err := s.bags.List(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.BagService.List: %w", err)
	}
	return bags, nil
}

func (s *BagService) Create(ctx context.Context, userID, tripID uuid.UUID, name string) (domain.Bag, error) {
	name, err := requireName("bag name", name)
	if err != nil {
		return domain.Bag{}, fmt.Errorf("service.BagService.Create: %w", err)
	}
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return domain.Bag{}, fmt.Errorf("service.BagService.Create: %w", err)
	}
	bag, err := s.bags.Create(ctx, domain.Bag{TripID: tripID, UserID: userID, Name: name})
	if err != nil {
		return domain.Bag{}, fmt.Errorf("service.BagService.Create: %w", err)
	}
	return bag, nil
}

func (s *BagService) Delete(ctx context.Context, userID, tripID, bagID uuid.UUID) error {
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return fmt.Errorf("service.BagService.Delete: %w", err)
	}
	if err := s.bags.Delete(ctx, tripID, bagID); err != nil {
		return fmt.Errorf("service.BagService.Delete: %w", err)
	}
	return nil
}

// AddItem adds an unpacked item to a bag.
func (s *BagService) AddItem(ctx context.Context, userID, tripID, bagID uuid.UUID, name string, category domain.Category) (domain.BagItem, error) {
	name, err := requireName("item name", name)
	if err != nil {
		return domain.BagItem{}, fmt.Errorf("service.BagService.AddItem: %w", err)
	}
	category, err = domain.ParseCategory(string(category))
	if err != nil {
		return domain.BagItem{}, fmt.Errorf("service.BagService.AddItem: %w", err)
	}
	if err := s.ownBag(ctx, userID, tripID, bagID); err != nil {
		return domain.BagItem{}, fmt.Errorf("service.BagService.AddItem: %w", err)
	}
	item, err := s.bags.AddItem(ctx, domain.BagItem{BagID: bagID, Name: name, Category: category})
	if err != nil {
		return domain.BagItem{}, fmt.Errorf("service.BagService.AddItem: %w", err)
	}
	return item, nil
}

// ToggleItem flips the packed state of one bag item.
func (s *BagService) ToggleItem(ctx context.Context, userID, tripID, bagID, itemID uuid.UUID) (domain.BagItem, error) {
	if err := s.ownBag(ctx, userID, tripID, bagID); err != nil {
		return domain.BagItem{}, fmt.Errorf("service.BagService.ToggleItem: %w", err)
	}
	item, err := s.bags.ToggleItem(ctx, bagID, itemID)
	if err != nil {
		return domain.BagItem{}, fmt.Errorf("service.BagService.ToggleItem: %w", err)
	}
	return item, nil
}

func (s *BagService) DeleteItem(ctx context.Context, userID, tripID, bagID, itemID uuid.UUID) error {
	if err := s.ownBag(ctx, userID, tripID, bagID); err != nil {
		return fmt.Errorf("service.BagService.DeleteItem: %w", err)
	}
	if err := s.bags.DeleteItem(ctx, bagID, itemID); err != nil {
		return fmt.Errorf("service.BagService.DeleteItem: %w", err)
	}
	return nil
}

// ownBag checks that the trip belongs to userID and the bag to the trip.
func (s *BagService) ownBag(ctx context.Context, userID, tripID, bagID uuid.UUID) error {
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return err
	}
	_, err := s.bags.GetByID(ctx, tripID, bagID)
	return err
}
