// Package service contains the business logic for the Pack Rat API.
// Services validate inputs, enforce ownership and business rules, and
// orchestrate repo calls, running multi-step writes inside one transaction.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/packrat/internal/domain"
	"github.com/pkordes/packrat/internal/repo"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	trips repo.TripRepo
	tx    repo.TxManager
}

// NewTripService constructs a TripService backed by the provided repo and
// transaction manager.
func NewTripService(trips repo.TripRepo, tx repo.TxManager) *TripService {
	return &TripService{trips: trips, tx: tx}
}

// Create validates, normalizes, and persists a new trip for trip.UserID.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip, err := normalizeTrip(trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip owned by userID.
func (s *TripService) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	result, err := s.trips.GetByID(ctx, userID, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of the user's trips, newest first.
func (s *TripService) List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	trips, total, err := s.trips.ListPaged(ctx, userID, p)
	if err != nil {
		return domain.Page[domain.Trip]{}, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return domain.Page[domain.Trip]{Items: trips, Total: total}, nil
}

// Update validates and persists changes to a trip. PackingDays may not drop
// below the highest day still holding items or event instances; days are
// removed with PackingService.DeleteDay instead. A zero PackingDays keeps the
// current count.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	keepDays := trip.PackingDays == 0
	trip, err := normalizeTrip(trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	var result domain.Trip
	err = s.tx.WithinTx(ctx, func(r repo.Repos) error {
		current, err := r.Trips.GetForUpdate(ctx, trip.UserID, trip.ID)
		if err != nil {
			return err
		}
		if keepDays {
			trip.PackingDays = current.PackingDays
		}
		used, err := r.Trips.MaxUsedDay(ctx, trip.ID)
		if err != nil {
			return err
		}
		if trip.PackingDays < used {
			return fmt.Errorf("%w: day %d still has items; delete the day instead of shrinking the trip", domain.ErrValidation, used)
		}
		result, err = r.Trips.Update(ctx, trip)
		return err
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip and everything that belongs to it.
func (s *TripService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.trips.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// AddDay appends an empty day to the trip's packing schedule.
func (s *TripService) AddDay(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	var result domain.Trip
	err := s.tx.WithinTx(ctx, func(r repo.Repos) error {
		current, err := r.Trips.GetForUpdate(ctx, userID, id)
		if err != nil {
			return err
		}
		if current.PackingDays >= domain.MaxPackingDays {
			return fmt.Errorf("%w: a trip can have at most %d packing days", domain.ErrValidation, domain.MaxPackingDays)
		}
		result, err = r.Trips.AdjustPackingDays(ctx, id, 1)
		return err
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.AddDay: %w", err)
	}
	return result, nil
}

// normalizeTrip trims and lower-cases the text fields and applies the
// packing-days default. It returns ErrValidation for rule violations.
func normalizeTrip(t domain.Trip) (domain.Trip, error) {
	t.Name = domain.NormalizeText(t.Name)
	t.Origin = domain.NormalizeText(t.Origin)
	t.Destination = domain.NormalizeText(t.Destination)
	t.Notes = domain.NormalizeText(t.Notes)

	if t.Name == "" {
		return domain.Trip{}, fmt.Errorf("%w: trip name is required", domain.ErrValidation)
	}
	if t.StartDate.IsZero() {
		return domain.Trip{}, fmt.Errorf("%w: start date is required", domain.ErrValidation)
	}
	if t.EndDate != nil && t.EndDate.Before(t.StartDate) {
		return domain.Trip{}, fmt.Errorf("%w: end date must not be before start date", domain.ErrValidation)
	}
	switch {
	case t.PackingDays == 0:
		t.PackingDays = 1
	case t.PackingDays < 0:
		return domain.Trip{}, fmt.Errorf("%w: packing days must be positive", domain.ErrValidation)
	case t.PackingDays > domain.MaxPackingDays:
		return domain.Trip{}, fmt.Errorf("%w: a trip can have at most %d packing days", domain.ErrValidation, domain.MaxPackingDays)
	}
	return t, nil
}

// requireName trims name and reports ErrValidation naming field when it is empty.
func requireName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
	}
	return name, nil
}
