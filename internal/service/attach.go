package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/pkordes/packrat/internal/domain"
	"github.com/pkordes/packrat/internal/repo"
)

// Attached is the result of attaching an event to a trip day: the new
// instance and the packing items materialized from the event's template.
type Attached struct {
	Instance domain.EventInstance
	Items    []domain.PackingItem
}

// AttachEvent attaches an event to one day of a trip and copies every
// template item onto that day's packing list, all in one transaction.
//
// Returns domain.ErrValidation when day is outside the trip and
// domain.ErrConflict when the event is already on that day or on every day.
func (s *PackingService) AttachEvent(ctx context.Context, userID, eventID, tripID uuid.UUID, day int) (Attached, error) {
	var result Attached
	err := s.tx.WithinTx(ctx, func(r repo.Repos) error {
		event, err := r.Events.GetByID(ctx, userID, eventID)
		if err != nil {
			return err
		}
		result, err = attachEvent(ctx, r, userID, event, tripID, day)
		return err
	})
	if err != nil {
		return Attached{}, fmt.Errorf("service.PackingService.AttachEvent: %w", err)
	}
	return result, nil
}

// attachEvent does the work of AttachEvent on repos already bound to a
// transaction. event must carry its items.
func attachEvent(ctx context.Context, r repo.Repos, userID uuid.UUID, event domain.Event, tripID uuid.UUID, day int) (Attached, error) {
	trip, err := r.Trips.GetForUpdate(ctx, userID, tripID)
	if err != nil {
		return Attached{}, err
	}
	if !trip.HasDay(day) {
		return Attached{}, fmt.Errorf("%w: day must be between 1 and %d", domain.ErrValidation, trip.PackingDays)
	}

	used, err := r.Instances.DaysForEvent(ctx, tripID, event.ID)
	if err != nil {
		return Attached{}, err
	}
	if len(availableDays(trip, used)) == 0 {
		return Attached{}, fmt.Errorf("%w: event already added to every day of this trip", domain.ErrConflict)
	}
	if slices.Contains(used, day) {
		return Attached{}, fmt.Errorf("%w: event already added to day %d", domain.ErrConflict, day)
	}

	inst, err := r.Instances.Create(ctx, domain.EventInstance{EventID: event.ID, TripID: tripID, Day: day})
	if err != nil {
		return Attached{}, err
	}

	rows := make([]domain.PackingItem, len(event.Items))
	for i, it := range event.Items {
		rows[i] = domain.PackingItem{
			TripID:          tripID,
			EventInstanceID: &inst.ID,
			Name:            it.Name,
			Category:        it.Category,
			Quantity:        domain.NormalizeQuantity(it.Quantity),
			Day:             day,
		}
	}
	items, err := r.Items.CreateBatch(ctx, rows)
	if err != nil {
		return Attached{}, err
	}
	return Attached{Instance: inst, Items: items}, nil
}

// AvailableDays returns the days of the trip the event is not yet attached
// to, ascending. An empty result means the event is on every day.
func (s *PackingService) AvailableDays(ctx context.Context, userID, eventID, tripID uuid.UUID) ([]int, error) {
	trip, err := s.repos.Trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.PackingService.AvailableDays: %w", err)
	}
	if _, err := s.repos.Events.GetByID(ctx, userID, eventID); err != nil {
		return nil, fmt.Errorf("service.PackingService.AvailableDays: %w", err)
	}
	used, err := s.repos.Instances.DaysForEvent(ctx, tripID, eventID)
	if err != nil {
		return nil, fmt.Errorf("service.PackingService.AvailableDays: %w", err)
	}
	return availableDays(trip, used), nil
}

func availableDays(trip domain.Trip, used []int) []int {
	free := []int{}
	for _, d := range trip.Days() {
		if !slices.Contains(used, d) {
			free = append(free, d)
		}
	}
	return free
}

// DetachEvent removes an event instance from a trip together with the
// packing items that were materialized from it.
func (s *PackingService) DetachEvent(ctx context.Context, userID, tripID, instanceID uuid.UUID) error {
	err := s.tx.WithinTx(ctx, func(r repo.Repos) error {
		if _, err := r.Trips.GetByID(ctx, userID, tripID); err != nil {
			return err
		}
		if _, err := r.Instances.GetByID(ctx, tripID, instanceID); err != nil {
			return err
		}
		if _, err := r.Items.DeleteByInstance(ctx, tripID, instanceID); err != nil {
			return err
		}
		return r.Instances.Delete(ctx, tripID, instanceID)
	})
	if err != nil {
		return fmt.Errorf("service.PackingService.DetachEvent: %w", err)
	}
	return nil
}

// ListInstances returns every event instance of the trip ordered by day.
func (s *PackingService) ListInstances(ctx context.Context, userID, tripID uuid.UUID) ([]domain.EventInstance, error) {
	if _, err := s.repos.Trips.GetByID(ctx, userID, tripID); err != nil {
		return nil, fmt.Errorf("service.PackingService.ListInstances: %w", err)
	}
	instances, err := s.repos.Instances.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.PackingService.ListInstances: %w", err)
	}
	return instances, nil
}
