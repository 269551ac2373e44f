package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/packrat/internal/domain"
	"github.com/pkordes/packrat/internal/repo"
)

// DayView returns one day of a trip with its items grouped by event.
func (s *PackingService) DayView(ctx context.Context, userID, tripID uuid.UUID, day int) (domain.DayView, error) {
	trip, err := s.repos.Trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return domain.DayView{}, fmt.Errorf("service.PackingService.DayView: %w", err)
	}
	if !trip.HasDay(day) {
		return domain.DayView{}, fmt.Errorf("service.PackingService.DayView: %w", dayOutOfRange(trip))
	}

	templates, err := s.repos.Instances.Templates(ctx, tripID, day)
	if err != nil {
		return domain.DayView{}, fmt.Errorf("service.PackingService.DayView: %w", err)
	}
	items, err := s.repos.Items.List(ctx, tripID, &day)
	if err != nil {
		return domain.DayView{}, fmt.Errorf("service.PackingService.DayView: %w", err)
	}
	return domain.GroupDayItems(day, templates, items), nil
}

// TripDays returns the grouped view of every day of a trip, in day order.
func (s *PackingService) TripDays(ctx context.Context, userID, tripID uuid.UUID) ([]domain.DayView, error) {
	trip, err := s.repos.Trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.PackingService.TripDays: %w", err)
	}
	items, err := s.repos.Items.List(ctx, tripID, nil)
	if err != nil {
		return nil, fmt.Errorf("service.PackingService.TripDays: %w", err)
	}
	byDay := make(map[int][]domain.PackingItem, trip.PackingDays)
	for _, it := range items {
		byDay[it.Day] = append(byDay[it.Day], it)
	}

	views := make([]domain.DayView, 0, trip.PackingDays)
	for _, day := range trip.Days() {
		templates, err := s.repos.Instances.Templates(ctx, tripID, day)
		if err != nil {
			return nil, fmt.Errorf("service.PackingService.TripDays: day %d: %w", day, err)
		}
		views = append(views, domain.GroupDayItems(day, templates, byDay[day]))
	}
	return views, nil
}

// DeleteDay removes day N of a trip and closes the gap: items and event
// instances on N are deleted, everything on a later day moves down by one,
// and the trip loses one packing day. The last remaining day cannot be deleted.
func (s *PackingService) DeleteDay(ctx context.Context, userID, tripID uuid.UUID, day int) (domain.Trip, error) {
	var result domain.Trip
	err := s.tx.WithinTx(ctx, func(r repo.Repos) error {
		trip, err := r.Trips.GetForUpdate(ctx, userID, tripID)
		if err != nil {
			return err
		}
		if !trip.HasDay(day) {
			return dayOutOfRange(trip)
		}
		if trip.PackingDays == 1 {
			return fmt.Errorf("%w: a trip must keep at least one day", domain.ErrValidation)
		}

		if _, err := r.Items.DeleteByDay(ctx, tripID, day); err != nil {
			return err
		}
		if _, err := r.Instances.DeleteByDay(ctx, tripID, day); err != nil {
			return err
		}
		if _, err := r.Items.ShiftDaysAfter(ctx, tripID, day); err != nil {
			return err
		}
		if _, err := r.Instances.ShiftDaysAfter(ctx, tripID, day); err != nil {
			return err
		}
		result, err = r.Trips.AdjustPackingDays(ctx, tripID, -1)
		return err
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.PackingService.DeleteDay: %w", err)
	}
	return result, nil
}
