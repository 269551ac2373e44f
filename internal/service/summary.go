package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/packrat/internal/domain"
	"github.com/pkordes/packrat/internal/repo"
)

// SummaryService builds the consolidated, trip-wide packing summary.
type SummaryService struct {
	trips repo.TripRepo
	items repo.PackingItemRepo
	bags  repo.BagRepo
}

// NewSummaryService constructs a SummaryService.
func NewSummaryService(trips repo.TripRepo, items repo.PackingItemRepo, bags repo.BagRepo) *SummaryService {
	return &SummaryService{trips: trips, items: items, bags: bags}
}

// Summarize merges the trip's packing items and bag items into one list
// grouped by category.
func (s *SummaryService) Summarize(ctx context.Context, userID, tripID uuid.UUID) (domain.TripSummary, error) {
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return domain.TripSummary{}, fmt.Errorf("service.SummaryService.Summarize: %w", err)
	}
	items, err := s.items.List(ctx, tripID, nil)
	if err != nil {
		return domain.TripSummary{}, fmt.Errorf("service.SummaryService.Summarize: %w", err)
	}
	bags, err := s.bags.List(ctx, tripID)
	if err != nil {
		return domain.TripSummary{}, fmt.Errorf("service.SummaryService.Summarize: %w", err)
	}
	return domain.Summarize(items, bags), nil
}
