package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/packrat/internal/domain"
	"github.com/pkordes/packrat/internal/repo"
)

// EventService manages the user's catalogue of reusable event templates.
type EventService struct {
	events repo.EventRepo
	tx     repo.TxManager
}

// NewEventService constructs an EventService.
func NewEventService(events repo.EventRepo, tx repo.TxManager) *EventService {
	return &EventService{events: events, tx: tx}
}

// List returns the user's events ordered by name, each with its items.
func (s *EventService) List(ctx context.Context, userID uuid.UUID) ([]domain.Event, error) {
	events, err := s.events.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.EventService.List: %w", err)
	}
	if events == nil {
		return []domain.Event{}, nil
	}
	return events, nil
}

func (s *EventService) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Event, error) {
	event, err := s.events.GetByID(ctx, userID, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.GetByID: %w", err)
	}
	return event, nil
}

// Create persists a new event and its items in one transaction. When attach
// is non-nil the event is also attached to that trip day, with the same
// rules as PackingService.AttachEvent, before the transaction commits.
func (s *EventService) Create(ctx context.Context, event domain.Event, attach *domain.Attachment) (domain.Event, error) {
	event, err := normalizeEvent(event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Create: %w", err)
	}

	var result domain.Event
	err = s.tx.WithinTx(ctx, func(r repo.Repos) error {
		created, err := r.Events.Create(ctx, event)
		if err != nil {
			return err
		}
		created.Items, err = r.Events.InsertItems(ctx, created.ID, event.Items)
		if err != nil {
			return err
		}
		if attach != nil {
			if _, err := attachEvent(ctx, r, event.UserID, created, attach.TripID, attach.Day); err != nil {
				return err
			}
		}
		result = created
		return nil
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Create: %w", err)
	}
	return result, nil
}

// Update overwrites name and description and reconciles the submitted item
// list against the persisted one: id-less items are inserted, known ids are
// updated, and persisted items missing from the submission are deleted.
func (s *EventService) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	event, err := normalizeEvent(event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Update: %w", err)
	}

	var result domain.Event
	err = s.tx.WithinTx(ctx, func(r repo.Repos) error {
		current, err := r.Events.GetByID(ctx, event.UserID, event.ID)
		if err != nil {
			return err
		}
		existing := make([]uuid.UUID, len(current.Items))
		for i, it := range current.Items {
			existing[i] = it.ID
		}
		plan, err := domain.ReconcileItems(existing, event.Items)
		if err != nil {
			return err
		}

		result, err = r.Events.Update(ctx, event)
		if err != nil {
			return err
		}
		if err := r.Events.DeleteItems(ctx, event.ID, plan.Delete); err != nil {
			return err
		}
		if err := r.Events.UpdateItems(ctx, event.ID, plan.Update); err != nil {
			return err
		}
		if _, err := r.Events.InsertItems(ctx, event.ID, plan.Insert); err != nil {
			return err
		}
		result.Items, err = r.Events.ListItems(ctx, event.ID)
		return err
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Update: %w", err)
	}
	return result, nil
}

// Delete removes an event. Its instances go with it; packing items that were
// materialized from those instances stay on the list as ungrouped items.
func (s *EventService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.events.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("service.EventService.Delete: %w", err)
	}
	return nil
}

func normalizeEvent(e domain.Event) (domain.Event, error) {
	e.Name = domain.NormalizeText(e.Name)
	e.Description = domain.NormalizeText(e.Description)
	if e.Name == "" {
		return domain.Event{}, fmt.Errorf("%w: event name is required", domain.ErrValidation)
	}

	items := make([]domain.EventItem, len(e.Items))
	for i, it := range e.Items {
		var err error
		if it.Name, err = requireName("item name", it.Name); err != nil {
			return domain.Event{}, err
		}
		if it.Category, err = domain.ParseCategory(string(it.Category)); err != nil {
			return domain.Event{}, err
		}
		it.Quantity = domain.NormalizeQuantity(it.Quantity)
		items[i] = it
	}
	e.Items = items
	return e, nil
}
