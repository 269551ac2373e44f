package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event is a reusable, named template of things to pack (e.g. "beach day").
// Name is stored trimmed and lower-cased so catalogue lookups are case-insensitive.
type Event struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description string
	Items       []EventItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EventItem is one template line of an Event. Quantity is always at least 1.
// A zero ID marks an item that has not been persisted yet.
type EventItem struct {
	ID       uuid.UUID
	EventID  uuid.UUID
	Name     string
	Category Category
	Quantity int
}

// EventInstance binds an Event to one day of one Trip.
// EventName is populated by list queries for display and is not persisted.
type EventInstance struct {
	ID        uuid.UUID
	EventID   uuid.UUID
	TripID    uuid.UUID
	EventName string
	Day       int
	CreatedAt time.Time
}

// Attachment names the trip day a newly created event should be attached to.
type Attachment struct {
	TripID uuid.UUID
	Day    int
}

// NormalizeText trims and lower-cases s. Trip text fields and event names and
// descriptions are stored in this form; item names are compared in it.
func NormalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeQuantity returns q, or 1 when q is absent or not positive.
func NormalizeQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}
