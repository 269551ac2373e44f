package domain

import (
	"time"

	"github.com/google/uuid"
)

// PackingItem is a concrete checklist row on one day of a trip.
// EventInstanceID is set when the row was materialized from an event template
// and is nil for items added by hand.
type PackingItem struct {
	ID              uuid.UUID
	TripID          uuid.UUID
	EventInstanceID *uuid.UUID
	Name            string
	Category        Category
	Quantity        int
	Day             int
	IsPacked        bool
	CreatedAt       time.Time
}

// ToggleResult reports the outcome of flipping an item's packed state, which
// applies to every item of the trip sharing the item's name.
type ToggleResult struct {
	Name     string
	IsPacked bool
	Affected int64
}

// ExportRow is one line of the printable packing list.
// Event is the name of the event the item was materialized from, or "".
type ExportRow struct {
	Day      int
	Name     string
	Category Category
	Quantity int
	Packed   bool
	Event    string
}
