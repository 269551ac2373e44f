package domain

import (
	"time"

	"github.com/google/uuid"
)

// Bag is a checklist container that belongs to a trip but not to any day.
type Bag struct {
	ID        uuid.UUID
	TripID    uuid.UUID
	UserID    uuid.UUID
	Name      string
	Items     []BagItem
	CreatedAt time.Time
}

// BagItem is one row of a bag's checklist. Unlike packing items, its packed
// state is tracked per row.
type BagItem struct {
	ID        uuid.UUID
	BagID     uuid.UUID
	Name      string
	Category  Category
	Packed    bool
	CreatedAt time.Time
}
