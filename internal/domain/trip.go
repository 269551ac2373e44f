// Package domain contains the core data types for the Pack Rat API, together
// with the pure list algorithms (reconciliation, day grouping, summaries) that
// operate on them. It depends only on uuid and is imported by every other
// internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxPackingDays caps a trip's packing schedule.
const MaxPackingDays = 365

// Trip is a user's planned journey. PackingDays is the number of per-day
// packing lists the trip has; every packing item and event instance belonging
// to the trip sits on a day in 1..PackingDays.
type Trip struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Origin      string
	Destination string
	StartDate   time.Time
	EndDate     *time.Time // nil when the trip has no fixed end
	PackingDays int
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasDay reports whether day lies within the trip's packing days.
func (t Trip) HasDay(day int) bool {
	return day >= 1 && day <= t.PackingDays
}

// Days returns 1..PackingDays in order.
func (t Trip) Days() []int {
	days := make([]int, 0, t.PackingDays)
	for d := 1; d <= t.PackingDays; d++ {
		days = append(days, d)
	}
	return days
}
