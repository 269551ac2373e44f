package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// ItemPlan is the set of writes needed to turn an event's persisted items into
// the submitted list.
type ItemPlan struct {
	Insert []EventItem
	Update []EventItem
	Delete []uuid.UUID
}

// Empty reports whether the plan contains no writes.
func (p ItemPlan) Empty() bool {
	return len(p.Insert) == 0 && len(p.Update) == 0 && len(p.Delete) == 0
}

// ReconcileItems diffs the submitted items of an event form against the IDs
// already persisted for that event:
//   - items without an ID are inserted,
//   - items whose ID is in existing are updated,
//   - IDs in existing that were not submitted are deleted (in existing order).
//
// A submitted ID that is not in existing, or that appears twice, is an
// ErrValidation: it would otherwise update another event's row.
func ReconcileItems(existing []uuid.UUID, submitted []EventItem) (ItemPlan, error) {
	known := make(map[uuid.UUID]bool, len(existing))
	for _, id := range existing {
		known[id] = true
	}

	plan := ItemPlan{}
	seen := make(map[uuid.UUID]bool, len(submitted))
	for _, item := range submitted {
		if item.ID == uuid.Nil {
			plan.Insert = append(plan.Insert, item)
			continue
		}
		if !known[item.ID] {
			return ItemPlan{}, fmt.Errorf("%w: item %s does not belong to this event", ErrValidation, item.ID)
		}
		if seen[item.ID] {
			return ItemPlan{}, fmt.Errorf("%w: item %s submitted twice", ErrValidation, item.ID)
		}
		seen[item.ID] = true
		plan.Update = append(plan.Update, item)
	}

	for _, id := range existing {
		if !seen[id] {
			plan.Delete = append(plan.Delete, id)
		}
	}
	return plan, nil
}
