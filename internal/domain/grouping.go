package domain

import "github.com/google/uuid"

// InstanceTemplate is an event instance present on a day together with the
// item names of its event's template.
type InstanceTemplate struct {
	Instance  EventInstance
	ItemNames []string
}

// ItemGroup is the bucket of a day's packing items credited to one event instance.
type ItemGroup struct {
	Instance EventInstance
	Items    []PackingItem
}

// DayView is one day of a trip: its items split by event, plus the remainder.
type DayView struct {
	Day    int
	Groups []ItemGroup
	Other  []PackingItem
}

// GroupDayItems partitions a day's packing items into one bucket per event
// instance (in the order given) and an Other bucket.
//
// An item materialized from an instance on this day goes to that instance's
// bucket. Any other item goes to the first bucket whose template contains its
// name (compared with NormalizeText). Each item lands in exactly one bucket,
// and items keep their input order within a bucket.
func GroupDayItems(day int, templates []InstanceTemplate, items []PackingItem) DayView {
	view := DayView{
		Day:    day,
		Groups: make([]ItemGroup, len(templates)),
		Other:  []PackingItem{},
	}

	byInstance := make(map[uuid.UUID]int, len(templates))
	names := make([]map[string]bool, len(templates))
	for i, tpl := range templates {
		view.Groups[i] = ItemGroup{Instance: tpl.Instance, Items: []PackingItem{}}
		byInstance[tpl.Instance.ID] = i
		set := make(map[string]bool, len(tpl.ItemNames))
		for _, n := range tpl.ItemNames {
			set[NormalizeText(n)] = true
		}
		names[i] = set
	}

	for _, item := range items {
		if idx, ok := bucketFor(item, byInstance, names); ok {
			view.Groups[idx].Items = append(view.Groups[idx].Items, item)
			continue
		}
		view.Other = append(view.Other, item)
	}
	return view
}

func bucketFor(item PackingItem, byInstance map[uuid.UUID]int, names []map[string]bool) (int, bool) {
	if item.EventInstanceID != nil {
		if idx, ok := byInstance[*item.EventInstanceID]; ok {
			return idx, true
		}
	}
	name := NormalizeText(item.Name)
	for i, set := range names {
		if set[name] {
			return i, true
		}
	}
	return 0, false
}
