package handler

import (
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/packrat/internal/domain"
	"github.com/pkordes/packrat/internal/handler/api"
)

// --- mapping helpers --------------------------------------------------------

func userToResponse(u domain.User) api.User {
	return api.User{Id: u.ID, Email: u.Email, DisplayName: u.DisplayName, CreatedAt: u.CreatedAt}
}

// tripToResponse converts a domain.Trip into the api.Trip contract type.
func tripToResponse(t domain.Trip) api.Trip {
	resp := api.Trip{
		Id:          t.ID,
		Name:        t.Name,
		Origin:      t.Origin,
		Destination: t.Destination,
		StartDate:   openapi_types.Date{Time: t.StartDate},
		PackingDays: t.PackingDays,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Notes != "" {
		resp.Notes = &t.Notes
	}
	if t.EndDate != nil {
		ed := openapi_types.Date{Time: *t.EndDate}
		resp.EndDate = &ed
	}
	return resp
}

func packingItemToResponse(it domain.PackingItem) api.PackingItem {
	return api.PackingItem{
		Id:              it.ID,
		TripId:          it.TripID,
		EventInstanceId: it.EventInstanceID,
		Name:            it.Name,
		Category:        string(it.Category),
		Quantity:        it.Quantity,
		Day:             it.Day,
		IsPacked:        it.IsPacked,
		CreatedAt:       it.CreatedAt,
	}
}

func packingItemsToResponse(items []domain.PackingItem) []api.PackingItem {
	out := make([]api.PackingItem, len(items))
	for i, it := range items {
		out[i] = packingItemToResponse(it)
	}
	return out
}

func instanceToResponse(in domain.EventInstance) api.EventInstance {
	return api.EventInstance{
		Id:        in.ID,
		EventId:   in.EventID,
		EventName: in.EventName,
		Day:       in.Day,
		CreatedAt: in.CreatedAt,
	}
}

func dayViewToResponse(v domain.DayView) api.DayView {
	groups := make([]api.ItemGroup, len(v.Groups))
	for i, g := range v.Groups {
		groups[i] = api.ItemGroup{Instance: instanceToResponse(g.Instance), Items: packingItemsToResponse(g.Items)}
	}
	return api.DayView{Day: v.Day, Groups: groups, Other: packingItemsToResponse(v.Other)}
}

func eventToResponse(e domain.Event) api.Event {
	items := make([]api.EventItem, len(e.Items))
	for i, it := range e.Items {
		id := it.ID
		items[i] = api.EventItem{Id: &id, Name: it.Name, Category: string(it.Category), Quantity: it.Quantity}
	}
	return api.Event{
		Id:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Items:       items,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// requestToEvent converts an event body. Category strings are left for the
// service to parse so unknown values surface as validation errors there.
func requestToEvent(body api.EventRequest) domain.Event {
	e := domain.Event{Name: body.Name, Description: body.Description, Items: make([]domain.EventItem, len(body.Items))}
	for i, it := range body.Items {
		item := domain.EventItem{Name: it.Name, Category: domain.Category(it.Category), Quantity: it.Quantity}
		if it.Id != nil {
			item.ID = *it.Id
		}
		e.Items[i] = item
	}
	return e
}

func bagToResponse(b domain.Bag) api.Bag {
	items := make([]api.BagItem, len(b.Items))
	for i, it := range b.Items {
		items[i] = bagItemToResponse(it)
	}
	return api.Bag{Id: b.ID, Name: b.Name, Items: items, CreatedAt: b.CreatedAt}
}

func bagItemToResponse(it domain.BagItem) api.BagItem {
	return api.BagItem{Id: it.ID, Name: it.Name, Category: string(it.Category), Packed: it.Packed}
}

func summaryToResponse(sum domain.TripSummary) api.Summary {
	cats := make([]api.SummaryCategory, len(sum.Categories))
	for i, c := range sum.Categories {
		entries := make([]api.SummaryEntry, len(c.Entries))
		for j, e := range c.Entries {
			entries[j] = api.SummaryEntry{
				Name:          e.Name,
				Category:      string(e.Category),
				Count:         e.Count,
				Packed:        e.Packed,
				OnPackingList: e.OnPackingList,
				Bags:          e.Bags,
			}
		}
		cats[i] = api.SummaryCategory{Category: string(c.Category), Entries: entries}
	}
	return api.Summary{TotalItems: sum.TotalItems, PackedItems: sum.PackedItems, Categories: cats}
}
