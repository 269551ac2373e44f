package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/packrat/internal/domain"
	"github.com/pkordes/packrat/internal/handler/api"
)

const itemNotFound = "packing item not found"

// ListItems handles GET /trips/{tripId}/items, optionally filtered by ?day=.
func (s *Server) ListItems(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripPath(w, r)
	if !ok {
		return
	}
	day, ok := queryInt(w, r, "day")
	if !ok {
		return
	}
	items, err := s.packing.ListItems(r.Context(), currentUser(r).ID, tripID, day)
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, packingItemsToResponse(items))
}

// CreateItem handles POST /trips/{tripId}/items.
func (s *Server) CreateItem(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripPath(w, r)
	if !ok {
		return
	}
	var body api.PackingItemRequest
	if !s.decode(w, r, &body) {
		return
	}
	item, err := s.packing.AddItem(r.Context(), currentUser(r).ID, requestToItem(tripID, uuid.Nil, body))
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, packingItemToResponse(item))
}

// UpdateItem handles PUT /trips/{tripId}/items/{itemId}. The packed flag is
// changed through the toggle route only.
func (s *Server) UpdateItem(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripPath(w, r)
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemId")
	if !ok {
		return
	}
	var body api.PackingItemRequest
	if !s.decode(w, r, &body) {
		return
	}
	item, err := s.packing.UpdateItem(r.Context(), currentUser(r).ID, requestToItem(tripID, itemID, body))
	if err != nil {
		s.writeServiceError(w, r, err, itemNotFound)
		return
	}
	writeJSON(w, http.StatusOK, packingItemToResponse(item))
}

// DeleteItem handles DELETE /trips/{tripId}/items/{itemId}.
func (s *Server) DeleteItem(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripPath(w, r)
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemId")
	if !ok {
		return
	}
	if err := s.packing.DeleteItem(r.Context(), currentUser(r).ID, tripID, itemID); err != nil {
		s.writeServiceError(w, r, err, itemNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleItem handles POST /trips/{tripId}/items/{itemId}/toggle. The new
// state is applied to every item of the trip sharing the item's name.
func (s *Server) ToggleItem(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripPath(w, r)
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemId")
	if !ok {
		return
	}
	res, err := s.packing.TogglePacked(r.Context(), currentUser(r).ID, tripID, itemID)
	if err != nil {
		s.writeServiceError(w, r, err, itemNotFound)
		return
	}
	writeJSON(w, http.StatusOK, api.ToggleResponse{Name: res.Name, IsPacked: res.IsPacked, Affected: res.Affected})
}

func requestToItem(tripID, id uuid.UUID, body api.PackingItemRequest) domain.PackingItem {
	return domain.PackingItem{
		ID:       id,
		TripID:   tripID,
		Name:     body.Name,
		Category: domain.Category(body.Category),
		Quantity: body.Quantity,
		Day:      body.Day,
	}
}
