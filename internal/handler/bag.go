package handler

import (
	"net/http"

	"github.com/pkordes/packrat/internal/domain"
	"github.com/pkordes/packrat/internal/handler/api"
)

const bagNotFound = "bag not found"

// ListBags handles GET /trips/{tripId}/bags.
func (s *Server) ListBags(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripPath(w, r)
	if !ok {
		return
	}
	bags, err := s.bags.List(r.Context(), currentUser(r).ID, tripID)
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	out := make([]api.Bag, len(bags))
	for i, b := range bags {
		out[i] = bagToResponse(b)
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateBag handles POST /trips/{tripId}/bags.
func (s *Server) CreateBag(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripPath(w, r)
	if !ok {
		return
	}
	var body api.BagRequest
	if !s.decode(w, r, &body) {
		return
	}
	bag, err := s.bags.Create(r.Context(), currentUser(r).ID, tripID, body.Name)
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, bagToResponse(bag))
}

// DeleteBag handles DELETE /trips/{tripId}/bags/{bagId}.
func (s *Server) DeleteBag(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripPath(w, r)
	if !ok {
		return
	}
	bagID, ok := pathUUID(w, r, "bagId")
	if !ok {
		return
	}
	if err := s.bags.Delete(r.Context(), currentUser(r).ID, tripID, bagID); err != nil {
		s.writeServiceError(w, r, err, bagNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddBagItem handles POST /trips/{tripId}/bags/{bagId}/items.
func (s *Server) AddBagItem(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripPath(w, r)
	if !ok {
		return
	}
	bagID, ok := pathUUID(w, r, "bagId")
	if !ok {
		return
	}
	var body api.BagItemRequest
	if !s.decode(w, r, &body) {
		return
	}
	item, err := s.bags.AddItem(r.Context(), currentUser(r).ID, tripID, bagID, body.Name, domain.Category(body.Category))
	if err != nil {
		s.writeServiceError(w, r, err, bagNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, bagItemToResponse(item))
}

// ToggleBagItem handles POST /trips/{tripId}/bags/{bagId}/items/{itemId}/toggle.
// Unlike packing items, only the one row flips.
func (s *Server) ToggleBagItem(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripPath(w, r)
	if !ok {
		return
	}
	bagID, ok := pathUUID(w, r, "bagId")
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemId")
	if !ok {
		return
	}
	item, err := s.bags.ToggleItem(r.Context(), currentUser(r).ID, tripID, bagID, itemID)
	if err != nil {
		s.writeServiceError(w, r, err, "bag item not found")
		return
	}
	writeJSON(w, http.StatusOK, bagItemToResponse(item))
}

// DeleteBagItem handles DELETE /trips/{tripId}/bags/{bagId}/items/{itemId}.
func (s *Server) DeleteBagItem(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripPath(w, r)
	if !ok {
		return
	}
	bagID, ok := pathUUID(w, r, "bagId")
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemId")
	if !ok {
		return
	}
	if err := s.bags.DeleteItem(r.Context(), currentUser(r).ID, tripID, bagID, itemID); err != nil {
		s.writeServiceError(w, r, err, "bag item not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSummary handles GET /trips/{tripId}/summary: packing list and bag
// contents merged by name and category.
func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripPath(w, r)
	if !ok {
		return
	}
	sum, err := s.summary.Summarize(r.Context(), currentUser(r).ID, tripID)
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, summaryToResponse(sum))
}
