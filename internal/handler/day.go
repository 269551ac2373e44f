package handler

import (
	"net/http"

	"github.com/pkordes/packrat/internal/handler/api"
)

// ListDays handles GET /trips/{tripId}/days: every day's grouped packing list.
func (s *Server) ListDays(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripPath(w, r)
	if !ok {
		return
	}
	views, err := s.packing.TripDays(r.Context(), currentUser(r).ID, tripID)
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	out := make([]api.DayView, len(views))
	for i, v := range views {
		out[i] = dayViewToResponse(v)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetDay handles GET /trips/{tripId}/days/{day}.
func (s *Server) GetDay(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripPath(w, r)
	if !ok {
		return
	}
	day, ok := pathInt(w, r, "day")
	if !ok {
		return
	}
	view, err := s.packing.DayView(r.Context(), currentUser(r).ID, tripID, day)
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, dayViewToResponse(view))
}

// DeleteDay handles DELETE /trips/{tripId}/days/{day}. Later days move down
// by one; the updated trip is returned.
func (s *Server) DeleteDay(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripPath(w, r)
	if !ok {
		return
	}
	day, ok := pathInt(w, r, "day")
	if !ok {
		return
	}
	trip, err := s.packing.DeleteDay(r.Context(), currentUser(r).ID, tripID, day)
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}
