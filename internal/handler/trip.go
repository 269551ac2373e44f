package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/packrat/internal/domain"
	"github.com/pkordes/packrat/internal/handler/api"
)

const tripNotFound = "trip not found"

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body api.TripRequest
	if !s.decode(w, r, &body) {
		return
	}

	created, err := s.trips.Create(r.Context(), requestToTrip(currentUser(r).ID, uuid.Nil, body))
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips, newest first.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	page, ok := queryInt(w, r, "page")
	if !ok {
		return
	}
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}
	params := domain.NewPaginationParams(page, limit)

	result, err := s.trips.List(r.Context(), currentUser(r).ID, params)
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}

	data := make([]api.Trip, len(result.Items))
	for i, t := range result.Items {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, api.TripList{
		Data: data,
		Pagination: api.Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(result.Total),
		},
	})
}

// GetTrip handles GET /trips/{tripId}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripPath(w, r)
	if !ok {
		return
	}
	trip, err := s.trips.GetByID(r.Context(), currentUser(r).ID, tripID)
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /trips/{tripId}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripPath(w, r)
	if !ok {
		return
	}
	var body api.TripRequest
	if !s.decode(w, r, &body) {
		return
	}

	updated, err := s.trips.Update(r.Context(), requestToTrip(currentUser(r).ID, tripID, body))
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{tripId}. Items, instances and bags go
// with it.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripPath(w, r)
	if !ok {
		return
	}
	if err := s.trips.Delete(r.Context(), currentUser(r).ID, tripID); err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddDay handles POST /trips/{tripId}/days.
func (s *Server) AddDay(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripPath(w, r)
	if !ok {
		return
	}
	trip, err := s.trips.AddDay(r.Context(), currentUser(r).ID, tripID)
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// requestToTrip converts a trip body into a domain.Trip owned by userID.
func requestToTrip(userID, id uuid.UUID, body api.TripRequest) domain.Trip {
	t := domain.Trip{
		ID:          id,
		UserID:      userID,
		Name:        body.Name,
		Origin:      body.Origin,
		Destination: body.Destination,
		StartDate:   body.StartDate.Time,
		PackingDays: body.PackingDays,
	}
	if body.EndDate != nil {
		ed := body.EndDate.Time
		t.EndDate = &ed
	}
	if body.Notes != nil {
		t.Notes = *body.Notes
	}
	return t
}
