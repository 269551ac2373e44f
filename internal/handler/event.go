package handler

import (
	"net/http"

	"github.com/pkordes/packrat/internal/domain"
	"github.com/pkordes/packrat/internal/handler/api"
)

const eventNotFound = "event not found"

// ListEvents handles GET /events.
func (s *Server) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.events.List(r.Context(), currentUser(r).ID)
	if err != nil {
		s.writeServiceError(w, r, err, eventNotFound)
		return
	}
	out := make([]api.Event, len(events))
	for i, e := range events {
		out[i] = eventToResponse(e)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetEvent handles GET /events/{eventId}.
func (s *Server) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventId")
	if !ok {
		return
	}
	event, err := s.events.GetByID(r.Context(), currentUser(r).ID, eventID)
	if err != nil {
		s.writeServiceError(w, r, err, eventNotFound)
		return
	}
	writeJSON(w, http.StatusOK, eventToResponse(event))
}

// CreateEvent handles POST /events. An optional attach_to places the new
// event on a trip day in the same transaction.
func (s *Server) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var body api.EventRequest
	if !s.decode(w, r, &body) {
		return
	}
	event := requestToEvent(body)
	event.UserID = currentUser(r).ID

	var attach *domain.Attachment
	if body.AttachTo != nil {
		attach = &domain.Attachment{TripID: body.AttachTo.TripId, Day: body.AttachTo.Day}
	}

	created, err := s.events.Create(r.Context(), event, attach)
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, eventToResponse(created))
}

// UpdateEvent handles PUT /events/{eventId}. The submitted item list replaces
// the stored one: items with an id are updated, new ones inserted and
// missing ones deleted.
func (s *Server) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventId")
	if !ok {
		return
	}
	var body api.EventRequest
	if !s.decode(w, r, &body) {
		return
	}
	if body.AttachTo != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("attach_to is only accepted when creating an event"))
		return
	}
	event := requestToEvent(body)
	event.ID = eventID
	event.UserID = currentUser(r).ID

	updated, err := s.events.Update(r.Context(), event)
	if err != nil {
		s.writeServiceError(w, r, err, eventNotFound)
		return
	}
	writeJSON(w, http.StatusOK, eventToResponse(updated))
}

// DeleteEvent handles DELETE /events/{eventId}.
func (s *Server) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventId")
	if !ok {
		return
	}
	if err := s.events.Delete(r.Context(), currentUser(r).ID, eventID); err != nil {
		s.writeServiceError(w, r, err, eventNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
