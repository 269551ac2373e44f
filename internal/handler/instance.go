package handler

import (
	"net/http"

	"github.com/pkordes/packrat/internal/handler/api"
)

// ListInstances handles GET /trips/{tripId}/instances.
func (s *Server) ListInstances(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripPath(w, r)
	if !ok {
		return
	}
	instances, err := s.packing.ListInstances(r.Context(), currentUser(r).ID, tripID)
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	out := make([]api.EventInstance, len(instances))
	for i, in := range instances {
		out[i] = instanceToResponse(in)
	}
	writeJSON(w, http.StatusOK, out)
}

// AttachEvent handles POST /trips/{tripId}/instances: the event's template
// items are copied onto the chosen day.
func (s *Server) AttachEvent(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripPath(w, r)
	if !ok {
		return
	}
	var body api.AttachRequest
	if !s.decode(w, r, &body) {
		return
	}
	res, err := s.packing.AttachEvent(r.Context(), currentUser(r).ID, body.EventId, tripID, body.Day)
	if err != nil {
		s.writeServiceError(w, r, err, "trip or event not found")
		return
	}
	writeJSON(w, http.StatusCreated, api.AttachResponse{
		Instance: instanceToResponse(res.Instance),
		Items:    packingItemsToResponse(res.Items),
	})
}

// DetachEvent handles DELETE /trips/{tripId}/instances/{instanceId}.
func (s *Server) DetachEvent(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripPath(w, r)
	if !ok {
		return
	}
	instanceID, ok := pathUUID(w, r, "instanceId")
	if !ok {
		return
	}
	if err := s.packing.DetachEvent(r.Context(), currentUser(r).ID, tripID, instanceID); err != nil {
		s.writeServiceError(w, r, err, "event instance not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetAvailableDays handles GET /trips/{tripId}/events/{eventId}/available-days.
func (s *Server) GetAvailableDays(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripPath(w, r)
	if !ok {
		return
	}
	eventID, ok := pathUUID(w, r, "eventId")
	if !ok {
		return
	}
	days, err := s.packing.AvailableDays(r.Context(), currentUser(r).ID, eventID, tripID)
	if err != nil {
		s.writeServiceError(w, r, err, "trip or event not found")
		return
	}
	writeJSON(w, http.StatusOK, api.AvailableDays{Days: days})
}
