package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// sseKeepAlive is how often an idle change stream sends a comment line so
// proxies do not close it.
var sseKeepAlive = 25 * time.Second

// StreamChanges handles GET /trips/{tripId}/changes as a Server-Sent Events
// stream. Each write to the trip's items, instances or bags produces one
// "change" event; clients re-fetch what they display.
func (s *Server) StreamChanges(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripPath(w, r)
	if !ok {
		return
	}
	// Ownership check before subscribing.
	if _, err := s.trips.GetByID(r.Context(), currentUser(r).ID, tripID); err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorBody("internal_error", "streaming unsupported"))
		return
	}

	changes, cancel := s.changes.Subscribe(tripID)
	defer cancel()

	// The write deadline set on the server does not suit a long-lived stream.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	ticker := time.NewTicker(sseKeepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		case c, open := <-changes:
			if !open {
				return
			}
			data, err := json.Marshal(c)
			if err != nil {
				s.log.ErrorContext(r.Context(), "encode change", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: change\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}
