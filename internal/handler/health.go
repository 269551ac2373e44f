package handler

import (
	"net/http"

	"github.com/pkordes/packrat/internal/domain"
	"github.com/pkordes/packrat/internal/handler/api"
	"github.com/pkordes/packrat/openapi"
)

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, api.HealthResponse{Status: "ok"})
}

// GetOpenAPI handles GET /openapi.yaml by serving the embedded document.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openapi.Document)
}

// ListCategories handles GET /categories.
func (s *Server) ListCategories(w http.ResponseWriter, _ *http.Request) {
	out := make([]string, len(domain.Categories))
	for i, c := range domain.Categories {
		out[i] = string(c)
	}
	writeJSON(w, http.StatusOK, out)
}
