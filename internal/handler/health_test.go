package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/packrat/internal/handler"
	"github.com/pkordes/packrat/internal/handler/api"
)

// TestGetHealth_returns200WithOKStatus verifies that GET /healthz returns
// HTTP 200 and {"status":"ok"} without any credentials.
func TestGetHealth_returns200WithOKStatus(t *testing.T) {
	h := newHTTPHandler(handler.Services{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody[api.HealthResponse](t, rec).Status)
}

func TestGetOpenAPI(t *testing.T) {
	h := newHTTPHandler(handler.Services{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "yaml")
	assert.Contains(t, rec.Body.String(), "Pack Rat API")
}

func TestListCategories(t *testing.T) {
	h := newHTTPHandler(handler.Services{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	cats := decodeBody[[]string](t, rec)
	require.Len(t, cats, 11)
	assert.Equal(t, "Accessories", cats[0])
	assert.Equal(t, "Other", cats[len(cats)-1])
}

func TestProtectedRoute_RequiresToken(t *testing.T) {
	h := newHTTPHandler(handler.Services{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/trips", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", errorCode(t, rec).Code)
}
