package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/packrat/internal/handler/api"
)

// pathUUID binds a {name} path segment as a UUID. On failure it writes a 422
// naming the parameter and returns false.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

// pathInt binds a {name} path segment as an integer.
func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	var n int
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &n,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid "+name))
		return 0, false
	}
	return n, true
}

// queryInt binds an optional integer query parameter; absent yields nil.
func queryInt(w http.ResponseWriter, r *http.Request, name string) (*int, bool) {
	var n *int
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &n); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid "+name))
		return nil, false
	}
	return n, true
}

// tripPath binds {tripId}, the prefix of every trip-scoped route.
func tripPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	return pathUUID(w, r, "tripId")
}

func exportFormat(w http.ResponseWriter, r *http.Request) (api.ExportFormat, bool) {
	var f *api.ExportFormat
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &f); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid format"))
		return "", false
	}
	if f == nil {
		return api.Json, true
	}
	switch *f {
	case api.Csv, api.Json:
		return *f, true
	}
	writeJSON(w, http.StatusUnprocessableEntity, requestBody(`format must be "csv" or "json"`))
	return "", false
}
