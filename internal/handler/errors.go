package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/packrat/internal/domain"
	"github.com/pkordes/packrat/internal/handler/api"
)

// errorBody builds the standard {"error":{"code","message"}} envelope.
func errorBody(code, message string) api.ErrorResponse {
	return api.ErrorResponse{Error: api.ErrorDetail{Code: code, Message: message}}
}

// notFoundBody returns an ErrorResponse for a missing resource.
// The caller supplies the human-readable message (e.g. "trip not found")
// because the handler is the layer that knows what was being looked up.
func notFoundBody(message string) api.ErrorResponse {
	return errorBody("not_found", message)
}

// validationBody returns an ErrorResponse for a domain validation failure.
// The message is extracted from the wrapped domain.ErrValidation error.
func validationBody(err error) api.ErrorResponse {
	return errorBody("validation_error", unwrapMessage(err, domain.ErrValidation))
}

// requestBody returns an ErrorResponse for a bad request rejected before
// reaching the service layer (e.g. missing or malformed body).
func requestBody(message string) api.ErrorResponse {
	return errorBody("validation_error", message)
}

// unwrapMessage extracts the human-readable part that follows a sentinel in a
// wrapped error chain.
// e.g. "service.TripService.Create: validation error: trip name is required" → "trip name is required"
func unwrapMessage(err, sentinel error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return sentinel.Error()
}

// writeServiceError maps a service error onto an HTTP response. notFound is
// the message used for domain.ErrNotFound. Anything that is not a domain
// sentinel is logged and reported as a generic 500.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, notFoundBody(notFound))
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errorBody("conflict", unwrapMessage(err, domain.ErrConflict)))
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized", unwrapMessage(err, domain.ErrUnauthorized)))
	default:
		s.log.ErrorContext(r.Context(), "request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal_error", "internal server error"))
	}
}
