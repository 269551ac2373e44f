package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkordes/packrat/internal/auth"
)

// SessionResolver turns a bearer token into the session it belongs to.
// service.AuthService satisfies it.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (auth.Session, error)
}

// NewAuthenticator returns a middleware that requires a valid
// "Authorization: Bearer <token>" header. The resolved session is stored on
// the request context for handlers to read with auth.SessionFrom.
func NewAuthenticator(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
				return
			}
			sess, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", "session is invalid or has expired")
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), sess)))
		})
	}
}

// bearerToken extracts the token from the Authorization header. EventSource
// cannot set headers, so an access_token query parameter is accepted as well.
func bearerToken(r *http.Request) (string, bool) {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, found := strings.Cut(h, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return "", false
		}
		return strings.TrimSpace(token), true
	}
	if token := r.URL.Query().Get("access_token"); token != "" {
		return token, true
	}
	return "", false
}

// writeError writes the API's standard error envelope.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
