package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/packrat/internal/middleware"
)

// RouterConfig carries the HTTP-level settings of NewRouter.
type RouterConfig struct {
	Logger       *slog.Logger
	CORSOrigins  []string
	MaxBodyBytes int64
}

// NewRouter mounts every API route on a chi router.
// Middleware is applied in order: RequestID → RealIP → SlogLogger → Recoverer →
// CORS → MaxBodySize. RequestID generates a trace ID per request, RealIP
// honours X-Forwarded-For behind a proxy and Recoverer turns panics into 500s.
// Routes other than health, docs, categories and the sign-in flows require a
// bearer token.
func NewRouter(s *Server, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	if cfg.MaxBodyBytes > 0 {
		r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	}

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/categories", s.ListCategories)

	r.Post("/auth/signup", s.SignUp)
	r.Post("/auth/signin", s.SignIn)
	r.Post("/auth/password-reset", s.RequestPasswordReset)
	r.Post("/auth/password-reset/confirm", s.ConfirmPasswordReset)

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthenticator(s.auth))

		r.Post("/auth/signout", s.SignOut)
		r.Get("/auth/session", s.GetSession)
		r.Put("/auth/profile", s.UpdateProfile)
		r.Put("/auth/email", s.UpdateEmail)
		r.Put("/auth/password", s.UpdatePassword)

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)

			r.Route("/{tripId}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Put("/", s.UpdateTrip)
				r.Delete("/", s.DeleteTrip)

				r.Get("/days", s.ListDays)
				r.Post("/days", s.AddDay)
				r.Get("/days/{day}", s.GetDay)
				r.Delete("/days/{day}", s.DeleteDay)

				r.Get("/items", s.ListItems)
				r.Post("/items", s.CreateItem)
				r.Put("/items/{itemId}", s.UpdateItem)
				r.Delete("/items/{itemId}", s.DeleteItem)
				r.Post("/items/{itemId}/toggle", s.ToggleItem)

				r.Get("/instances", s.ListInstances)
				r.Post("/instances", s.AttachEvent)
				r.Delete("/instances/{instanceId}", s.DetachEvent)
				r.Get("/events/{eventId}/available-days", s.GetAvailableDays)

				r.Get("/summary", s.GetSummary)
				r.Get("/export", s.GetExport)
				r.Get("/changes", s.StreamChanges)

				r.Get("/bags", s.ListBags)
				r.Post("/bags", s.CreateBag)
				r.Delete("/bags/{bagId}", s.DeleteBag)
				r.Post("/bags/{bagId}/items", s.AddBagItem)
				r.Post("/bags/{bagId}/items/{itemId}/toggle", s.ToggleBagItem)
				r.Delete("/bags/{bagId}/items/{itemId}", s.DeleteBagItem)
			})
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", s.ListEvents)
			r.Post("/", s.CreateEvent)
			r.Get("/{eventId}", s.GetEvent)
			r.Put("/{eventId}", s.UpdateEvent)
			r.Delete("/{eventId}", s.DeleteEvent)
		})
	})

	return r
}
