// Package handler implements the HTTP handlers for the Pack Rat API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (trip.go, packing.go, event.go, etc.) but share the same Server struct
// so they can access its dependencies. Request and response bodies are the
// types in handler/api.
package handler

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pkordes/packrat/internal/auth"
	"github.com/pkordes/packrat/internal/domain"
	"github.com/pkordes/packrat/internal/notify"
	"github.com/pkordes/packrat/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	AddDay(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)
}

// PackingServicer covers packing items, day views and event attachment.
type PackingServicer interface {
	ListItems(ctx context.Context, userID, tripID uuid.UUID, day *int) ([]domain.PackingItem, error)
	AddItem(ctx context.Context, userID uuid.UUID, item domain.PackingItem) (domain.PackingItem, error)
	UpdateItem(ctx context.Context, userID uuid.UUID, item domain.PackingItem) (domain.PackingItem, error)
	DeleteItem(ctx context.Context, userID, tripID, itemID uuid.UUID) error
	TogglePacked(ctx context.Context, userID, tripID, itemID uuid.UUID) (domain.ToggleResult, error)
	Export(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ExportRow, error)

	DayView(ctx context.Context, userID, tripID uuid.UUID, day int) (domain.DayView, error)
	TripDays(ctx context.Context, userID, tripID uuid.UUID) ([]domain.DayView, error)
	DeleteDay(ctx context.Context, userID, tripID uuid.UUID, day int) (domain.Trip, error)

	AttachEvent(ctx context.Context, userID, eventID, tripID uuid.UUID, day int) (service.Attached, error)
	AvailableDays(ctx context.Context, userID, eventID, tripID uuid.UUID) ([]int, error)
	DetachEvent(ctx context.Context, userID, tripID, instanceID uuid.UUID) error
	ListInstances(ctx context.Context, userID, tripID uuid.UUID) ([]domain.EventInstance, error)
}

type EventServicer interface {
	List(ctx context.Context, userID uuid.UUID) ([]domain.Event, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Event, error)
	Create(ctx context.Context, event domain.Event, attach *domain.Attachment) (domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type BagServicer interface {
	List(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Bag, error)
	Create(ctx context.Context, userID, tripID uuid.UUID, name string) (domain.Bag, error)
	Delete(ctx context.Context, userID, tripID, bagID uuid.UUID) error
	AddItem(ctx context.Context, userID, tripID, bagID uuid.UUID, name string, category domain.Category) (domain.BagItem, error)
	ToggleItem(ctx context.Context, userID, tripID, bagID, itemID uuid.UUID) (domain.BagItem, error)
	DeleteItem(ctx context.Context, userID, tripID, bagID, itemID uuid.UUID) error
}

type SummaryServicer interface {
	Summarize(ctx context.Context, userID, tripID uuid.UUID) (domain.TripSummary, error)
}

// AuthServicer is the identity surface. Resolve is also what the bearer
// middleware uses to authenticate requests.
type AuthServicer interface {
	SignUp(ctx context.Context, in service.SignUpInput) (service.AuthResult, error)
	SignIn(ctx context.Context, email, password string) (service.AuthResult, error)
	Resolve(ctx context.Context, token string) (auth.Session, error)
	SignOut(ctx context.Context, sessionID uuid.UUID) error
	ResetPassword(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
	UpdateProfile(ctx context.Context, userID uuid.UUID, displayName string) (domain.User, error)
	UpdateEmail(ctx context.Context, userID uuid.UUID, email string) (domain.User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, newPassword, confirm string) error
}

// ChangeSubscriber streams change notifications for one trip.
// *notify.Hub satisfies it.
type ChangeSubscriber interface {
	Subscribe(tripID uuid.UUID) (<-chan notify.Change, func())
}

// Services bundles the dependencies of Server. A nil field leaves the
// matching routes unusable, which handler tests rely on to stay focused.
type Services struct {
	Trips   TripServicer
	Packing PackingServicer
	Events  EventServicer
	Bags    BagServicer
	Summary SummaryServicer
	Auth    AuthServicer
	Changes ChangeSubscriber
}

// Server holds the handler dependencies. Wire it in main.go via NewRouter.
type Server struct {
	trips   TripServicer
	packing PackingServicer
	events  EventServicer
	bags    BagServicer
	summary SummaryServicer
	auth    AuthServicer
	changes ChangeSubscriber

	log      *slog.Logger
	validate *validator.Validate
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		trips:    svc.Trips,
		packing:  svc.Packing,
		events:   svc.Events,
		bags:     svc.Bags,
		summary:  svc.Summary,
		auth:     svc.Auth,
		changes:  svc.Changes,
		log:      log,
		validate: newValidator(),
	}
}
