// Package api holds the JSON request and response contract of the Pack Rat
// HTTP API, mirroring the schemas in openapi/openapi.yaml. Dates use the
// OpenAPI "date" format (YYYY-MM-DD); IDs are UUIDs.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ErrorDetail is the body of every non-2xx JSON response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorDetail as {"error":{...}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// ---- auth ------------------------------------------------------------------

type SignUpRequest struct {
	Email           string `json:"email" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password,omitempty"`
	DisplayName     string `json:"display_name,omitempty" validate:"max=100"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type User struct {
	Id          openapi_types.UUID `json:"id"`
	Email       string             `json:"email"`
	DisplayName string             `json:"display_name"`
	CreatedAt   time.Time          `json:"created_at"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required"`
}

type PasswordResetConfirmRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" validate:"max=100"`
}

type UpdateEmailRequest struct {
	Email string `json:"email" validate:"required"`
}

type UpdatePasswordRequest struct {
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password"`
}

// ---- trips -----------------------------------------------------------------

// TripRequest is the body of POST /trips and PUT /trips/{tripId}.
type TripRequest struct {
	Name        string              `json:"trip_name" validate:"required,max=200"`
	Origin      string              `json:"origin,omitempty" validate:"max=200"`
	Destination string              `json:"destination,omitempty" validate:"max=200"`
	StartDate   openapi_types.Date  `json:"start_date"`
	EndDate     *openapi_types.Date `json:"end_date,omitempty"`
	PackingDays int                 `json:"packing_days,omitempty" validate:"gte=0,lte=365"`
	Notes       *string             `json:"notes,omitempty"`
}

type Trip struct {
	Id          openapi_types.UUID  `json:"id"`
	Name        string              `json:"trip_name"`
	Origin      string              `json:"origin"`
	Destination string              `json:"destination"`
	StartDate   openapi_types.Date  `json:"start_date"`
	EndDate     *openapi_types.Date `json:"end_date,omitempty"`
	PackingDays int                 `json:"packing_days"`
	Notes       *string             `json:"notes,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

type TripList struct {
	Data       []Trip     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// ---- packing items ---------------------------------------------------------

type PackingItemRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Category string `json:"category,omitempty" validate:"category"`
	Quantity int    `json:"quantity,omitempty" validate:"gte=0"`
	Day      int    `json:"day" validate:"required,gte=1"`
}

type PackingItem struct {
	Id              openapi_types.UUID  `json:"id"`
	TripId          openapi_types.UUID  `json:"trip_id"`
	EventInstanceId *openapi_types.UUID `json:"event_instance_id,omitempty"`
	Name            string              `json:"name"`
	Category        string              `json:"category"`
	Quantity        int                 `json:"quantity"`
	Day             int                 `json:"day"`
	IsPacked        bool                `json:"is_packed"`
	CreatedAt       time.Time           `json:"created_at"`
}

type ToggleResponse struct {
	Name     string `json:"name"`
	IsPacked bool   `json:"is_packed"`
	Affected int64  `json:"affected"`
}

// ---- days ------------------------------------------------------------------

type ItemGroup struct {
	Instance EventInstance `json:"instance"`
	Items    []PackingItem `json:"items"`
}

type DayView struct {
	Day    int           `json:"day"`
	Groups []ItemGroup   `json:"groups"`
	Other  []PackingItem `json:"other"`
}

// ---- events ----------------------------------------------------------------

type EventItem struct {
	Id       *openapi_types.UUID `json:"id,omitempty"`
	Name     string              `json:"name" validate:"required,max=200"`
	Category string              `json:"category,omitempty" validate:"category"`
	Quantity int                 `json:"quantity,omitempty" validate:"gte=0"`
}

// AttachTo optionally places a newly created event on a trip day.
type AttachTo struct {
	TripId openapi_types.UUID `json:"trip_id" validate:"required"`
	Day    int                `json:"day" validate:"required,gte=1"`
}

type EventRequest struct {
	Name        string      `json:"name" validate:"required,max=200"`
	Description string      `json:"description,omitempty" validate:"max=2000"`
	Items       []EventItem `json:"items" validate:"dive"`
	AttachTo    *AttachTo   `json:"attach_to,omitempty"`
}

type Event struct {
	Id          openapi_types.UUID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Items       []EventItem        `json:"items"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type EventInstance struct {
	Id        openapi_types.UUID `json:"id"`
	EventId   openapi_types.UUID `json:"event_id"`
	EventName string             `json:"event_name"`
	Day       int                `json:"day"`
	CreatedAt time.Time          `json:"created_at"`
}

type AttachRequest struct {
	EventId openapi_types.UUID `json:"event_id" validate:"required"`
	Day     int                `json:"day" validate:"required,gte=1"`
}

type AttachResponse struct {
	Instance EventInstance `json:"instance"`
	Items    []PackingItem `json:"items"`
}

type AvailableDays struct {
	Days []int `json:"days"`
}

// ---- bags ------------------------------------------------------------------

type BagRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type BagItemRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Category string `json:"category,omitempty" validate:"category"`
}

type BagItem struct {
	Id       openapi_types.UUID `json:"id"`
	Name     string             `json:"name"`
	Category string             `json:"category"`
	Packed   bool               `json:"packed"`
}

type Bag struct {
	Id        openapi_types.UUID `json:"id"`
	Name      string             `json:"name"`
	Items     []BagItem          `json:"items"`
	CreatedAt time.Time          `json:"created_at"`
}

// ---- summary & export ------------------------------------------------------

type SummaryEntry struct {
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Count         int      `json:"count"`
	Packed        bool     `json:"packed"`
	OnPackingList bool     `json:"on_packing_list"`
	Bags          []string `json:"bags"`
}

type SummaryCategory struct {
	Category string         `json:"category"`
	Entries  []SummaryEntry `json:"entries"`
}

type Summary struct {
	TotalItems  int               `json:"total_items"`
	PackedItems int               `json:"packed_items"`
	Categories  []SummaryCategory `json:"categories"`
}

type ExportRow struct {
	Day      int     `json:"day"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
	Packed   bool    `json:"packed"`
	Event    *string `json:"event,omitempty"`
}

// ExportFormat selects the representation of GET /trips/{tripId}/export.
type ExportFormat string

const (
	Csv  ExportFormat = "csv"
	Json ExportFormat = "json"
)
