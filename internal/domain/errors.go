package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist, or exists but belongs to another user.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing name, day outside the trip's packing days).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write would violate a uniqueness rule,
// such as a duplicate account email or attaching the same event twice to one day.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized is returned when credentials or a session token are invalid.
// Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")
