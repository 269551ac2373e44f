package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pkordes/packrat/internal/auth"
	"github.com/pkordes/packrat/internal/domain"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// newValidator returns a validator that reports fields by their JSON names
// and understands the "category" tag.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseCategory(fl.Field().String())
		return err == nil
	})
	return v
}

// decode reads a JSON body into dst and validates it. On failure it writes a
// 422 (or 413 for an oversized body) and returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody("payload_too_large", "request body is too large"))
		case errors.Is(err, io.EOF):
			writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body is required"))
		default:
			writeJSON(w, http.StatusUnprocessableEntity, requestBody("malformed request body: "+err.Error()))
		}
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(describeValidation(err)))
		return false
	}
	return true
}

// describeValidation turns the first validator failure into a short message.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "category":
		return fmt.Sprintf("unknown category %q", fe.Value())
	default:
		return field + " is invalid"
	}
}

// currentUser returns the authenticated user. Routes behind the
// authenticator always have one.
func currentUser(r *http.Request) domain.User {
	sess, _ := auth.SessionFrom(r.Context())
	return sess.User
}
