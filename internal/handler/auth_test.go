package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/packrat/internal/domain"
	"github.com/pkordes/packrat/internal/handler"
	"github.com/pkordes/packrat/internal/handler/api"
	"github.com/pkordes/packrat/internal/service"
)

func authHandler(svc *mockAuthServicer) http.Handler {
	if svc.resolve == nil {
		svc.resolve = acceptTestToken
	}
	return newHTTPHandler(handler.Services{Auth: svc})
}

// anonymous sends a request without credentials.
func anonymous(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, jsonBody(t, body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSignUp_201(t *testing.T) {
	exp := time.Now().Add(time.Hour).UTC()
	svc := &mockAuthServicer{
		signUp: func(_ context.Context, in service.SignUpInput) (service.AuthResult, error) {
			assert.Equal(t, "secret1", in.ConfirmPassword)
			return service.AuthResult{Token: "jwt", ExpiresAt: exp, User: domain.User{ID: uuid.New(), Email: in.Email}}, nil
		},
	}

	rec := anonymous(t, authHandler(svc), http.MethodPost, "/auth/signup", map[string]any{
		"email": "ana@example.com", "password": "secret1", "confirm_password": "secret1",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeBody[api.AuthResponse](t, rec)
	assert.Equal(t, "jwt", resp.Token)
	assert.Equal(t, "ana@example.com", resp.User.Email)
}

func TestSignUp_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"short password", fmt.Errorf("service.AuthService.SignUp: %w: password must be at least 6 characters", domain.ErrValidation),
			http.StatusUnprocessableEntity, "password must be at least 6 characters"},
		{"duplicate", fmt.Errorf("service.AuthService.SignUp: %w: an account with this email already exists", domain.ErrConflict),
			http.StatusConflict, "an account with this email already exists"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockAuthServicer{
				signUp: func(_ context.Context, _ service.SignUpInput) (service.AuthResult, error) {
					return service.AuthResult{}, tc.err
				},
			}

			rec := anonymous(t, authHandler(svc), http.MethodPost, "/auth/signup", map[string]any{
				"email": "ana@example.com", "password": "123",
			})

			require.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.msg, errorCode(t, rec).Message)
		})
	}
}

func TestSignIn_401(t *testing.T) {
	svc := &mockAuthServicer{
		signIn: func(_ context.Context, _, _ string) (service.AuthResult, error) {
			return service.AuthResult{}, fmt.Errorf("service.AuthService.SignIn: %w: invalid email or password", domain.ErrUnauthorized)
		},
	}

	rec := anonymous(t, authHandler(svc), http.MethodPost, "/auth/signin", map[string]any{
		"email": "ana@example.com", "password": "nope",
	})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, api.ErrorDetail{Code: "unauthorized", Message: "invalid email or password"}, errorCode(t, rec))
}

func TestGetSession(t *testing.T) {
	rec := do(authHandler(&mockAuthServicer{}), http.MethodGet, "/auth/session", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testUser.Email, decodeBody[api.User](t, rec).Email)
}

func TestSignOut_RevokesCurrentSession(t *testing.T) {
	var revoked uuid.UUID
	svc := &mockAuthServicer{
		signOut: func(_ context.Context, id uuid.UUID) error {
			revoked = id
			return nil
		},
	}

	rec := do(authHandler(svc), http.MethodPost, "/auth/signout", nil)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, testSession.ID, revoked)
}

func TestRequestPasswordReset_202(t *testing.T) {
	svc := &mockAuthServicer{resetPassword: func(_ context.Context, _ string) error { return nil }}

	rec := anonymous(t, authHandler(svc), http.MethodPost, "/auth/password-reset", map[string]any{"email": "who@example.com"})

	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestConfirmPasswordReset_422_BadToken(t *testing.T) {
	svc := &mockAuthServicer{
		confirmPasswordReset: func(_ context.Context, _, _ string) error {
			return fmt.Errorf("%w: reset link is invalid or has expired", domain.ErrValidation)
		},
	}

	rec := anonymous(t, authHandler(svc), http.MethodPost, "/auth/password-reset/confirm", map[string]any{
		"token": "stale", "password": "brand-new",
	})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "reset link is invalid or has expired", errorCode(t, rec).Message)
}

func TestUpdatePassword_Mismatch(t *testing.T) {
	svc := &mockAuthServicer{
		updatePassword: func(_ context.Context, userID uuid.UUID, _, _ string) error {
			assert.Equal(t, testUser.ID, userID)
			return fmt.Errorf("%w: new passwords do not match", domain.ErrValidation)
		},
	}

	rec := do(authHandler(svc), http.MethodPut, "/auth/password", jsonBody(t, map[string]any{
		"password": "secret1", "confirm_password": "secret2",
	}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "new passwords do not match", errorCode(t, rec).Message)
}

func TestUpdateProfile_200(t *testing.T) {
	svc := &mockAuthServicer{
		updateProfile: func(_ context.Context, _ uuid.UUID, name string) (domain.User, error) {
			u := testUser
			u.DisplayName = name
			return u, nil
		},
	}

	rec := do(authHandler(svc), http.MethodPut, "/auth/profile", jsonBody(t, map[string]any{"display_name": "Ana B"}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ana B", decodeBody[api.User](t, rec).DisplayName)
}

func TestUpdateEmail_409(t *testing.T) {
	svc := &mockAuthServicer{
		updateEmail: func(_ context.Context, _ uuid.UUID, _ string) (domain.User, error) {
			return domain.User{}, fmt.Errorf("%w: an account with this email already exists", domain.ErrConflict)
		},
	}

	rec := do(authHandler(svc), http.MethodPut, "/auth/email", jsonBody(t, map[string]any{"email": "taken@example.com"}))

	assert.Equal(t, http.StatusConflict, rec.Code)
}
