package handler

import (
	"net/http"

	"github.com/pkordes/packrat/internal/auth"
	"github.com/pkordes/packrat/internal/handler/api"
	"github.com/pkordes/packrat/internal/service"
)

func authToResponse(res service.AuthResult) api.AuthResponse {
	return api.AuthResponse{Token: res.Token, ExpiresAt: res.ExpiresAt, User: userToResponse(res.User)}
}

// SignUp handles POST /auth/signup.
func (s *Server) SignUp(w http.ResponseWriter, r *http.Request) {
	var body api.SignUpRequest
	if !s.decode(w, r, &body) {
		return
	}
	res, err := s.auth.SignUp(r.Context(), service.SignUpInput{
		Email:           body.Email,
		Password:        body.Password,
		ConfirmPassword: body.ConfirmPassword,
		DisplayName:     body.DisplayName,
	})
	if err != nil {
		s.writeServiceError(w, r, err, "user not found")
		return
	}
	writeJSON(w, http.StatusCreated, authToResponse(res))
}

// SignIn handles POST /auth/signin.
func (s *Server) SignIn(w http.ResponseWriter, r *http.Request) {
	var body api.SignInRequest
	if !s.decode(w, r, &body) {
		return
	}
	res, err := s.auth.SignIn(r.Context(), body.Email, body.Password)
	if err != nil {
		s.writeServiceError(w, r, err, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, authToResponse(res))
}

// SignOut handles POST /auth/signout by revoking the current session.
func (s *Server) SignOut(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFrom(r.Context())
	if err := s.auth.SignOut(r.Context(), sess.ID); err != nil {
		s.writeServiceError(w, r, err, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSession handles GET /auth/session and returns the signed-in user.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userToResponse(currentUser(r)))
}

// RequestPasswordReset handles POST /auth/password-reset. It answers 202 whether
// or not the address belongs to an account.
func (s *Server) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var body api.PasswordResetRequest
	if !s.decode(w, r, &body) {
		return
	}
	if err := s.auth.ResetPassword(r.Context(), body.Email); err != nil {
		s.writeServiceError(w, r, err, "user not found")
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// ConfirmPasswordReset handles POST /auth/password-reset/confirm.
func (s *Server) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var body api.PasswordResetConfirmRequest
	if !s.decode(w, r, &body) {
		return
	}
	if err := s.auth.ConfirmPasswordReset(r.Context(), body.Token, body.Password); err != nil {
		s.writeServiceError(w, r, err, "reset link not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateProfile handles PUT /auth/profile.
func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var body api.UpdateProfileRequest
	if !s.decode(w, r, &body) {
		return
	}
	user, err := s.auth.UpdateProfile(r.Context(), currentUser(r).ID, body.DisplayName)
	if err != nil {
		s.writeServiceError(w, r, err, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(user))
}

// UpdateEmail handles PUT /auth/email.
func (s *Server) UpdateEmail(w http.ResponseWriter, r *http.Request) {
	var body api.UpdateEmailRequest
	if !s.decode(w, r, &body) {
		return
	}
	user, err := s.auth.UpdateEmail(r.Context(), currentUser(r).ID, body.Email)
	if err != nil {
		s.writeServiceError(w, r, err, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(user))
}

// UpdatePassword handles PUT /auth/password.
func (s *Server) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var body api.UpdatePasswordRequest
	if !s.decode(w, r, &body) {
		return
	}
	if err := s.auth.UpdatePassword(r.Context(), currentUser(r).ID, body.Password, body.ConfirmPassword); err != nil {
		s.writeServiceError(w, r, err, "user not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
