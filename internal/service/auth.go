package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pkordes/packrat/internal/auth"
	"github.com/pkordes/packrat/internal/domain"
	"github.com/pkordes/packrat/internal/mail"
	"github.com/pkordes/packrat/internal/repo"
)

// AuthConfig holds the tunables of AuthService.
type AuthConfig struct {
	SessionTTL time.Duration
	ResetTTL   time.Duration
	ResetURL   string // the token is appended as ?token=
}

// AuthResult is returned by a successful sign-up or sign-in.
type AuthResult struct {
	Token     string
	User      domain.User
	ExpiresAt time.Time
}

// SignUpInput carries the sign-up form. ConfirmPassword is optional; when set
// it must equal Password.
type SignUpInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	DisplayName     string
}

var (
	errBadCredentials = fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)
	errInvalidSession = fmt.Errorf("%w: session is no longer valid", domain.ErrUnauthorized)
	errResetInvalid   = fmt.Errorf("%w: reset link is invalid or has expired", domain.ErrValidation)
)

// AuthService manages accounts and sessions.
type AuthService struct {
	users    repo.UserRepo
	sessions repo.SessionRepo
	tx       repo.TxManager
	tokens   *auth.TokenIssuer
	mailer   mail.Mailer
	validate *validator.Validate
	cfg      AuthConfig
	now      func() time.Time
}

// NewAuthService constructs an AuthService.
func NewAuthService(users repo.UserRepo, sessions repo.SessionRepo, tx repo.TxManager,
	tokens *auth.TokenIssuer, mailer mail.Mailer, cfg AuthConfig) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		tx:       tx,
		tokens:   tokens,
		mailer:   mailer,
		validate: validator.New(),
		cfg:      cfg,
		now:      time.Now,
	}
}

// SignUp creates an account and signs it in.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (AuthResult, error) {
	email, err := s.normalizeEmail(in.Email)
	if err != nil {
		return AuthResult{}, fmt.Errorf("service.AuthService.SignUp: %w", err)
	}
	if err := checkPassword(in.Password, in.ConfirmPassword, "passwords do not match"); err != nil {
		return AuthResult{}, fmt.Errorf("service.AuthService.SignUp: %w", err)
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("service.AuthService.SignUp: %w", err)
	}

	var result AuthResult
	err = s.tx.WithinTx(ctx, func(r repo.Repos) error {
		user, err := r.Users.Create(ctx, domain.User{
			Email:        email,
			DisplayName:  strings.TrimSpace(in.DisplayName),
			PasswordHash: hash,
		})
		if errors.Is(err, domain.ErrConflict) {
			return fmt.Errorf("%w: an account with this email already exists", domain.ErrConflict)
		}
		if err != nil {
			return err
		}
		result, err = s.openSession(ctx, r.Sessions, user)
		return err
	})
	if err != nil {
		return AuthResult{}, fmt.Errorf("service.AuthService.SignUp: %w", err)
	}
	return result, nil
}

// SignIn verifies credentials and opens a new session.
// Unknown email and wrong password produce the same error.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, domain.ErrNotFound) {
		return AuthResult{}, fmt.Errorf("service.AuthService.SignIn: %w", errBadCredentials)
	}
	if err != nil {
		return AuthResult{}, fmt.Errorf("service.AuthService.SignIn: %w", err)
	}
	ok, err := auth.ComparePassword(user.PasswordHash, password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("service.AuthService.SignIn: %w", err)
	}
	if !ok {
		return AuthResult{}, fmt.Errorf("service.AuthService.SignIn: %w", errBadCredentials)
	}

	result, err := s.openSession(ctx, s.sessions, user)
	if err != nil {
		return AuthResult{}, fmt.Errorf("service.AuthService.SignIn: %w", err)
	}
	return result, nil
}

func (s *AuthService) openSession(ctx context.Context, sessions repo.SessionRepo, user domain.User) (AuthResult, error) {
	sess, err := sessions.Create(ctx, user.ID, s.now().Add(s.cfg.SessionTTL))
	if err != nil {
		return AuthResult{}, err
	}
	token, err := s.tokens.Issue(sess)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, User: user, ExpiresAt: sess.ExpiresAt}, nil
}

// Resolve turns a bearer token into the session it names. Revoked, expired,
// or forged tokens are domain.ErrUnauthorized.
func (s *AuthService) Resolve(ctx context.Context, token string) (auth.Session, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return auth.Session{}, fmt.Errorf("service.AuthService.Resolve: %w", err)
	}
	sess, err := s.sessions.GetByID(ctx, claims.SessionID)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && (sess.UserID != claims.UserID || sess.Expired(s.now()))) {
		return auth.Session{}, fmt.Errorf("service.AuthService.Resolve: %w", errInvalidSession)
	}
	if err != nil {
		return auth.Session{}, fmt.Errorf("service.AuthService.Resolve: %w", err)
	}
	user, err := s.users.GetByID(ctx, sess.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return auth.Session{}, fmt.Errorf("service.AuthService.Resolve: %w", errInvalidSession)
	}
	if err != nil {
		return auth.Session{}, fmt.Errorf("service.AuthService.Resolve: %w", err)
	}
	return auth.Session{ID: sess.ID, User: user}, nil
}

// SignOut revokes one session. Signing out twice is not an error.
func (s *AuthService) SignOut(ctx context.Context, sessionID uuid.UUID) error {
	err := s.sessions.Delete(ctx, sessionID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("service.AuthService.SignOut: %w", err)
	}
	return nil
}

// ResetPassword mails a one-time reset link when an account with email
// exists. Unknown emails succeed silently.
func (s *AuthService) ResetPassword(ctx context.Context, email string) error {
	email, err := s.normalizeEmail(email)
	if err != nil {
		return fmt.Errorf("service.AuthService.ResetPassword: %w", err)
	}
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("service.AuthService.ResetPassword: %w", err)
	}

	token, hash, err := auth.NewResetToken()
	if err != nil {
		return fmt.Errorf("service.AuthService.ResetPassword: %w", err)
	}
	reset := domain.PasswordReset{TokenHash: hash, UserID: user.ID, ExpiresAt: s.now().Add(s.cfg.ResetTTL)}
	if err := s.sessions.CreateReset(ctx, reset); err != nil {
		return fmt.Errorf("service.AuthService.ResetPassword: %w", err)
	}
	if err := s.mailer.SendPasswordReset(ctx, user.Email, s.resetLink(token)); err != nil {
		return fmt.Errorf("service.AuthService.ResetPassword: %w", err)
	}
	return nil
}

func (s *AuthService) resetLink(token string) string {
	u, err := url.Parse(s.cfg.ResetURL)
	if err != nil {
		return s.cfg.ResetURL + "?token=" + url.QueryEscape(token)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String()
}

// ConfirmPasswordReset consumes a reset token, stores the new password, and
// signs the user out everywhere.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if err := checkPassword(newPassword, "", ""); err != nil {
		return fmt.Errorf("service.AuthService.ConfirmPasswordReset: %w", err)
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("service.AuthService.ConfirmPasswordReset: %w", err)
	}

	err = s.tx.WithinTx(ctx, func(r repo.Repos) error {
		reset, err := r.Sessions.ConsumeReset(ctx, auth.HashResetToken(token))
		if errors.Is(err, domain.ErrNotFound) {
			return errResetInvalid
		}
		if err != nil {
			return err
		}
		if !s.now().Before(reset.ExpiresAt) {
			return errResetInvalid
		}
		if err := r.Users.UpdatePassword(ctx, reset.UserID, hash); err != nil {
			return err
		}
		return r.Sessions.DeleteByUser(ctx, reset.UserID)
	})
	if err != nil {
		return fmt.Errorf("service.AuthService.ConfirmPasswordReset: %w", err)
	}
	return nil
}

// UpdateProfile changes the display name.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, displayName string) (domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.UpdateProfile: %w", err)
	}
	user.DisplayName = strings.TrimSpace(displayName)
	user, err = s.users.UpdateProfile(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.UpdateProfile: %w", err)
	}
	return user, nil
}

// UpdateEmail changes the sign-in email.
func (s *AuthService) UpdateEmail(ctx context.Context, userID uuid.UUID, email string) (domain.User, error) {
	email, err := s.normalizeEmail(email)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.UpdateEmail: %w", err)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.UpdateEmail: %w", err)
	}
	user.Email = email
	user, err = s.users.UpdateProfile(ctx, user)
	if errors.Is(err, domain.ErrConflict) {
		return domain.User{}, fmt.Errorf("service.AuthService.UpdateEmail: %w: an account with this email already exists", domain.ErrConflict)
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.UpdateEmail: %w", err)
	}
	return user, nil
}

// UpdatePassword replaces the password of a signed-in user.
func (s *AuthService) UpdatePassword(ctx context.Context, userID uuid.UUID, newPassword, confirm string) error {
	if err := checkPassword(newPassword, confirm, "new passwords do not match"); err != nil {
		return fmt.Errorf("service.AuthService.UpdatePassword: %w", err)
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("service.AuthService.UpdatePassword: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("service.AuthService.UpdatePassword: %w", err)
	}
	return nil
}

func (s *AuthService) normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.validate.Var(email, "required,email"); err != nil {
		return "", fmt.Errorf("%w: a valid email is required", domain.ErrValidation)
	}
	return email, nil
}

// checkPassword enforces the length limits and, when confirm is non-empty,
// that it matches. mismatch is the message used for a failed confirmation.
func checkPassword(password, confirm, mismatch string) error {
	if len(password) < auth.MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, auth.MinPasswordLength)
	}
	if len(password) > auth.MaxPasswordLength {
		return fmt.Errorf("%w: password must be at most %d bytes", domain.ErrValidation, auth.MaxPasswordLength)
	}
	if confirm != "" && confirm != password {
		return fmt.Errorf("%w: %s", domain.ErrValidation, mismatch)
	}
	return nil
}
