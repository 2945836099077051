package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"bu-ethesis/internal/adapters/persistence/models"
	"bu-ethesis/internal/adapters/persistence/repositories"
	"bu-ethesis/internal/config"
	"bu-ethesis/internal/core/domain"
	"bu-ethesis/internal/pkg/jwt"
	"bu-ethesis/internal/pkg/logging"
	"bu-ethesis/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	cfg         *config.Config
	log         logging.Logger
	now         func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	cfg *config.Config,
	log logging.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
		log:         log.With("component", "auth"),
		now:         time.Now,
	}
}

// Login verifies the credential and opens a new session.
// It returns the session together with the signed token for the cookie.
func (s *AuthService) Login(ctx context.Context, username, plain string) (*domain.Session, string, error) {
	// 1. Find user by exact username
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn(ctx, "login failed", "username", username, "reason", "unknown user")
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	// 2. Verify password
	if !password.Verify(plain, user.Password) {
		s.log.Warn(ctx, "login failed", "username", username, "reason", "bad password")
		return nil, "", domain.ErrInvalidCredentials
	}

	now := s.now()

	// 3. Drop the user's dead sessions
	if err := s.sessionRepo.DeleteExpiredByUserID(ctx, user.ID, now); err != nil {
		s.log.Warn(ctx, "purge expired sessions failed", "user_id", user.ID, "error", err)
	}

	// 4. Persist the new session
	row := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.cfg.Session.TTL),
	}
	if err := s.sessionRepo.Create(ctx, row); err != nil {
		return nil, "", err
	}

	session := &domain.Session{
		ID:        row.ID,
		UserID:    user.ID,
		Username:  user.Username,
		IssuedAt:  now,
		ExpiresAt: row.ExpiresAt,
	}

	// 5. Sign the cookie token
	token, err := jwt.GenerateSessionToken(session.ID, user.ID, user.Username, s.cfg.Session.Secret, now, session.ExpiresAt)
	if err != nil {
		return nil, "", err
	}

	s.log.Info(ctx, "user logged in", "username", user.Username, "session_id", session.ID)
	return session, token, nil
}

// Logout revokes the session behind token. Unknown or invalid tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := jwt.ValidateSessionToken(token, s.cfg.Session.Secret)
	if err != nil {
		return nil
	}

	if err := s.sessionRepo.Revoke(ctx, claims.SessionID); err != nil {
		return err
	}

	s.log.Info(ctx, "user logged out", "username", claims.Username, "session_id", claims.SessionID)
	return nil
}

// CurrentSession resolves token to an active session.
// A nil session with a nil error means the caller is anonymous.
func (s *AuthService) CurrentSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, nil
	}

	claims, err := jwt.ValidateSessionToken(token, s.cfg.Session.Secret)
	if err != nil {
		return nil, nil
	}

	row, err := s.sessionRepo.GetActive(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if row.UserID != claims.UserID || row.IsRevoked() {
		return nil, nil
	}

	session := &domain.Session{
		ID:        row.ID,
		UserID:    row.UserID,
		Username:  row.User.Username,
		IssuedAt:  row.CreatedAt,
		ExpiresAt: row.ExpiresAt,
	}
	// GetActive filtered with the wall clock, s.now has the final say
	if session.IsExpired(s.now()) {
		return nil, nil
	}
	return session, nil
}

// ChangePassword replaces the password of the session's user and ends every other session
func (s *AuthService) ChangePassword(ctx context.Context, session *domain.Session, oldPassword, newPassword string) error {
	if session == nil {
		return domain.ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUnauthorized
		}
		return err
	}

	if !password.Verify(oldPassword, user.Password) {
		return domain.ErrOldPasswordWrong
	}

	if !password.ValidatePassword(newPassword) {
		return domain.ErrWeakPassword
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return err
	}

	if err := s.sessionRepo.RevokeAllByUserID(ctx, user.ID, session.ID); err != nil {
		return err
	}

	s.log.Info(ctx, "password changed", "username", user.Username)
	return nil
}

// SetPassword sets the password for username out of band, creating the account when missing.
// It reports whether the account was created.
func (s *AuthService) SetPassword(ctx context.Context, username, newPassword string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return false, domain.Validationf("username is required")
	}
	if !password.ValidatePassword(newPassword) {
		return false, domain.ErrWeakPassword
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return false, err
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, err
		}

		if err := s.userRepo.Create(ctx, &models.User{Username: username, Password: hashed}); err != nil {
			return false, err
		}
		s.log.Info(ctx, "user created", "username", username)
		return true, nil
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return false, err
	}
	if err := s.sessionRepo.RevokeAllByUserID(ctx, user.ID, ""); err != nil {
		return false, err
	}

	s.log.Info(ctx, "password reset", "username", username)
	return false, nil
}
