package repositories

import (
	"context"
	"time"

	"bu-ethesis/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// sessionRepository implements SessionRepository interface
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create creates a new session
func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// GetActive gets a session that is neither revoked nor expired
func (r *sessionRepository) GetActive(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		Where("revoked_at IS NULL").
		Where("expires_at > ?", time.Now()).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Revoke revokes a session by ID
func (r *sessionRepository) Revoke(ctx context.Context, id string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ?", id).
		Where("revoked_at IS NULL").
		Update("revoked_at", &now).Error
}

// RevokeAllByUserID revokes every session of a user except exceptID (may be empty)
func (r *sessionRepository) RevokeAllByUserID(ctx context.Context, userID uint, exceptID string) error {
	now := time.Now()
	q := r.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("user_id = ?", userID).
		Where("revoked_at IS NULL")
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	return q.Update("revoked_at", &now).Error
}

// DeleteExpiredByUserID removes a user's expired or revoked sessions
func (r *sessionRepository) DeleteExpiredByUserID(ctx context.Context, userID uint, now time.Time) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("expires_at <= ? OR revoked_at IS NOT NULL", now).
		Delete(&models.Session{}).Error
}
