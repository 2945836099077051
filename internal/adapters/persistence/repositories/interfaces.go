package repositories

import (
	"context"
	"time"

	"bu-ethesis/internal/adapters/persistence/models"
)

// UserRepository defines the credential store
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// SessionRepository defines the server-side session store
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetActive(ctx context.Context, id string) (*models.Session, error)
	Revoke(ctx context.Context, id string) error
	RevokeAllByUserID(ctx context.Context, userID uint, exceptID string) error
	DeleteExpiredByUserID(ctx context.Context, userID uint, now time.Time) error
}

// ThesisRepository defines the thesis store
type ThesisRepository interface {
	Create(ctx context.Context, thesis *models.Thesis) error
	GetByID(ctx context.Context, id uint) (*models.Thesis, error)
	Search(ctx context.Context, filter ThesisFilter) ([]*models.Thesis, error)
	DistinctYears(ctx context.Context) ([]int, error)
	Update(ctx context.Context, thesis *models.Thesis) error
	Delete(ctx context.Context, id uint) error
	ListAttachmentNames(ctx context.Context) ([]AttachmentRef, error)

	// Transaction runs fn against a repository bound to a single store transaction.
	// Returning an error from fn rolls the transaction back.
	Transaction(ctx context.Context, fn func(repo ThesisRepository) error) error
}

// AttachmentRef pairs a thesis with the storage name it references
type AttachmentRef struct {
	ThesisID    uint   `gorm:"column:thesis_id"`
	PDFFilename string `gorm:"column:pdf_filename"`
}
