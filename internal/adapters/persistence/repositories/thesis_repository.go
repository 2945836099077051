package repositories

import (
	"context"

	"bu-ethesis/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// listingOrder is the stable order of every listing
const listingOrder = "year DESC, title ASC, id ASC"

// thesisRepository implements ThesisRepository interface
type thesisRepository struct {
	db *gorm.DB
}

// NewThesisRepository creates a new thesis repository
func NewThesisRepository(db *gorm.DB) ThesisRepository {
	return &thesisRepository{db: db}
}

// Create creates a new thesis and assigns its ID
func (r *thesisRepository) Create(ctx context.Context, thesis *models.Thesis) error {
	return r.db.WithContext(ctx).Create(thesis).Error
}

// GetByID gets a thesis by ID
func (r *thesisRepository) GetByID(ctx context.Context, id uint) (*models.Thesis, error) {
	var thesis models.Thesis
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&thesis).Error
	if err != nil {
		return nil, err
	}
	return &thesis, nil
}

// Search lists theses matching the filter in listing order
func (r *thesisRepository) Search(ctx context.Context, filter ThesisFilter) ([]*models.Thesis, error) {
	var theses []*models.Thesis
	err := filter.apply(r.db.WithContext(ctx).Model(&models.Thesis{})).
		Order(listingOrder).
		Find(&theses).Error
	return theses, err
}

// DistinctYears lists the years present, newest first
func (r *thesisRepository) DistinctYears(ctx context.Context) ([]int, error) {
	var years []int
	err := r.db.WithContext(ctx).
		Model(&models.Thesis{}).
		Distinct("year").
		Order("year DESC").
		Pluck("year", &years).Error
	return years, err
}

// Update saves every editable column of the thesis, including a cleared attachment
func (r *thesisRepository) Update(ctx context.Context, thesis *models.Thesis) error {
	return r.db.WithContext(ctx).
		Model(thesis).
		Select("title", "authors", "year", "adviser", "abstract", "keywords", "pdf_filename", "search_text", "updated_at").
		Updates(thesis).Error
}

// Delete hard deletes a thesis
func (r *thesisRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Thesis{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListAttachmentNames lists every non-empty attachment reference
func (r *thesisRepository) ListAttachmentNames(ctx context.Context) ([]AttachmentRef, error) {
	var refs []AttachmentRef
	err := r.db.WithContext(ctx).
		Model(&models.Thesis{}).
		Select("id AS thesis_id, pdf_filename").
		Where("pdf_filename IS NOT NULL AND pdf_filename <> ''").
		Order("id ASC").
		Scan(&refs).Error
	return refs, err
}

// Transaction runs fn inside a single store transaction
func (r *thesisRepository) Transaction(ctx context.Context, fn func(repo ThesisRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&thesisRepository{db: tx})
	})
}
