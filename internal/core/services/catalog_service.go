package services

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"bu-ethesis/internal/adapters/persistence/models"
	"bu-ethesis/internal/adapters/persistence/repositories"
	"bu-ethesis/internal/adapters/storage"
	"bu-ethesis/internal/core/domain"
	"bu-ethesis/internal/pkg/logging"

	"gorm.io/gorm"
)

// CatalogService serves the public, read-only side of the catalog
type CatalogService struct {
	thesisRepo repositories.ThesisRepository
	store      storage.Store
	log        logging.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(thesisRepo repositories.ThesisRepository, store storage.Store, log logging.Logger) *CatalogService {
	return &CatalogService{
		thesisRepo: thesisRepo,
		store:      store,
		log:        log.With("component", "catalog"),
	}
}

// SearchInput holds the raw listing filters as submitted
type SearchInput struct {
	Text string
	Year string
}

// SearchResult is a filtered listing plus the data for the year filter control
type SearchResult struct {
	Theses      []*models.Thesis
	Years       []int
	SearchQuery string
	YearFilter  string
}

// Download is an attachment ready to be streamed. The caller closes Body.
type Download struct {
	Body     io.ReadCloser
	Size     int64
	Filename string
}

// Search lists theses matching the optional text and year filters
func (s *CatalogService) Search(ctx context.Context, input SearchInput) (*SearchResult, error) {
	filter := repositories.ThesisFilter{Text: strings.TrimSpace(input.Text)}

	yearFilter := strings.TrimSpace(input.Year)
	if yearFilter != "" {
		year, err := strconv.Atoi(yearFilter)
		if err != nil {
			return nil, domain.Validationf("year must be a number")
		}
		filter.Year = &year
	}

	theses, err := s.thesisRepo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	years, err := s.thesisRepo.DistinctYears(ctx)
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		Theses:      theses,
		Years:       years,
		SearchQuery: filter.Text,
		YearFilter:  yearFilter,
	}, nil
}

// ListAll returns every thesis in listing order
func (s *CatalogService) ListAll(ctx context.Context) ([]*models.Thesis, error) {
	return s.thesisRepo.Search(ctx, repositories.ThesisFilter{})
}

// Get returns one thesis
func (s *CatalogService) Get(ctx context.Context, id uint) (*models.Thesis, error) {
	thesis, err := s.thesisRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return thesis, nil
}

// Download opens the attachment of a thesis.
// A reference to a file that no longer exists is reported as not found.
func (s *CatalogService) Download(ctx context.Context, id uint) (*Download, error) {
	thesis, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !thesis.HasAttachment() {
		return nil, domain.ErrNotFound
	}

	body, size, err := s.store.Open(ctx, thesis.AttachmentName())
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) || errors.Is(err, storage.ErrInvalidName) {
			s.log.Warn(ctx, "integrity gap",
				"gap", domain.GapDanglingReference,
				"thesis_id", thesis.ID,
				"file", thesis.AttachmentName(),
			)
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &Download{
		Body:     body,
		Size:     size,
		Filename: storage.DownloadName(thesis.Title),
	}, nil
}
