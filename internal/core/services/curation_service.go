package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"bu-ethesis/internal/adapters/persistence/models"
	"bu-ethesis/internal/adapters/persistence/repositories"
	"bu-ethesis/internal/adapters/storage"
	"bu-ethesis/internal/config"
	"bu-ethesis/internal/core/domain"
	"bu-ethesis/internal/pkg/logging"

	"gorm.io/gorm"
)

// CurationService handles the authenticated create/update/delete flows
type CurationService struct {
	thesisRepo repositories.ThesisRepository
	store      storage.Store
	upload     config.UploadConfig
	log        logging.Logger
}

// NewCurationService creates a new curation service
func NewCurationService(
	thesisRepo repositories.ThesisRepository,
	store storage.Store,
	upload config.UploadConfig,
	log logging.Logger,
) *CurationService {
	return &CurationService{
		thesisRepo: thesisRepo,
		store:      store,
		upload:     upload,
		log:        log.With("component", "curation"),
	}
}

// ThesisInput holds the submitted form fields
type ThesisInput struct {
	Title    string    `json:"title" form:"title"`
	Authors  string    `json:"authors" form:"authors"`
	Year     YearInput `json:"year" form:"year"`
	Adviser  string    `json:"adviser" form:"adviser"`
	Abstract string    `json:"abstract" form:"abstract"`
	Keywords string    `json:"keywords" form:"keywords"`
}

// YearInput is the year as submitted. JSON bodies may send it as a number or a string;
// either way it is validated like the form field.
type YearInput string

// UnmarshalJSON keeps non-string tokens verbatim so validation can reject them
func (y *YearInput) UnmarshalJSON(b []byte) error {
	switch {
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*y = YearInput(s)
	case string(b) == "null":
		*y = ""
	default:
		*y = YearInput(b)
	}
	return nil
}

// UnmarshalText is used by the form decoder
func (y *YearInput) UnmarshalText(b []byte) error {
	*y = YearInput(b)
	return nil
}

// AttachmentInput is an uploaded file. Size is the size the client declared.
type AttachmentInput struct {
	Filename string
	Size     int64
	Content  io.Reader
}

type thesisFields struct {
	title, authors, adviser, abstract, keywords string
	year                                        int
}

func (f *thesisFields) applyTo(t *models.Thesis) {
	t.Title = f.title
	t.Authors = f.authors
	t.Year = f.year
	t.Adviser = f.adviser
	t.Abstract = f.abstract
	t.Keywords = f.keywords
}

func validateThesisInput(in ThesisInput) (*thesisFields, error) {
	f := &thesisFields{
		title:    strings.TrimSpace(in.Title),
		authors:  strings.TrimSpace(in.Authors),
		adviser:  strings.TrimSpace(in.Adviser),
		abstract: strings.TrimSpace(in.Abstract),
		keywords: strings.TrimSpace(in.Keywords),
	}

	required := []struct {
		name, value string
	}{
		{"title", f.title},
		{"authors", f.authors},
		{"year", strings.TrimSpace(string(in.Year))},
		{"adviser", f.adviser},
		{"abstract", f.abstract},
		{"keywords", f.keywords},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, domain.Validationf("%s is required", r.name)
		}
	}

	year, err := strconv.Atoi(strings.TrimSpace(string(in.Year)))
	if err != nil || year <= 0 {
		return nil, domain.Validationf("year must be a positive whole number")
	}
	f.year = year

	return f, nil
}

// present reports whether a file was actually chosen; browsers submit an empty part otherwise
func (a *AttachmentInput) present() bool {
	return a != nil && a.Filename != ""
}

func (s *CurationService) validateAttachment(att *AttachmentInput) error {
	if !att.present() {
		return nil
	}
	if !storage.HasExtension(att.Filename, s.upload.AllowedExtensions) {
		return domain.ErrInvalidAttachment
	}
	if att.Size > s.upload.MaxBytes {
		return domain.ErrFileTooLarge
	}
	return nil
}

// stage writes the upload under a temporary name, enforcing the size ceiling on the bytes actually read
func (s *CurationService) stage(ctx context.Context, att *AttachmentInput) (*storage.Staged, error) {
	staged, err := s.store.Stage(ctx, att.Filename, io.LimitReader(att.Content, s.upload.MaxBytes+1))
	if err != nil {
		return nil, err
	}
	if staged.Size > s.upload.MaxBytes {
		s.discard(ctx, staged)
		return nil, domain.ErrFileTooLarge
	}
	return staged, nil
}

func (s *CurationService) discard(ctx context.Context, staged *storage.Staged) {
	if staged == nil {
		return
	}
	if err := s.store.Discard(ctx, staged); err != nil {
		s.log.Warn(ctx, "integrity gap",
			"gap", domain.GapStaleStaging,
			"file", staged.TempName,
			"error", err,
		)
	}
}

// removeAfterCommit deletes a file no record references any more.
// A failure leaves an orphan, never a dangling reference.
func (s *CurationService) removeAfterCommit(ctx context.Context, thesisID uint, name string) {
	if name == "" {
		return
	}
	if err := s.store.Delete(ctx, name); err != nil {
		s.log.Warn(ctx, "integrity gap",
			"gap", domain.GapOrphanFile,
			"thesis_id", thesisID,
			"file", name,
			"error", err,
		)
	}
}

// Create adds a thesis, optionally with a PDF attachment
func (s *CurationService) Create(ctx context.Context, session *domain.Session, input ThesisInput, att *AttachmentInput) (*models.Thesis, error) {
	if session == nil {
		return nil, domain.ErrUnauthorized
	}

	fields, err := validateThesisInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.validateAttachment(att); err != nil {
		return nil, err
	}

	var staged *storage.Staged
	if att.present() {
		if staged, err = s.stage(ctx, att); err != nil {
			return nil, err
		}
	}

	thesis := &models.Thesis{}
	fields.applyTo(thesis)

	err = s.thesisRepo.Transaction(ctx, func(tx repositories.ThesisRepository) error {
		if staged != nil {
			name := staged.Name
			thesis.PDFFilename = &name
		}
		if err := tx.Create(ctx, thesis); err != nil {
			return err
		}
		if staged != nil {
			return s.store.Promote(ctx, staged)
		}
		return nil
	})
	if err != nil {
		s.discard(ctx, staged)
		return nil, err
	}

	s.log.Info(ctx, "thesis created",
		"thesis_id", thesis.ID,
		"username", session.Username,
		"attachment", thesis.AttachmentName(),
	)
	return thesis, nil
}

// Update replaces every field of a thesis. A new attachment replaces the old one
// all-or-nothing: the old file is removed only after the record update commits.
func (s *CurationService) Update(ctx context.Context, session *domain.Session, id uint, input ThesisInput, att *AttachmentInput) (*models.Thesis, error) {
	if session == nil {
		return nil, domain.ErrUnauthorized
	}

	fields, err := validateThesisInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.validateAttachment(att); err != nil {
		return nil, err
	}

	// Fail fast before spending an upload on a missing record.
	if _, err := s.thesisRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var staged *storage.Staged
	if att.present() {
		if staged, err = s.stage(ctx, att); err != nil {
			return nil, err
		}
	}

	var (
		thesis  *models.Thesis
		oldName string
	)
	err = s.thesisRepo.Transaction(ctx, func(tx repositories.ThesisRepository) error {
		current, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}

		fields.applyTo(current)
		if staged != nil {
			oldName = current.AttachmentName()
			name := staged.Name
			current.PDFFilename = &name
		}
		if err := tx.Update(ctx, current); err != nil {
			return err
		}
		if staged != nil {
			if err := s.store.Promote(ctx, staged); err != nil {
				return err
			}
		}

		thesis = current
		return nil
	})
	if err != nil {
		s.discard(ctx, staged)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if staged != nil && oldName != staged.Name {
		s.removeAfterCommit(ctx, thesis.ID, oldName)
	}

	s.log.Info(ctx, "thesis updated",
		"thesis_id", thesis.ID,
		"username", session.Username,
		"attachment_replaced", staged != nil,
	)
	return thesis, nil
}

// Delete removes a thesis and then its attachment
func (s *CurationService) Delete(ctx context.Context, session *domain.Session, id uint) error {
	if session == nil {
		return domain.ErrUnauthorized
	}

	var oldName string
	err := s.thesisRepo.Transaction(ctx, func(tx repositories.ThesisRepository) error {
		current, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		oldName = current.AttachmentName()
		return tx.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	s.removeAfterCommit(ctx, id, oldName)

	s.log.Info(ctx, "thesis deleted", "thesis_id", id, "username", session.Username)
	return nil
}
