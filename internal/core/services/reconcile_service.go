package services

import (
	"context"
	"errors"
	"time"

	"bu-ethesis/internal/adapters/persistence/repositories"
	"bu-ethesis/internal/adapters/storage"
	"bu-ethesis/internal/core/domain"
	"bu-ethesis/internal/pkg/logging"
)

// DefaultReconcileGrace protects files of uploads that may still be in flight
const DefaultReconcileGrace = time.Hour

// ReconcileService compares attachment references with stored files
type ReconcileService struct {
	thesisRepo repositories.ThesisRepository
	store      storage.Store
	log        logging.Logger
	now        func() time.Time
}

// NewReconcileService creates a new reconcile service
func NewReconcileService(thesisRepo repositories.ThesisRepository, store storage.Store, log logging.Logger) *ReconcileService {
	return &ReconcileService{
		thesisRepo: thesisRepo,
		store:      store,
		log:        log.With("component", "reconcile"),
		now:        time.Now,
	}
}

// ReconcileOptions controls a reconcile run
type ReconcileOptions struct {
	// Prune deletes orphan and stale staging files older than Grace.
	Prune bool
	Grace time.Duration
}

// DanglingReference is a thesis pointing at a file that does not exist
type DanglingReference struct {
	ThesisID uint   `json:"thesis_id"`
	File     string `json:"file"`
}

// ReconcileReport lists every integrity gap found
type ReconcileReport struct {
	References   int                 `json:"references"`
	Files        int                 `json:"files"`
	Dangling     []DanglingReference `json:"dangling"`
	Orphans      []storage.FileInfo  `json:"orphans"`
	StaleStaging []storage.FileInfo  `json:"stale_staging"`
	Pruned       []string            `json:"pruned"`
}

// Clean reports whether no gap was found
func (r *ReconcileReport) Clean() bool {
	return len(r.Dangling) == 0 && len(r.Orphans) == 0 && len(r.StaleStaging) == 0
}

// Reconcile reports dangling references and orphan files. Records are never modified.
func (s *ReconcileService) Reconcile(ctx context.Context, opts ReconcileOptions) (*ReconcileReport, error) {
	if opts.Grace <= 0 {
		opts.Grace = DefaultReconcileGrace
	}

	refs, err := s.thesisRepo.ListAttachmentNames(ctx)
	if err != nil {
		return nil, err
	}
	files, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	report := &ReconcileReport{References: len(refs), Files: len(files)}

	stored := make(map[string]struct{}, len(files))
	for _, f := range files {
		if !f.Staging {
			stored[f.Name] = struct{}{}
		}
	}

	referenced := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		referenced[ref.PDFFilename] = struct{}{}
		if _, ok := stored[ref.PDFFilename]; !ok {
			report.Dangling = append(report.Dangling, DanglingReference{ThesisID: ref.ThesisID, File: ref.PDFFilename})
			s.log.Warn(ctx, "integrity gap", "gap", domain.GapDanglingReference, "thesis_id", ref.ThesisID, "file", ref.PDFFilename)
		}
	}

	cutoff := s.now().Add(-opts.Grace)
	var prunable []storage.FileInfo
	for _, f := range files {
		switch {
		case f.Staging:
			// Younger staging files belong to uploads in progress.
			if f.ModTime.Before(cutoff) {
				report.StaleStaging = append(report.StaleStaging, f)
				prunable = append(prunable, f)
				s.log.Warn(ctx, "integrity gap", "gap", domain.GapStaleStaging, "file", f.Name)
			}
		default:
			if _, ok := referenced[f.Name]; ok {
				continue
			}
			report.Orphans = append(report.Orphans, f)
			s.log.Warn(ctx, "integrity gap", "gap", domain.GapOrphanFile, "file", f.Name)
			if f.ModTime.Before(cutoff) {
				prunable = append(prunable, f)
			}
		}
	}

	if !opts.Prune {
		return report, nil
	}

	var errs []error
	for _, f := range prunable {
		if err := s.store.Delete(ctx, f.Name); err != nil {
			errs = append(errs, err)
			s.log.Error(ctx, "prune failed", "file", f.Name, "error", err)
			continue
		}
		report.Pruned = append(report.Pruned, f.Name)
		s.log.Info(ctx, "pruned file", "file", f.Name)
	}

	return report, errors.Join(errs...)
}
