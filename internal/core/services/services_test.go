package services

import (
	"context"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"bu-ethesis/internal/adapters/persistence/models"
	"bu-ethesis/internal/adapters/persistence/repositories"
	"bu-ethesis/internal/adapters/storage"
	"bu-ethesis/internal/config"
	"bu-ethesis/internal/core/domain"
	"bu-ethesis/internal/pkg/logging"
	"bu-ethesis/internal/testutil"

	"github.com/stretchr/testify/require"
)

type testEnv struct {
	cfg        *config.Config
	store      *faultyStore
	local      *storage.LocalStore
	thesisRepo repositories.ThesisRepository
	auth       *AuthService
	catalog    *CatalogService
	curation   *CurationService
	reconcile  *ReconcileService
}

// faultyStore lets a test break single store operations
type faultyStore struct {
	storage.Store
	promoteErr error
	deleteErr  error
}

func (f *faultyStore) Promote(ctx context.Context, staged *storage.Staged) error {
	if f.promoteErr != nil {
		return f.promoteErr
	}
	return f.Store.Promote(ctx, staged)
}

func (f *faultyStore) Delete(ctx context.Context, name string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.Store.Delete(ctx, name)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewDB(t)
	local, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{
		AppMode: "dev",
		Session: config.SessionConfig{Secret: "test-secret", TTL: time.Hour},
		Upload: config.UploadConfig{
			MaxBytes:          1 << 20,
			AllowedExtensions: []string{"pdf"},
		},
		Admin: config.AdminConfig{Username: "admin", Password: "admin123"},
	}
	require.NoError(t, config.NewSeeder(db, cfg.Admin).Run(context.Background()))

	store := &faultyStore{Store: local}
	thesisRepo := repositories.NewThesisRepository(db)
	log := logging.Discard()

	return &testEnv{
		cfg:        cfg,
		store:      store,
		local:      local,
		thesisRepo: thesisRepo,
		auth:       NewAuthService(repositories.NewUserRepository(db), repositories.NewSessionRepository(db), cfg, log),
		catalog:    NewCatalogService(thesisRepo, store, log),
		curation:   NewCurationService(thesisRepo, store, cfg.Upload, log),
		reconcile:  NewReconcileService(thesisRepo, store, log),
	}
}

func (e *testEnv) login(t *testing.T) *domain.Session {
	t.Helper()
	sess, _, err := e.auth.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	return sess
}

// storedFiles lists the names of committed files, staging files included
func (e *testEnv) storedFiles(t *testing.T) []string {
	t.Helper()
	files, err := e.local.List(context.Background())
	require.NoError(t, err)
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

func reefFish() ThesisInput {
	return ThesisInput{
		Title:    "Reef Fish Diversity",
		Authors:  "J. Santos",
		Year:     "2023",
		Adviser:  "Dr. Cruz",
		Abstract: "...",
		Keywords: "marine,biology",
	}
}

func pdf(name, content string) *AttachmentInput {
	return &AttachmentInput{
		Filename: name,
		Size:     int64(len(content)),
		Content:  strings.NewReader(content),
	}
}

func readDownload(t *testing.T, d *Download) string {
	t.Helper()
	defer d.Body.Close()
	data, err := io.ReadAll(d.Body)
	require.NoError(t, err)
	return string(data)
}

func mustCreate(t *testing.T, e *testEnv, sess *domain.Session, in ThesisInput, att *AttachmentInput) *models.Thesis {
	t.Helper()
	th, err := e.curation.Create(context.Background(), sess, in, att)
	require.NoError(t, err)
	return th
}
