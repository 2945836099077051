package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// LocalStore keeps attachments in one flat directory on disk
type LocalStore struct {
	dir string
	now func() time.Time
}

// NewLocalStore creates the directory if needed and returns a store rooted there
func NewLocalStore(dir string) (*LocalStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve upload dir %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", abs, err)
	}
	return &LocalStore{dir: abs, now: time.Now}, nil
}

// Dir returns the absolute upload directory
func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) path(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name), nil
}

// Save writes content under a new storage name
func (s *LocalStore) Save(ctx context.Context, originalName string, content io.Reader) (string, error) {
	staged, err := s.Stage(ctx, originalName, content)
	if err != nil {
		return "", err
	}
	if err := s.Promote(ctx, staged); err != nil {
		_ = s.Discard(ctx, staged)
		return "", err
	}
	return staged.Name, nil
}

// Stage writes content to a hidden temporary file
func (s *LocalStore) Stage(ctx context.Context, originalName string, content io.Reader) (*Staged, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	staged := &Staged{
		Name:     NewStorageName(originalName, s.now()),
		TempName: newStagingName(),
	}

	f, err := os.OpenFile(filepath.Join(s.dir, staged.TempName), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return nil, fmt.Errorf("create staging file: %w", err)
	}

	n, copyErr := io.Copy(f, content)
	syncErr := f.Sync()
	closeErr := f.Close()
	if err := errors.Join(copyErr, syncErr, closeErr); err != nil {
		_ = os.Remove(filepath.Join(s.dir, staged.TempName))
		return nil, fmt.Errorf("write staging file: %w", err)
	}

	staged.Size = n
	return staged, nil
}

// Promote moves a staged file to its final name
func (s *LocalStore) Promote(ctx context.Context, staged *Staged) error {
	if staged.promoted {
		return nil
	}
	final, err := s.path(staged.Name)
	if err != nil {
		return err
	}
	if _, err := os.Lstat(final); err == nil {
		return fmt.Errorf("promote %s: %w", staged.Name, fs.ErrExist)
	}
	if err := os.Rename(filepath.Join(s.dir, staged.TempName), final); err != nil {
		return fmt.Errorf("promote %s: %w", staged.Name, err)
	}
	staged.promoted = true
	return nil
}

// Discard removes a staged file wherever it currently lives
func (s *LocalStore) Discard(ctx context.Context, staged *Staged) error {
	if staged == nil {
		return nil
	}
	if staged.promoted {
		return s.Delete(ctx, staged.Name)
	}
	err := os.Remove(filepath.Join(s.dir, staged.TempName))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Open opens a stored file for reading
func (s *LocalStore) Open(ctx context.Context, name string) (io.ReadCloser, int64, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, 0, err
	}

	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, ErrNotExist
		}
		return nil, 0, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, err
	}
	if !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, 0, ErrNotExist
	}
	return f, info.Size(), nil
}

// Exists reports whether a regular file with that name is stored
func (s *LocalStore) Exists(ctx context.Context, name string) (bool, error) {
	p, err := s.path(name)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// Delete removes a stored file; missing files are ignored
func (s *LocalStore) Delete(ctx context.Context, name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// List lists every regular file in the directory, staging files included
func (s *LocalStore) List(ctx context.Context) ([]FileInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	files := make([]FileInfo, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		files = append(files, FileInfo{
			Name:    e.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Staging: isStagingName(e.Name()),
		})
	}
	return files, nil
}
