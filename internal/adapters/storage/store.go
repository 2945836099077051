// Package storage keeps uploaded thesis PDFs in a single flat namespace.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	// ErrNotExist is returned when a storage name resolves to no file
	ErrNotExist = errors.New("attachment does not exist")
	// ErrInvalidName is returned for names that are not plain base names
	ErrInvalidName = errors.New("invalid attachment name")
)

// Store stores, stages, and serves attachment files
type Store interface {
	// Save writes content under a freshly generated storage name and returns it.
	Save(ctx context.Context, originalName string, content io.Reader) (string, error)

	// Stage writes content under a temporary name. The file only becomes
	// visible under Staged.Name after Promote.
	Stage(ctx context.Context, originalName string, content io.Reader) (*Staged, error)
	Promote(ctx context.Context, staged *Staged) error
	// Discard removes a staged file, promoted or not. Missing files are ignored.
	Discard(ctx context.Context, staged *Staged) error

	Open(ctx context.Context, name string) (io.ReadCloser, int64, error)
	Exists(ctx context.Context, name string) (bool, error)
	// Delete removes the file; a missing file is not an error.
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]FileInfo, error)
}

// Staged is an uploaded file waiting to be promoted to its final name
type Staged struct {
	Name     string
	TempName string
	Size     int64
	promoted bool
}

// Promoted reports whether the file already lives under its final name
func (s *Staged) Promoted() bool {
	return s.promoted
}

// FileInfo describes one stored file
type FileInfo struct {
	Name    string
	Size    int64
	ModTime time.Time
	Staging bool
}

var (
	_ Store = (*LocalStore)(nil)
	_ Store = (*S3Store)(nil)
)
