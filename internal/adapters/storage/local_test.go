package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalStore(t *testing.T) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func readAll(t *testing.T, s Store, name string) string {
	t.Helper()
	rc, size, err := s.Open(context.Background(), name)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), size)
	return string(data)
}

func TestLocalStore_SaveOpenDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestLocalStore(t)

	name, err := s.Save(ctx, "Reef Fish.pdf", strings.NewReader("%PDF-1.4 reef"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, "_Reef_Fish.pdf"))

	ok, err := s.Exists(ctx, name)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "%PDF-1.4 reef", readAll(t, s, name))

	require.NoError(t, s.Delete(ctx, name))
	ok, err = s.Exists(ctx, name)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = s.Open(ctx, name)
	assert.ErrorIs(t, err, ErrNotExist)

	// deleting twice is fine
	assert.NoError(t, s.Delete(ctx, name))
}

func TestLocalStore_StagePromote(t *testing.T) {
	ctx := context.Background()
	s := newTestLocalStore(t)

	staged, err := s.Stage(ctx, "paper.pdf", strings.NewReader("content"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), staged.Size)
	assert.False(t, staged.Promoted())

	ok, err := s.Exists(ctx, staged.Name)
	require.NoError(t, err)
	assert.False(t, ok, "staged file must not be visible under its final name")

	files, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, files[0].Staging)

	require.NoError(t, s.Promote(ctx, staged))
	assert.True(t, staged.Promoted())
	assert.Equal(t, "content", readAll(t, s, staged.Name))

	files, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, staged.Name, files[0].Name)
	assert.False(t, files[0].Staging)
}

func TestLocalStore_Discard(t *testing.T) {
	ctx := context.Background()

	t.Run("before promote", func(t *testing.T) {
		s := newTestLocalStore(t)
		staged, err := s.Stage(ctx, "paper.pdf", strings.NewReader("x"))
		require.NoError(t, err)

		require.NoError(t, s.Discard(ctx, staged))
		files, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("after promote", func(t *testing.T) {
		s := newTestLocalStore(t)
		staged, err := s.Stage(ctx, "paper.pdf", strings.NewReader("x"))
		require.NoError(t, err)
		require.NoError(t, s.Promote(ctx, staged))

		require.NoError(t, s.Discard(ctx, staged))
		files, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("nil", func(t *testing.T) {
		s := newTestLocalStore(t)
		assert.NoError(t, s.Discard(ctx, nil))
	})
}

func TestLocalStore_PromoteRefusesOverwrite(t *testing.T) {
	ctx := context.Background()
	s := newTestLocalStore(t)

	staged, err := s.Stage(ctx, "paper.pdf", strings.NewReader("new"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), staged.Name), []byte("old"), 0o640))

	assert.Error(t, s.Promote(ctx, staged))
	assert.Equal(t, "old", readAll(t, s, staged.Name))
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s, err := NewLocalStore(filepath.Join(root, "uploads"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "secret.txt"), []byte("secret"), 0o600))

	for _, name := range []string{"../secret.txt", "..", "/etc/passwd", `..\secret.txt`} {
		_, _, err := s.Open(ctx, name)
		assert.ErrorIs(t, err, ErrInvalidName, name)

		_, err = s.Exists(ctx, name)
		assert.ErrorIs(t, err, ErrInvalidName, name)

		assert.ErrorIs(t, s.Delete(ctx, name), ErrInvalidName, name)
	}

	_, err = os.Stat(filepath.Join(root, "secret.txt"))
	assert.NoError(t, err)
}

func TestLocalStore_OpenDirectoryIsNotAFile(t *testing.T) {
	ctx := context.Background()
	s := newTestLocalStore(t)
	require.NoError(t, os.Mkdir(filepath.Join(s.Dir(), "subdir"), 0o750))

	_, _, err := s.Open(ctx, "subdir")
	assert.ErrorIs(t, err, ErrNotExist)

	ok, err := s.Exists(ctx, "subdir")
	require.NoError(t, err)
	assert.False(t, ok)

	files, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, files)
}
