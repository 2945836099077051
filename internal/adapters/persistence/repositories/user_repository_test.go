package repositories

import (
	"context"
	"testing"

	"bu-ethesis/internal/adapters/persistence/models"
	"bu-ethesis/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository_GetByUsernameIsCaseSensitive(t *testing.T) {
	repo := NewUserRepository(testutil.NewDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Username: "admin", Password: "hash"}))

	u, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Username)

	_, err = repo.GetByUsername(ctx, "Admin")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	exists, err := repo.ExistsByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsername(ctx, "ADMIN")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	repo := NewUserRepository(testutil.NewDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Username: "admin", Password: "hash"}))
	assert.Error(t, repo.Create(ctx, &models.User{Username: "admin", Password: "other"}))
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	repo := NewUserRepository(testutil.NewDB(t))
	ctx := context.Background()

	u := &models.User{Username: "admin", Password: "old"}
	require.NoError(t, repo.Create(ctx, u))
	require.NoError(t, repo.UpdatePassword(ctx, u.ID, "new"))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Password)

	assert.ErrorIs(t, repo.UpdatePassword(ctx, u.ID+1, "x"), gorm.ErrRecordNotFound)
}
