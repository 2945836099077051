package repositories

import (
	"context"
	"testing"
	"time"

	"bu-ethesis/internal/adapters/persistence/models"
	"bu-ethesis/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSessionRepository_Lifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	users := NewUserRepository(db)
	sessions := NewSessionRepository(db)
	ctx := context.Background()

	u := &models.User{Username: "admin", Password: "hash"}
	require.NoError(t, users.Create(ctx, u))

	live := &models.Session{ID: "live", UserID: u.ID, ExpiresAt: time.Now().Add(time.Hour)}
	other := &models.Session{ID: "other", UserID: u.ID, ExpiresAt: time.Now().Add(time.Hour)}
	expired := &models.Session{ID: "expired", UserID: u.ID, ExpiresAt: time.Now().Add(-time.Minute)}
	for _, s := range []*models.Session{live, other, expired} {
		require.NoError(t, sessions.Create(ctx, s))
	}

	got, err := sessions.GetActive(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, "admin", got.User.Username)

	_, err = sessions.GetActive(ctx, "expired")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, sessions.RevokeAllByUserID(ctx, u.ID, "live"))
	_, err = sessions.GetActive(ctx, "other")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = sessions.GetActive(ctx, "live")
	require.NoError(t, err)

	require.NoError(t, sessions.Revoke(ctx, "live"))
	require.NoError(t, sessions.Revoke(ctx, "live"))
	_, err = sessions.GetActive(ctx, "live")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, sessions.DeleteExpiredByUserID(ctx, u.ID, time.Now()))
	var count int64
	require.NoError(t, db.Model(&models.Session{}).Count(&count).Error)
	assert.Zero(t, count)
}
