// Package testutil builds throwaway databases and stores for package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"bu-ethesis/internal/adapters/persistence/models"
	"bu-ethesis/internal/pkg/password"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated SQLite database in the test's temp dir.
// It also drops the bcrypt cost so credential tests stay fast.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	password.Cost = bcrypt.MinCost
	t.Cleanup(func() { password.Cost = password.DefaultCost })

	dsn := filepath.Join(t.TempDir(), "ethesis.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, models.AutoMigrate(db))
	return db
}

// StrPtr returns a pointer to s
func StrPtr(s string) *string {
	return &s
}
