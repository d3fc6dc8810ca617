package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"profile-roast/internal/models"
)

func TestOpen_CreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	db, err := Open(path, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.True(t, db.Migrator().HasTable(&models.CacheEntry{}))
	require.NoError(t, db.Create(&models.CacheEntry{Key: "k", Data: "{}", Timestamp: 1}).Error)
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	db, err := Open(path, false)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.CacheEntry{Key: "k", Data: "{}", Timestamp: 1}).Error)
	require.NoError(t, Close(db))

	db, err = Open(path, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	require.NoError(t, Migrate(db))

	var count int64
	require.NoError(t, db.Model(&models.CacheEntry{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}
