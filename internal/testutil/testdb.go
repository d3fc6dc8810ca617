package testutil

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"profile-roast/internal/database"
)

// NewFileDB creates a migrated SQLite DB in a per-test temp directory.
// A file is used rather than ":memory:" because the pool holds no idle
// connections and an in-memory database would vanish between statements.
func NewFileDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "cache.db"), false)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
