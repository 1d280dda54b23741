// Package databasetest opens throwaway migrated databases for tests.
package databasetest

import (
	"path/filepath"
	"testing"

	"terminfinder-api/core/config"
	"terminfinder-api/core/constants"
	"terminfinder-api/core/database"
)

// New returns a migrated sqlite3 database in a temporary directory. It is
// closed when the test finishes.
func New(t *testing.T) database.Database {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver:       constants.DatabaseDriverSQLite,
		Path:         filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 8,
		MaxIdleConns: 8,
		AutoMigrate:  true,
	}
	db, err := database.InitDB(cfg)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
