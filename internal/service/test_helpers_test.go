package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/realbLanK993/water/internal/db"
	"github.com/realbLanK993/water/internal/service"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "water.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

func intPtr(v int) *int {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}

// logAt writes a log with an explicit per-glass volume at the given instant.
func logAt(t *testing.T, sqldb *sql.DB, at time.Time, glasses, perGlass int) int64 {
	t.Helper()
	id, err := service.AddIntakeLog(sqldb, service.AddIntakeLogInput{
		Glasses:            glasses,
		QuantityPerGlassMl: perGlass,
		LoggedAt:           at,
	})
	if err != nil {
		t.Fatalf("add intake log at %s: %v", at.Format(time.RFC3339), err)
	}
	return id
}
