package db_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/realbLanK993/water/internal/db"
)

func TestApplyMigrationsIdempotentAndCreatesIndexes(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "water.db")
	sqldb, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("first apply migrations: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("second apply migrations: %v", err)
	}

	var migrationCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&migrationCount); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if migrationCount != 1 {
		t.Fatalf("expected 1 migration version, got %d", migrationCount)
	}

	for _, table := range []string{"intake_logs", "settings"} {
		var count int
		if err := sqldb.QueryRow(`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&count); err != nil {
			t.Fatalf("check %s table: %v", table, err)
		}
		if count != 1 {
			t.Fatalf("expected %s table to exist", table)
		}
	}

	for _, index := range []string{"idx_intake_logs_date", "idx_intake_logs_timestamp"} {
		var count int
		if err := sqldb.QueryRow(`SELECT COUNT(1) FROM sqlite_master WHERE type = 'index' AND name = ?`, index).Scan(&count); err != nil {
			t.Fatalf("check %s index: %v", index, err)
		}
		if count != 1 {
			t.Fatalf("expected %s index to exist", index)
		}
	}
}

func TestSettingsTableHoldsSingleRow(t *testing.T) {
	t.Parallel()

	sqldb, err := db.Open(filepath.Join(t.TempDir(), "water.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	if _, err := sqldb.Exec(`INSERT INTO settings(id, glass_size_ml, daily_goal_ml, monthly_goal_ml, reminder_interval_minutes) VALUES(1, 250, 2000, 60000, 20)`); err != nil {
		t.Fatalf("insert settings row: %v", err)
	}
	if _, err := sqldb.Exec(`INSERT INTO settings(id, glass_size_ml, daily_goal_ml, monthly_goal_ml, reminder_interval_minutes) VALUES(2, 250, 2000, 60000, 20)`); err == nil {
		t.Fatalf("expected second settings row to be rejected")
	}
}

func TestOpenMissingDirectoryIsUnavailable(t *testing.T) {
	t.Parallel()

	_, err := db.Open(filepath.Join(t.TempDir(), "missing", "water.db"))
	if err == nil {
		t.Fatalf("expected open to fail for missing directory")
	}
	if !errors.Is(err, db.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestIntakeLogsRejectGlassCountOutsideRange(t *testing.T) {
	t.Parallel()

	sqldb, err := db.Open(filepath.Join(t.TempDir(), "water.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	const insert = `INSERT INTO intake_logs(date, timestamp, quantity_ml, glasses) VALUES('2026-05-20', 1779260400000, 250, ?)`
	for _, glasses := range []int{1, 4} {
		if _, err := sqldb.Exec(insert, glasses); err != nil {
			t.Fatalf("insert %d glasses: %v", glasses, err)
		}
	}
	for _, glasses := range []int{0, 5} {
		if _, err := sqldb.Exec(insert, glasses); err == nil {
			t.Fatalf("expected %d glasses to be rejected", glasses)
		}
	}
}
