package service_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/realbLanK993/water/internal/db"
	"github.com/realbLanK993/water/internal/service"
)

func TestBackupRoundTrip(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "water.db")
	sqldb, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	logAt(t, sqldb, time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local), 2, 250)
	if err := sqldb.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}

	backupPath := filepath.Join(dir, "backups", service.BackupFileName(time.Date(2026, 5, 20, 8, 15, 0, 0, time.Local)))
	if filepath.Base(backupPath) != "water-20260520-081500.db" {
		t.Fatalf("unexpected backup name %s", filepath.Base(backupPath))
	}
	info, err := service.CreateBackup(dbPath, backupPath)
	if err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if info.Checksum == "" || info.SizeBytes == 0 {
		t.Fatalf("unexpected backup info: %+v", info)
	}
	if _, err := os.Stat(backupPath + ".sha256"); err != nil {
		t.Fatalf("checksum sidecar missing: %v", err)
	}

	backups, err := service.ListBackups(filepath.Dir(backupPath))
	if err != nil {
		t.Fatalf("list backups: %v", err)
	}
	if len(backups) != 1 || backups[0].Checksum != info.Checksum {
		t.Fatalf("unexpected backups: %+v", backups)
	}

	restored := filepath.Join(dir, "restored.db")
	if err := service.RestoreBackup(backupPath, restored, false); err != nil {
		t.Fatalf("restore backup: %v", err)
	}
	rdb, err := db.Open(restored)
	if err != nil {
		t.Fatalf("open restored db: %v", err)
	}
	defer rdb.Close()
	logs, err := service.GetLogsByDate(rdb, "2024-03-01")
	if err != nil {
		t.Fatalf("read restored logs: %v", err)
	}
	if len(logs) != 1 || logs[0].QuantityMl != 500 {
		t.Fatalf("unexpected restored logs: %+v", logs)
	}

	if err := service.RestoreBackup(backupPath, restored, false); !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected restore without force to refuse an existing target, got %v", err)
	}
}

func TestRestoreBackupDetectsChecksumMismatch(t *testing.T) {
	dir := t.TempDir()
	backupPath := filepath.Join(dir, "water.db")
	if err := os.WriteFile(backupPath, []byte("not a database"), 0o644); err != nil {
		t.Fatalf("write backup: %v", err)
	}
	if err := os.WriteFile(backupPath+".sha256", []byte("deadbeef\n"), 0o644); err != nil {
		t.Fatalf("write checksum: %v", err)
	}
	err := service.RestoreBackup(backupPath, filepath.Join(dir, "target.db"), true)
	if !errors.Is(err, service.ErrReadFailed) {
		t.Fatalf("expected checksum mismatch read failure, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "target.db")); !os.IsNotExist(statErr) {
		t.Fatalf("target must not be written on checksum mismatch")
	}
}

func TestRunDoctorDetectsAndFixes(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	at := time.Date(2024, 3, 5, 8, 30, 0, 0, time.Local)
	id := logAt(t, sqldb, at, 2, 250)
	logAt(t, sqldb, at, 2, 250)

	if _, err := sqldb.Exec(`UPDATE intake_logs SET date = '05/03/2024' WHERE id = ?`, id); err != nil {
		t.Fatalf("corrupt date: %v", err)
	}
	if _, err := sqldb.Exec(`INSERT INTO intake_logs(date, timestamp, quantity_ml, glasses) VALUES('2024-03-06', ?, 501, 2)`,
		at.AddDate(0, 0, 1).UnixMilli()); err != nil {
		t.Fatalf("insert uneven row: %v", err)
	}

	report, err := service.RunDoctor(sqldb, false)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if report.MalformedDateRows != 1 || report.UnevenQuantityRows != 1 || report.DuplicateLogRows != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if !report.HasIssues() {
		t.Fatalf("expected issues")
	}

	report, err = service.RunDoctor(sqldb, true)
	if err != nil {
		t.Fatalf("doctor fix: %v", err)
	}
	if report.FixedDateRows != 1 {
		t.Fatalf("expected 1 fixed row, got %+v", report)
	}
	logs, err := service.GetLogsByDate(sqldb, "2024-03-05")
	if err != nil {
		t.Fatalf("logs by date: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected repaired row back on 2024-03-05, got %d logs", len(logs))
	}

	report, err = service.RunDoctor(sqldb, false)
	if err != nil {
		t.Fatalf("doctor after fix: %v", err)
	}
	if report.MalformedDateRows != 0 {
		t.Fatalf("malformed dates remain: %+v", report)
	}
}

func TestListBackupsMissingDirIsReadFailure(t *testing.T) {
	_, err := service.ListBackups(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, service.ErrReadFailed) {
		t.Fatalf("expected read failure, got %v", err)
	}
}
