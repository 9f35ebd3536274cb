package service

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type BackupInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

type DoctorReport struct {
	MalformedDateRows  int `json:"malformed_date_rows"`
	UnevenQuantityRows int `json:"uneven_quantity_rows"`
	DuplicateLogRows   int `json:"duplicate_log_rows"`
	FixedDateRows      int `json:"fixed_date_rows,omitempty"`
}

func (r DoctorReport) HasIssues() bool {
	return r.MalformedDateRows > 0 || r.UnevenQuantityRows > 0 || r.DuplicateLogRows > 0
}

const backupPrefix = "water-"

// BackupFileName names a backup taken at now, e.g. water-20260520-081500.db.
func BackupFileName(now time.Time) string {
	return backupPrefix + now.Format("20060102-150405") + ".db"
}

// CreateBackup copies the database file to outPath and writes a .sha256
// sidecar next to it.
func CreateBackup(dbPath, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(dbPath) == "" || strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("%w: db path and backup path are required", ErrValidation)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("%w: create backup directory: %w", ErrWriteFailed, err)
	}
	if err := copyFile(dbPath, outPath); err != nil {
		return BackupInfo{}, err
	}
	sum, err := fileSHA256(outPath)
	if err != nil {
		return BackupInfo{}, err
	}
	if err := os.WriteFile(outPath+".sha256", []byte(sum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("%w: write checksum for %s: %w", ErrWriteFailed, outPath, err)
	}
	st, err := os.Stat(outPath)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("%w: stat backup %s: %w", ErrReadFailed, outPath, err)
	}
	return BackupInfo{Path: outPath, Checksum: sum, CreatedAt: st.ModTime(), SizeBytes: st.Size()}, nil
}

// RestoreBackup verifies the sidecar checksum when present and copies the
// backup over dbPath. An existing database is only replaced with force.
func RestoreBackup(backupPath, dbPath string, force bool) error {
	if strings.TrimSpace(backupPath) == "" || strings.TrimSpace(dbPath) == "" {
		return fmt.Errorf("%w: backup path and db path are required", ErrValidation)
	}
	if !force {
		if _, err := os.Stat(dbPath); err == nil {
			return fmt.Errorf("%w: database %s already exists; use --force to overwrite", ErrValidation, dbPath)
		}
	}
	if expected, err := os.ReadFile(backupPath + ".sha256"); err == nil {
		actual, err := fileSHA256(backupPath)
		if err != nil {
			return err
		}
		if strings.TrimSpace(string(expected)) != actual {
			return fmt.Errorf("%w: checksum mismatch for backup %s", ErrReadFailed, backupPath)
		}
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("%w: create db directory: %w", ErrWriteFailed, err)
	}
	return copyFile(backupPath, dbPath)
}

// ListBackups returns the .db files in dir, newest first.
func ListBackups(dir string) ([]BackupInfo, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read backup dir %s: %w", ErrReadFailed, dir, err)
	}
	out := make([]BackupInfo, 0)
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".db" {
			continue
		}
		full := filepath.Join(dir, f.Name())
		st, err := f.Info()
		if err != nil {
			continue
		}
		info := BackupInfo{Path: full, CreatedAt: st.ModTime(), SizeBytes: st.Size()}
		if b, err := os.ReadFile(full + ".sha256"); err == nil {
			info.Checksum = strings.TrimSpace(string(b))
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// RunDoctor checks stored logs: dates must parse as YYYY-MM-DD, quantities
// must split evenly across glasses, and no two logs may share timestamp and
// volume. With fix, malformed dates are re-derived from the timestamp.
func RunDoctor(db *sql.DB, fix bool) (DoctorReport, error) {
	report := DoctorReport{}

	rows, err := db.Query(`SELECT id, date, timestamp FROM intake_logs`)
	if err != nil {
		return report, fmt.Errorf("%w: doctor date query: %w", ErrReadFailed, err)
	}
	type badDate struct {
		id int64
		ms int64
	}
	malformed := make([]badDate, 0)
	for rows.Next() {
		var id, ms int64
		var date string
		if err := rows.Scan(&id, &date, &ms); err != nil {
			_ = rows.Close()
			return report, fmt.Errorf("%w: doctor date scan: %w", ErrReadFailed, err)
		}
		if _, err := time.Parse(dateLayout, date); err != nil {
			malformed = append(malformed, badDate{id: id, ms: ms})
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return report, fmt.Errorf("%w: doctor date iterate: %w", ErrReadFailed, err)
	}
	_ = rows.Close()
	report.MalformedDateRows = len(malformed)

	if err := db.QueryRow(`SELECT COUNT(1) FROM intake_logs WHERE quantity_ml % glasses != 0`).Scan(&report.UnevenQuantityRows); err != nil {
		return report, fmt.Errorf("%w: doctor quantity check: %w", ErrReadFailed, err)
	}

	if err := db.QueryRow(`
SELECT COALESCE(SUM(cnt-1),0) FROM (
  SELECT COUNT(*) AS cnt
  FROM intake_logs
  GROUP BY timestamp, quantity_ml, glasses
  HAVING cnt > 1
)
`).Scan(&report.DuplicateLogRows); err != nil {
		return report, fmt.Errorf("%w: doctor duplicate query: %w", ErrReadFailed, err)
	}

	if fix && len(malformed) > 0 {
		tx, err := db.Begin()
		if err != nil {
			return report, fmt.Errorf("%w: doctor fix begin tx: %w", ErrWriteFailed, err)
		}
		for _, m := range malformed {
			if _, err := tx.Exec(`UPDATE intake_logs SET date = ? WHERE id = ?`, FormatDate(time.UnixMilli(m.ms)), m.id); err != nil {
				_ = tx.Rollback()
				return report, fmt.Errorf("%w: doctor fix date row %d: %w", ErrWriteFailed, m.id, err)
			}
			report.FixedDateRows++
		}
		if err := tx.Commit(); err != nil {
			return report, fmt.Errorf("%w: doctor fix commit: %w", ErrWriteFailed, err)
		}
	}

	return report, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrReadFailed, src, err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrWriteFailed, dst, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("%w: copy %s to %s: %w", ErrWriteFailed, src, dst, err)
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("%w: sync %s: %w", ErrWriteFailed, dst, err)
	}
	return nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: open %s for checksum: %w", ErrReadFailed, path, err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("%w: hash %s: %w", ErrReadFailed, path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
