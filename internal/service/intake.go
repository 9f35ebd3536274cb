package service

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/realbLanK993/water/internal/model"
)

const (
	MinGlassesPerLog = 1
	MaxGlassesPerLog = 4
)

const selectLogColumns = `SELECT id, date, timestamp, quantity_ml, glasses FROM intake_logs`

type AddIntakeLogInput struct {
	Glasses int
	// QuantityPerGlassMl overrides the configured glass size when > 0.
	QuantityPerGlassMl int
	LoggedAt           time.Time
}

// IntakeLogPatch carries the fields to change; nil fields are kept.
type IntakeLogPatch struct {
	Date       *string
	Timestamp  *time.Time
	QuantityMl *int
	Glasses    *int
}

func AddIntakeLog(db *sql.DB, in AddIntakeLogInput) (int64, error) {
	if err := validateGlasses(in.Glasses); err != nil {
		return 0, err
	}
	if in.QuantityPerGlassMl < 0 {
		return 0, fmt.Errorf("%w: quantity per glass must be > 0", ErrValidation)
	}
	perGlass := in.QuantityPerGlassMl
	if perGlass == 0 {
		settings, err := GetSettings(db)
		if err != nil {
			return 0, err
		}
		perGlass = settings.GlassSizeMl
	}
	if in.LoggedAt.IsZero() {
		in.LoggedAt = time.Now()
	}

	id, err := insertLog(db, FormatDate(in.LoggedAt), in.LoggedAt, in.Glasses*perGlass, in.Glasses)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func GetLogsByDate(db *sql.DB, date string) ([]model.IntakeLog, error) {
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}
	rows, err := db.Query(selectLogColumns+` WHERE date = ? ORDER BY id ASC`, date)
	if err != nil {
		return nil, fmt.Errorf("%w: list logs for %s: %w", ErrReadFailed, date, err)
	}
	return scanLogs(rows)
}

// GetLogsByDateRange returns logs whose date lies in [startDate, endDate].
func GetLogsByDateRange(db *sql.DB, startDate, endDate string) ([]model.IntakeLog, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, fmt.Errorf("%w: start date must be <= end date", ErrValidation)
	}
	rows, err := db.Query(selectLogColumns+` WHERE date >= ? AND date <= ? ORDER BY date ASC, id ASC`, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: list logs from %s to %s: %w", ErrReadFailed, startDate, endDate, err)
	}
	return scanLogs(rows)
}

func GetAllLogs(db *sql.DB) ([]model.IntakeLog, error) {
	rows, err := db.Query(selectLogColumns + ` ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("%w: list logs: %w", ErrReadFailed, err)
	}
	return scanLogs(rows)
}

// DeleteLog removes a log. Deleting an id that does not exist is a no-op.
func DeleteLog(db *sql.DB, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: log id must be > 0", ErrValidation)
	}
	if _, err := db.Exec(`DELETE FROM intake_logs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("%w: delete log %d: %w", ErrWriteFailed, id, err)
	}
	return nil
}

// UpdateLog applies patch in one transaction. Changing Glasses without
// QuantityMl rescales the quantity by the stored per-glass volume.
func UpdateLog(db *sql.DB, id int64, patch IntakeLogPatch) error {
	if id <= 0 {
		return fmt.Errorf("%w: log id must be > 0", ErrValidation)
	}
	if err := patch.validate(); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("%w: begin update log %d: %w", ErrWriteFailed, id, err)
	}
	current, err := getLog(tx, id)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	if patch.Date != nil {
		current.Date = *patch.Date
	}
	if patch.Timestamp != nil {
		current.Timestamp = *patch.Timestamp
	}
	if patch.Glasses != nil && patch.QuantityMl == nil {
		// Keep quantity_ml = glasses × per-glass volume.
		perGlass := current.QuantityMl / current.Glasses
		if perGlass < 1 {
			perGlass = 1
		}
		current.QuantityMl = perGlass * *patch.Glasses
	}
	if patch.QuantityMl != nil {
		current.QuantityMl = *patch.QuantityMl
	}
	if patch.Glasses != nil {
		current.Glasses = *patch.Glasses
	}

	if _, err := tx.Exec(`
UPDATE intake_logs
SET date = ?, timestamp = ?, quantity_ml = ?, glasses = ?
WHERE id = ?
`, current.Date, current.Timestamp.UnixMilli(), current.QuantityMl, current.Glasses, id); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: update log %d: %w", ErrWriteFailed, id, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit update log %d: %w", ErrWriteFailed, id, err)
	}
	return nil
}

// GetLastIntakeTime reports the newest log timestamp; ok is false when no
// logs exist.
func GetLastIntakeTime(db *sql.DB) (time.Time, bool, error) {
	var ms int64
	err := db.QueryRow(`SELECT timestamp FROM intake_logs ORDER BY timestamp DESC, id DESC LIMIT 1`).Scan(&ms)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: last intake time: %w", ErrReadFailed, err)
	}
	return time.UnixMilli(ms), true, nil
}

// ClearAllData empties logs and settings in one transaction. The id sequence
// is kept so ids are never reused.
func ClearAllData(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("%w: begin clear data: %w", ErrWriteFailed, err)
	}
	for _, table := range []string{"intake_logs", "settings"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%w: clear %s: %w", ErrWriteFailed, table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit clear data: %w", ErrWriteFailed, err)
	}
	return nil
}

func (p IntakeLogPatch) validate() error {
	if p.Date != nil {
		if _, err := ParseDate(*p.Date); err != nil {
			return err
		}
	}
	if p.Timestamp != nil && p.Timestamp.IsZero() {
		return fmt.Errorf("%w: timestamp is required", ErrValidation)
	}
	if p.QuantityMl != nil {
		if err := validatePositiveInt("quantity", *p.QuantityMl); err != nil {
			return err
		}
	}
	if p.Glasses != nil {
		if err := validateGlasses(*p.Glasses); err != nil {
			return err
		}
	}
	return nil
}

func validateGlasses(glasses int) error {
	if glasses < MinGlassesPerLog || glasses > MaxGlassesPerLog {
		return fmt.Errorf("%w: glasses must be between %d and %d", ErrValidation, MinGlassesPerLog, MaxGlassesPerLog)
	}
	return nil
}

func insertLog(ex execer, date string, ts time.Time, quantityMl, glasses int) (int64, error) {
	res, err := ex.Exec(`
INSERT INTO intake_logs(date, timestamp, quantity_ml, glasses)
VALUES(?, ?, ?, ?)
`, date, ts.UnixMilli(), quantityMl, glasses)
	if err != nil {
		return 0, fmt.Errorf("%w: insert intake log: %w", ErrWriteFailed, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: resolve inserted log id: %w", ErrWriteFailed, err)
	}
	return id, nil
}

func getLog(q queryer, id int64) (*model.IntakeLog, error) {
	var l model.IntakeLog
	var ms int64
	err := q.QueryRow(selectLogColumns+` WHERE id = ?`, id).Scan(&l.ID, &l.Date, &ms, &l.QuantityMl, &l.Glasses)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: log %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get log %d: %w", ErrReadFailed, id, err)
	}
	l.Timestamp = time.UnixMilli(ms)
	return &l, nil
}

func scanLogs(rows *sql.Rows) ([]model.IntakeLog, error) {
	defer rows.Close()

	logs := make([]model.IntakeLog, 0)
	for rows.Next() {
		var l model.IntakeLog
		var ms int64
		if err := rows.Scan(&l.ID, &l.Date, &ms, &l.QuantityMl, &l.Glasses); err != nil {
			return nil, fmt.Errorf("%w: scan intake log: %w", ErrReadFailed, err)
		}
		l.Timestamp = time.UnixMilli(ms)
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate intake logs: %w", ErrReadFailed, err)
	}
	return logs, nil
}
