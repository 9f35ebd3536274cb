package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/realbLanK993/water/internal/model"
)

// TimestampLayout is RFC 3339 with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

type ExportLog struct {
	Date       string `json:"date"`
	Timestamp  string `json:"timestamp"`
	QuantityMl int    `json:"quantity_ml"`
	Glasses    int    `json:"glasses"`
}

type ExportData struct {
	ExportedAt string          `json:"exported_at"`
	Settings   *model.Settings `json:"settings,omitempty"`
	Logs       []ExportLog     `json:"logs"`
}

type ImportMode string

const (
	ImportModeAppend  ImportMode = "append"
	ImportModeReplace ImportMode = "replace"
)

type ImportReport struct {
	LogsImported     int  `json:"logs_imported"`
	SettingsImported bool `json:"settings_imported"`
	DryRun           bool `json:"dry_run"`
}

func ParseImportMode(value string) (ImportMode, error) {
	switch ImportMode(strings.ToLower(strings.TrimSpace(value))) {
	case "", ImportModeAppend:
		return ImportModeAppend, nil
	case ImportModeReplace:
		return ImportModeReplace, nil
	default:
		return "", fmt.Errorf("%w: unsupported import mode %q (expected append or replace)", ErrValidation, value)
	}
}

// ExportDataSnapshot captures all logs and, when saved, the settings row.
func ExportDataSnapshot(db *sql.DB) (*ExportData, error) {
	logs, err := GetAllLogs(db)
	if err != nil {
		return nil, err
	}
	settings, found, err := loadSettings(db)
	if err != nil {
		return nil, err
	}
	out := &ExportData{
		ExportedAt: time.Now().Format(TimestampLayout),
		Logs:       make([]ExportLog, 0, len(logs)),
	}
	if found {
		out.Settings = settings
	}
	for _, l := range logs {
		out.Logs = append(out.Logs, ExportLog{
			Date:       l.Date,
			Timestamp:  l.Timestamp.Format(TimestampLayout),
			QuantityMl: l.QuantityMl,
			Glasses:    l.Glasses,
		})
	}
	return out, nil
}

// ImportDataSnapshot loads an export in a single transaction. Replace mode
// clears existing data first. Imported logs receive fresh ids.
func ImportDataSnapshot(db *sql.DB, data ExportData, mode ImportMode, dryRun bool) (ImportReport, error) {
	report := ImportReport{DryRun: dryRun}

	timestamps := make([]time.Time, len(data.Logs))
	for i, l := range data.Logs {
		ts, err := validateExportLog(l)
		if err != nil {
			return report, fmt.Errorf("log %d: %w", i+1, err)
		}
		timestamps[i] = ts
	}
	if data.Settings != nil {
		s := *data.Settings
		patch := SettingsPatch{
			GlassSizeMl:             &s.GlassSizeMl,
			DailyGoalMl:             &s.DailyGoalMl,
			MonthlyGoalMl:           &s.MonthlyGoalMl,
			ReminderIntervalMinutes: &s.ReminderIntervalMinutes,
		}
		if err := patch.Validate(); err != nil {
			return report, fmt.Errorf("settings: %w", err)
		}
	}

	report.LogsImported = len(data.Logs)
	report.SettingsImported = data.Settings != nil
	if dryRun {
		return report, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return ImportReport{}, fmt.Errorf("%w: begin import: %w", ErrWriteFailed, err)
	}
	if mode == ImportModeReplace {
		for _, table := range []string{"intake_logs", "settings"} {
			if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
				_ = tx.Rollback()
				return ImportReport{}, fmt.Errorf("%w: clear %s: %w", ErrWriteFailed, table, err)
			}
		}
	}
	for i, l := range data.Logs {
		if _, err := insertLog(tx, l.Date, timestamps[i], l.QuantityMl, l.Glasses); err != nil {
			_ = tx.Rollback()
			return ImportReport{}, err
		}
	}
	if data.Settings != nil {
		if err := saveSettings(tx, *data.Settings); err != nil {
			_ = tx.Rollback()
			return ImportReport{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return ImportReport{}, fmt.Errorf("%w: commit import: %w", ErrWriteFailed, err)
	}
	return report, nil
}

func validateExportLog(l ExportLog) (time.Time, error) {
	if _, err := ParseDate(l.Date); err != nil {
		return time.Time{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(l.Timestamp))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid timestamp %q", ErrValidation, l.Timestamp)
	}
	if err := validatePositiveInt("quantity", l.QuantityMl); err != nil {
		return time.Time{}, err
	}
	if err := validateGlasses(l.Glasses); err != nil {
		return time.Time{}, err
	}
	return ts, nil
}
