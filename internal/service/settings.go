package service

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/realbLanK993/water/internal/model"
)

// SettingsPatch lists the settings to change. Nil fields keep their stored
// (or default) value.
type SettingsPatch struct {
	GlassSizeMl             *int
	DailyGoalMl             *int
	MonthlyGoalMl           *int
	NotificationsEnabled    *bool
	ReminderIntervalMinutes *int
}

func (p SettingsPatch) IsEmpty() bool {
	return p.GlassSizeMl == nil && p.DailyGoalMl == nil && p.MonthlyGoalMl == nil &&
		p.NotificationsEnabled == nil && p.ReminderIntervalMinutes == nil
}

func (p SettingsPatch) Validate() error {
	checks := []struct {
		name  string
		value *int
	}{
		{"glass size", p.GlassSizeMl},
		{"daily goal", p.DailyGoalMl},
		{"monthly goal", p.MonthlyGoalMl},
		{"reminder interval", p.ReminderIntervalMinutes},
	}
	for _, c := range checks {
		if c.value == nil {
			continue
		}
		if err := validatePositiveInt(c.name, *c.value); err != nil {
			return err
		}
	}
	return nil
}

// GetSettings returns the stored settings, or the defaults when none have
// been saved. Defaults are never written as a side effect.
func GetSettings(db *sql.DB) (*model.Settings, error) {
	s, found, err := loadSettings(db)
	if err != nil {
		return nil, err
	}
	if !found {
		d := model.DefaultSettings()
		return &d, nil
	}
	return s, nil
}

// UpdateSettings merges the patch onto the stored settings (or onto the
// defaults when none exist) inside one transaction.
func UpdateSettings(db *sql.DB, patch SettingsPatch) error {
	if err := patch.Validate(); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("%w: begin update settings: %w", ErrWriteFailed, err)
	}
	current, found, err := loadSettings(tx)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if !found {
		d := model.DefaultSettings()
		current = &d
	}
	merged := patch.apply(*current)

	if err := saveSettings(tx, merged); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit settings: %w", ErrWriteFailed, err)
	}
	return nil
}

func (p SettingsPatch) apply(s model.Settings) model.Settings {
	if p.GlassSizeMl != nil {
		s.GlassSizeMl = *p.GlassSizeMl
	}
	if p.DailyGoalMl != nil {
		s.DailyGoalMl = *p.DailyGoalMl
	}
	if p.MonthlyGoalMl != nil {
		s.MonthlyGoalMl = *p.MonthlyGoalMl
	}
	if p.NotificationsEnabled != nil {
		s.NotificationsEnabled = *p.NotificationsEnabled
	}
	if p.ReminderIntervalMinutes != nil {
		s.ReminderIntervalMinutes = *p.ReminderIntervalMinutes
	}
	return s
}

func loadSettings(q queryer) (*model.Settings, bool, error) {
	var s model.Settings
	err := q.QueryRow(`
SELECT glass_size_ml, daily_goal_ml, monthly_goal_ml, notifications_enabled, reminder_interval_minutes
FROM settings
WHERE id = 1
`).Scan(&s.GlassSizeMl, &s.DailyGoalMl, &s.MonthlyGoalMl, &s.NotificationsEnabled, &s.ReminderIntervalMinutes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: get settings: %w", ErrReadFailed, err)
	}
	return &s, true, nil
}

func saveSettings(ex execer, s model.Settings) error {
	_, err := ex.Exec(`
INSERT INTO settings(id, glass_size_ml, daily_goal_ml, monthly_goal_ml, notifications_enabled, reminder_interval_minutes, updated_at)
VALUES(1, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(id) DO UPDATE SET
  glass_size_ml=excluded.glass_size_ml,
  daily_goal_ml=excluded.daily_goal_ml,
  monthly_goal_ml=excluded.monthly_goal_ml,
  notifications_enabled=excluded.notifications_enabled,
  reminder_interval_minutes=excluded.reminder_interval_minutes,
  updated_at=excluded.updated_at
`, s.GlassSizeMl, s.DailyGoalMl, s.MonthlyGoalMl, s.NotificationsEnabled, s.ReminderIntervalMinutes)
	if err != nil {
		return fmt.Errorf("%w: save settings: %w", ErrWriteFailed, err)
	}
	return nil
}
