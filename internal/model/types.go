package model

import "time"

const (
	DefaultGlassSizeMl             = 250
	DefaultDailyGoalMl             = 2000
	DefaultMonthlyGoalMl           = 60000
	DefaultReminderIntervalMinutes = 20
)

type IntakeLog struct {
	ID         int64     `json:"id"`
	Date       string    `json:"date"`
	Timestamp  time.Time `json:"timestamp"`
	QuantityMl int       `json:"quantity_ml"`
	Glasses    int       `json:"glasses"`
}

type Settings struct {
	GlassSizeMl             int  `json:"glass_size_ml"`
	DailyGoalMl             int  `json:"daily_goal_ml"`
	MonthlyGoalMl           int  `json:"monthly_goal_ml"`
	NotificationsEnabled    bool `json:"notifications_enabled"`
	ReminderIntervalMinutes int  `json:"reminder_interval_minutes"`
}

// DefaultSettings is what reads return while no settings row exists.
func DefaultSettings() Settings {
	return Settings{
		GlassSizeMl:             DefaultGlassSizeMl,
		DailyGoalMl:             DefaultDailyGoalMl,
		MonthlyGoalMl:           DefaultMonthlyGoalMl,
		NotificationsEnabled:    true,
		ReminderIntervalMinutes: DefaultReminderIntervalMinutes,
	}
}

type DailyStats struct {
	Date            string `json:"date"`
	TotalQuantityMl int    `json:"total_quantity_ml"`
	TotalGlasses    int    `json:"total_glasses"`
	ProgressPercent int    `json:"progress_percent"`
	GoalAchieved    bool   `json:"goal_achieved"`
}

type MonthlyStats struct {
	Year            int  `json:"year"`
	Month           int  `json:"month"`
	TotalQuantityMl int  `json:"total_quantity_ml"`
	TotalGlasses    int  `json:"total_glasses"`
	DaysWithGoal    int  `json:"days_with_goal"`
	TotalDays       int  `json:"total_days"`
	GoalAchieved    bool `json:"goal_achieved"`
}
