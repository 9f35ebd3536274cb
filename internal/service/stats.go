package service

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/realbLanK993/water/internal/model"
)

const (
	daysPerWeek = 7
	// maxStreakDays bounds the backward walk in GetCurrentStreak.
	maxStreakDays = 365
)

// GetDailyStats aggregates every log of date against the current daily goal.
func GetDailyStats(db *sql.DB, date string) (*model.DailyStats, error) {
	logs, err := GetLogsByDate(db, date)
	if err != nil {
		return nil, err
	}
	settings, err := GetSettings(db)
	if err != nil {
		return nil, err
	}
	stats := buildDailyStats(date, logs, settings.DailyGoalMl)
	return &stats, nil
}

// GetWeeklyStats returns exactly seven consecutive days starting at
// startDate. Days without logs are zeroed.
func GetWeeklyStats(db *sql.DB, startDate string) ([]model.DailyStats, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}
	end := start.AddDate(0, 0, daysPerWeek-1)

	logs, err := GetLogsByDateRange(db, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	settings, err := GetSettings(db)
	if err != nil {
		return nil, err
	}

	byDate := groupByDate(logs)
	week := make([]model.DailyStats, 0, daysPerWeek)
	for i := 0; i < daysPerWeek; i++ {
		day := start.AddDate(0, 0, i).Format(dateLayout)
		week = append(week, buildDailyStats(day, byDate[day], settings.DailyGoalMl))
	}
	return week, nil
}

// GetMonthlyStats sums a calendar month (month is 1-12).
func GetMonthlyStats(db *sql.DB, year, month int) (*model.MonthlyStats, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", ErrValidation)
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)

	logs, err := GetLogsByDateRange(db, first.Format(dateLayout), last.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	settings, err := GetSettings(db)
	if err != nil {
		return nil, err
	}

	out := &model.MonthlyStats{
		Year:      year,
		Month:     month,
		TotalDays: last.Day(),
	}
	for _, l := range logs {
		out.TotalQuantityMl += l.QuantityMl
		out.TotalGlasses += l.Glasses
	}
	for _, total := range dailyTotals(logs) {
		if goalMet(total, settings.DailyGoalMl) {
			out.DaysWithGoal++
		}
	}
	out.GoalAchieved = goalMet(out.TotalQuantityMl, settings.MonthlyGoalMl)
	return out, nil
}

// GetCurrentStreak counts consecutive days ending today whose goal is met.
// Today only counts once its own goal is reached, so the streak reads 0
// each morning until today's goal is met.
func GetCurrentStreak(db *sql.DB, now time.Time) (int, error) {
	today := beginningOfDay(now)
	earliest := today.AddDate(0, 0, -(maxStreakDays - 1))

	logs, err := GetLogsByDateRange(db, earliest.Format(dateLayout), today.Format(dateLayout))
	if err != nil {
		return 0, err
	}
	settings, err := GetSettings(db)
	if err != nil {
		return 0, err
	}

	totals := dailyTotals(logs)
	streak := 0
	for day := today; streak < maxStreakDays; day = day.AddDate(0, 0, -1) {
		if !goalMet(totals[day.Format(dateLayout)], settings.DailyGoalMl) {
			break
		}
		streak++
	}
	return streak, nil
}

func GetTodayProgress(db *sql.DB, now time.Time) (int, error) {
	stats, err := GetDailyStats(db, FormatDate(now))
	if err != nil {
		return 0, err
	}
	return stats.ProgressPercent, nil
}

// IntakeOutcome describes today's state right after a log was written.
type IntakeOutcome struct {
	Today           model.DailyStats
	GoalJustReached bool
	Streak          int
}

// EvaluateIntake compares today's stats before and after a write. before may
// be nil when the earlier state is unknown.
func EvaluateIntake(db *sql.DB, before *model.DailyStats, now time.Time) (*IntakeOutcome, error) {
	after, err := GetDailyStats(db, FormatDate(now))
	if err != nil {
		return nil, err
	}
	streak, err := GetCurrentStreak(db, now)
	if err != nil {
		return nil, err
	}
	wasAchieved := before != nil && before.GoalAchieved
	return &IntakeOutcome{
		Today:           *after,
		GoalJustReached: after.GoalAchieved && !wasAchieved,
		Streak:          streak,
	}, nil
}

func buildDailyStats(date string, logs []model.IntakeLog, dailyGoalMl int) model.DailyStats {
	stats := model.DailyStats{Date: date}
	for _, l := range logs {
		stats.TotalQuantityMl += l.QuantityMl
		stats.TotalGlasses += l.Glasses
	}
	stats.ProgressPercent = progressPercent(stats.TotalQuantityMl, dailyGoalMl)
	stats.GoalAchieved = goalMet(stats.TotalQuantityMl, dailyGoalMl)
	return stats
}

func progressPercent(totalMl, goalMl int) int {
	if goalMl <= 0 {
		return 0
	}
	pct := int(math.Round(float64(totalMl) / float64(goalMl) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}

func goalMet(totalMl, goalMl int) bool {
	return goalMl > 0 && totalMl >= goalMl
}

func groupByDate(logs []model.IntakeLog) map[string][]model.IntakeLog {
	out := make(map[string][]model.IntakeLog)
	for _, l := range logs {
		out[l.Date] = append(out[l.Date], l)
	}
	return out
}

func dailyTotals(logs []model.IntakeLog) map[string]int {
	out := make(map[string]int)
	for _, l := range logs {
		out[l.Date] += l.QuantityMl
	}
	return out
}
