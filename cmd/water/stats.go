package water

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/realbLanK993/water/internal/model"
	"github.com/realbLanK993/water/internal/service"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show hydration statistics",
}

var (
	statsDate  string
	statsStart string
	statsMonth string
	statsJSON  bool
)

var statsTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's intake and goal progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			now := time.Now()
			day, err := service.GetDailyStats(sqldb, service.FormatDate(now))
			if err != nil {
				return err
			}
			streak, err := service.GetCurrentStreak(sqldb, now)
			if err != nil {
				return err
			}
			if statsJSON {
				return printJSON(cmd, struct {
					model.DailyStats
					Streak int `json:"streak"`
				}{*day, streak})
			}
			printDaily(cmd, *day)
			fmt.Fprintf(cmd.OutOrStdout(), "Streak: %d day(s)\n", streak)
			return nil
		})
	},
}

var statsDayCmd = &cobra.Command{
	Use:   "day",
	Short: "Show totals for one day",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrToday(statsDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			day, err := service.GetDailyStats(sqldb, date)
			if err != nil {
				return err
			}
			if statsJSON {
				return printJSON(cmd, day)
			}
			printDaily(cmd, *day)
			return nil
		})
	},
}

var statsWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show seven consecutive days",
	RunE: func(cmd *cobra.Command, args []string) error {
		start := strings.TrimSpace(statsStart)
		if start == "" {
			start = service.FormatDate(time.Now().AddDate(0, 0, -6))
		}
		return withDB(func(sqldb *sql.DB) error {
			week, err := service.GetWeeklyStats(sqldb, start)
			if err != nil {
				return err
			}
			if statsJSON {
				return printJSON(cmd, week)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tML\tGLASSES\tPROGRESS\tGOAL")
			for _, d := range week {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%d\t%d%%\t%s\n", d.Date, d.TotalQuantityMl, d.TotalGlasses, d.ProgressPercent, yesNo(d.GoalAchieved))
			}
			return nil
		})
	},
}

var statsMonthCmd = &cobra.Command{
	Use:   "month",
	Short: "Show totals for a calendar month",
	RunE: func(cmd *cobra.Command, args []string) error {
		year, month, err := parseMonth(statsMonth)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			m, err := service.GetMonthlyStats(sqldb, year, month)
			if err != nil {
				return err
			}
			if statsJSON {
				return printJSON(cmd, m)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Month: %04d-%02d\n", m.Year, m.Month)
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %d ml in %d glass(es)\n", m.TotalQuantityMl, m.TotalGlasses)
			fmt.Fprintf(cmd.OutOrStdout(), "Days with goal met: %d/%d\n", m.DaysWithGoal, m.TotalDays)
			fmt.Fprintf(cmd.OutOrStdout(), "Monthly goal achieved: %s\n", yesNo(m.GoalAchieved))
			return nil
		})
	},
}

var statsStreakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the current goal streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			streak, err := service.GetCurrentStreak(sqldb, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Streak: %d day(s)\n", streak)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.AddCommand(statsTodayCmd, statsDayCmd, statsWeekCmd, statsMonthCmd, statsStreakCmd)
	statsCmd.PersistentFlags().BoolVar(&statsJSON, "json", false, "Output JSON")

	statsDayCmd.Flags().StringVar(&statsDate, "date", "", "Date YYYY-MM-DD (default today)")
	statsWeekCmd.Flags().StringVar(&statsStart, "start", "", "First day YYYY-MM-DD (default six days ago)")
	statsMonthCmd.Flags().StringVar(&statsMonth, "month", "", "Month YYYY-MM (default current month)")
}

func printDaily(cmd *cobra.Command, d model.DailyStats) {
	fmt.Fprintf(cmd.OutOrStdout(), "Date: %s\n", d.Date)
	fmt.Fprintf(cmd.OutOrStdout(), "Intake: %d ml in %d glass(es)\n", d.TotalQuantityMl, d.TotalGlasses)
	fmt.Fprintf(cmd.OutOrStdout(), "Progress: %d%%\n", d.ProgressPercent)
	fmt.Fprintf(cmd.OutOrStdout(), "Goal achieved: %s\n", yesNo(d.GoalAchieved))
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}

func parseMonth(value string) (int, int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		now := time.Now()
		return now.Year(), int(now.Month()), nil
	}
	t, err := time.ParseInLocation("2006-01", value, time.Local)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid --month %q (expected YYYY-MM)", value)
	}
	return t.Year(), int(t.Month()), nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
