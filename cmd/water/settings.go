package water

import (
	"database/sql"
	"fmt"

	"github.com/realbLanK993/water/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show and change hydration settings",
}

var (
	setGlassSize        int
	setDailyGoal        int
	setMonthlyGoal      int
	setNotifications    bool
	setReminderInterval int
)

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change settings; unset flags keep their value",
	RunE: func(cmd *cobra.Command, args []string) error {
		patch := service.SettingsPatch{}
		if cmd.Flags().Changed("glass-size") {
			patch.GlassSizeMl = &setGlassSize
		}
		if cmd.Flags().Changed("daily-goal") {
			patch.DailyGoalMl = &setDailyGoal
		}
		if cmd.Flags().Changed("monthly-goal") {
			patch.MonthlyGoalMl = &setMonthlyGoal
		}
		if cmd.Flags().Changed("notifications") {
			patch.NotificationsEnabled = &setNotifications
		}
		if cmd.Flags().Changed("reminder-interval") {
			patch.ReminderIntervalMinutes = &setReminderInterval
		}
		if patch.IsEmpty() {
			return fmt.Errorf("set at least one flag")
		}
		return withSession(func(s *session, sqldb *sql.DB) error {
			if err := service.UpdateSettings(sqldb, patch); err != nil {
				return err
			}
			s.log.Info("settings updated",
				zap.Bool("glass_size", patch.GlassSizeMl != nil),
				zap.Bool("daily_goal", patch.DailyGoalMl != nil),
				zap.Bool("monthly_goal", patch.MonthlyGoalMl != nil),
				zap.Bool("notifications", patch.NotificationsEnabled != nil),
				zap.Bool("reminder_interval", patch.ReminderIntervalMinutes != nil),
			)
			fmt.Fprintln(cmd.OutOrStdout(), "Updated settings")
			return nil
		})
	},
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			st, err := service.GetSettings(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "KEY\tVALUE")
			fmt.Fprintf(cmd.OutOrStdout(), "glass_size_ml\t%d\n", st.GlassSizeMl)
			fmt.Fprintf(cmd.OutOrStdout(), "daily_goal_ml\t%d\n", st.DailyGoalMl)
			fmt.Fprintf(cmd.OutOrStdout(), "monthly_goal_ml\t%d\n", st.MonthlyGoalMl)
			fmt.Fprintf(cmd.OutOrStdout(), "notifications_enabled\t%t\n", st.NotificationsEnabled)
			fmt.Fprintf(cmd.OutOrStdout(), "reminder_interval_minutes\t%d\n", st.ReminderIntervalMinutes)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd)

	settingsSetCmd.Flags().IntVar(&setGlassSize, "glass-size", 0, "Glass size in ml")
	settingsSetCmd.Flags().IntVar(&setDailyGoal, "daily-goal", 0, "Daily goal in ml")
	settingsSetCmd.Flags().IntVar(&setMonthlyGoal, "monthly-goal", 0, "Monthly goal in ml")
	settingsSetCmd.Flags().BoolVar(&setNotifications, "notifications", true, "Enable reminders and notifications")
	settingsSetCmd.Flags().IntVar(&setReminderInterval, "reminder-interval", 0, "Reminder interval in minutes")
}
