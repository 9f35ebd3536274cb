package water

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/realbLanK993/water/internal/notify"
	"github.com/realbLanK993/water/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logGlasses int
	logMl      int
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log glasses of water drunk now",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session, sqldb *sql.DB) error {
			now := time.Now()
			if err := service.CheckCooldown(sqldb, now, s.cfg.Cooldown()); err != nil {
				return err
			}
			today := service.FormatDate(now)
			before, err := service.GetDailyStats(sqldb, today)
			if err != nil {
				return err
			}
			id, err := service.AddIntakeLog(sqldb, service.AddIntakeLogInput{
				Glasses:            logGlasses,
				QuantityPerGlassMl: logMl,
				LoggedAt:           now,
			})
			if err != nil {
				return err
			}
			outcome, err := service.EvaluateIntake(sqldb, before, now)
			if err != nil {
				return err
			}
			settings, err := service.GetSettings(sqldb)
			if err != nil {
				return err
			}
			s.log.Info("intake logged",
				zap.Int64("id", id),
				zap.Int("glasses", logGlasses),
				zap.Int("total_ml", outcome.Today.TotalQuantityMl),
			)

			added := outcome.Today.TotalQuantityMl - before.TotalQuantityMl
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %d glass(es), %d ml (id %d)\n", logGlasses, added, id)
			fmt.Fprintf(cmd.OutOrStdout(), "Today: %d / %d ml (%d%%)\n", outcome.Today.TotalQuantityMl, settings.DailyGoalMl, outcome.Today.ProgressPercent)
			if outcome.Streak > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Streak: %d day(s)\n", outcome.Streak)
			}

			gw, wait := newGateway(cmd, s, !settings.NotificationsEnabled)
			notify.AfterIntake(gw, outcome.GoalJustReached, outcome.Streak)
			wait()
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().IntVar(&logGlasses, "glasses", 1, "Number of glasses (1-4)")
	logCmd.Flags().IntVar(&logMl, "ml", 0, "Volume per glass in ml (default: settings glass size)")
}
