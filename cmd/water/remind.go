package water

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/realbLanK993/water/internal/reminder"
	"github.com/spf13/cobra"
)

var remindFor time.Duration

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run the reminder scheduler until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session, sqldb *sql.DB) error {
			gw, wait := newGateway(cmd, s, false)
			defer wait()

			sched := reminder.New(gw, s.log, reminder.WithDevelopment(s.cfg.IsDevelopment()))
			if err := sched.Initialize(sqldb); err != nil {
				return err
			}
			if !sched.IsRunning() {
				fmt.Fprintln(cmd.OutOrStdout(), "Reminders are disabled in settings")
				return nil
			}
			defer sched.Stop()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if remindFor > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, remindFor)
				defer cancel()
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Reminding every %s, press Ctrl+C to stop\n", sched.Interval())
			<-ctx.Done()
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(remindCmd)
	remindCmd.Flags().DurationVar(&remindFor, "for", 0, "Stop after this duration (default: run until interrupted)")
}
