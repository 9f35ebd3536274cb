package water

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/realbLanK993/water/internal/model"
	"github.com/realbLanK993/water/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "List and manage intake logs",
}

var (
	logsDate string
	logsFrom string
	logsTo   string
	logsJSON bool
)

var logsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List intake logs for a day or a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			var (
				logs []model.IntakeLog
				err  error
			)
			switch {
			case logsFrom != "" || logsTo != "":
				if logsFrom == "" || logsTo == "" {
					return fmt.Errorf("--from and --to must be set together")
				}
				logs, err = service.GetLogsByDateRange(sqldb, strings.TrimSpace(logsFrom), strings.TrimSpace(logsTo))
			default:
				var date string
				date, err = parseDateOrToday(logsDate)
				if err != nil {
					return err
				}
				logs, err = service.GetLogsByDate(sqldb, date)
			}
			if err != nil {
				return err
			}
			if logsJSON {
				return printJSON(cmd, logs)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tTIME\tGLASSES\tML")
			for _, l := range logs {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%d\t%d\n", l.ID, l.Date, l.Timestamp.Format("15:04"), l.Glasses, l.QuantityMl)
			}
			return nil
		})
	},
}

var logsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an intake log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("log id", args[0])
		if err != nil {
			return err
		}
		return withSession(func(s *session, sqldb *sql.DB) error {
			if err := service.DeleteLog(sqldb, id); err != nil {
				return err
			}
			s.log.Info("intake log deleted", zap.Int64("id", id))
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted log %d\n", id)
			return nil
		})
	},
}

var (
	updateGlasses int
	updateMl      int
	updateDate    string
	updateTime    string
)

var logsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of an intake log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("log id", args[0])
		if err != nil {
			return err
		}
		patch := service.IntakeLogPatch{}
		if cmd.Flags().Changed("glasses") {
			patch.Glasses = &updateGlasses
		}
		if cmd.Flags().Changed("ml") {
			patch.QuantityMl = &updateMl
		}
		switch {
		case cmd.Flags().Changed("time"):
			ts, err := parseDateTime(updateDate, updateTime)
			if err != nil {
				return err
			}
			date := service.FormatDate(ts)
			patch.Timestamp = &ts
			patch.Date = &date
		case cmd.Flags().Changed("date"):
			date := strings.TrimSpace(updateDate)
			patch.Date = &date
		}
		if patch.Glasses == nil && patch.QuantityMl == nil && patch.Date == nil {
			return fmt.Errorf("set at least one flag")
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.UpdateLog(sqldb, id, patch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated log %d\n", id)
			return nil
		})
	},
}

var logsLastCmd = &cobra.Command{
	Use:   "last",
	Short: "Show when water was last logged",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			last, ok, err := service.GetLastIntakeTime(sqldb)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No intake logged yet")
				return nil
			}
			ago := time.Since(last).Round(time.Minute)
			fmt.Fprintf(cmd.OutOrStdout(), "Last intake: %s (%s ago)\n", last.Format("2006-01-02 15:04"), ago)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(logsListCmd, logsDeleteCmd, logsUpdateCmd, logsLastCmd)

	logsListCmd.Flags().StringVar(&logsDate, "date", "", "Date YYYY-MM-DD (default today)")
	logsListCmd.Flags().StringVar(&logsFrom, "from", "", "Range start date YYYY-MM-DD")
	logsListCmd.Flags().StringVar(&logsTo, "to", "", "Range end date YYYY-MM-DD (inclusive)")
	logsListCmd.Flags().BoolVar(&logsJSON, "json", false, "Output JSON")

	logsUpdateCmd.Flags().IntVar(&updateGlasses, "glasses", 0, "Number of glasses (1-4); rescales ml unless --ml is set")
	logsUpdateCmd.Flags().IntVar(&updateMl, "ml", 0, "Total volume in ml")
	logsUpdateCmd.Flags().StringVar(&updateDate, "date", "", "Calendar day YYYY-MM-DD")
	logsUpdateCmd.Flags().StringVar(&updateTime, "time", "", "Time HH:MM (requires --date; also moves the timestamp)")
}
