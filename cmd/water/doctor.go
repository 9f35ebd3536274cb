package water

import (
	"database/sql"
	"fmt"

	"github.com/realbLanK993/water/internal/service"
	"github.com/spf13/cobra"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(sqldb, doctorFix)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Malformed date rows: %d\n", report.MalformedDateRows)
			fmt.Fprintf(cmd.OutOrStdout(), "Uneven quantity rows: %d\n", report.UnevenQuantityRows)
			fmt.Fprintf(cmd.OutOrStdout(), "Duplicate log rows: %d\n", report.DuplicateLogRows)
			if doctorFix {
				fmt.Fprintf(cmd.OutOrStdout(), "Fixed date rows: %d\n", report.FixedDateRows)
				// Re-check after fixes so exit status reflects final state.
				report, err = service.RunDoctor(sqldb, false)
				if err != nil {
					return err
				}
			}
			if report.HasIssues() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Attempt safe auto-fixes")
}
