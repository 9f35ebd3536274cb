package water

import (
	"database/sql"
	"fmt"

	"github.com/realbLanK993/water/internal/service"
	"github.com/spf13/cobra"
)

var resetConfirm bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all intake logs and settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetConfirm {
			return fmt.Errorf("reset deletes all data; re-run with --yes to confirm")
		}
		return withSession(func(s *session, sqldb *sql.DB) error {
			if err := service.ClearAllData(sqldb); err != nil {
				return err
			}
			s.log.Info("all data cleared")
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared all intake logs and settings")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVar(&resetConfirm, "yes", false, "Confirm deleting all data")
}
