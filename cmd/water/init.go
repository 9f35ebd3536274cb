package water

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local water database",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session, _ *sql.DB) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized water database at %s\n", s.dbPath)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
