package water

import (
	"database/sql"
	"fmt"

	"github.com/realbLanK993/water/internal/notify"
	"github.com/spf13/cobra"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Notification utilities",
}

var notifyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Show a test notification",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session, _ *sql.DB) error {
			gw, wait := newGateway(cmd, s, false)
			if !notify.Send(gw, notify.Test()) {
				return fmt.Errorf("notification permission denied")
			}
			wait()
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.AddCommand(notifyTestCmd)
}
