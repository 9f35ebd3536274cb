package water

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/realbLanK993/water/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage database backups",
}

var (
	backupOut    string
	backupDir    string
	restoreFile  string
	restoreForce bool
)

func defaultBackupDir(s *session) string {
	if backupDir != "" {
		return backupDir
	}
	return filepath.Join(filepath.Dir(s.dbPath), "backups")
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create database backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession()
		if err != nil {
			return err
		}
		defer func() { _ = s.log.Sync() }()
		out := backupOut
		if out == "" {
			out = filepath.Join(defaultBackupDir(s), service.BackupFileName(time.Now()))
		}
		info, err := service.CreateBackup(s.dbPath, out)
		if err != nil {
			s.log.Error("backup failed", zap.String("db", s.dbPath), zap.Error(err))
			return err
		}
		s.log.Info("backup created", zap.String("path", info.Path), zap.Int64("size_bytes", info.SizeBytes))
		fmt.Fprintf(cmd.OutOrStdout(), "Created backup: %s\n", info.Path)
		fmt.Fprintf(cmd.OutOrStdout(), "Checksum: %s\n", info.Checksum)
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession()
		if err != nil {
			return err
		}
		items, err := service.ListBackups(defaultBackupDir(s))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "FILE\tSIZE\tCREATED\tCHECKSUM")
		for _, it := range items {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\t%s\n", it.Path, it.SizeBytes, it.CreatedAt.Format(time.RFC3339), it.Checksum)
		}
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore database from backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		if restoreFile == "" {
			return fmt.Errorf("--file is required")
		}
		s, err := loadSession()
		if err != nil {
			return err
		}
		defer func() { _ = s.log.Sync() }()
		if err := service.RestoreBackup(restoreFile, s.dbPath, restoreForce); err != nil {
			return err
		}
		s.log.Info("backup restored", zap.String("from", restoreFile), zap.String("db", s.dbPath))
		fmt.Fprintf(cmd.OutOrStdout(), "Restored backup from %s\n", restoreFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd, backupListCmd, backupRestoreCmd)

	backupCreateCmd.Flags().StringVar(&backupOut, "out", "", "Backup output file path")
	backupCreateCmd.Flags().StringVar(&backupDir, "dir", "", "Backup directory (used when --out is empty)")
	backupListCmd.Flags().StringVar(&backupDir, "dir", "", "Backup directory (default: alongside DB under backups/)")
	backupRestoreCmd.Flags().StringVar(&restoreFile, "file", "", "Backup .db file path")
	backupRestoreCmd.Flags().BoolVar(&restoreForce, "force", false, "Overwrite existing DB if present")
}
