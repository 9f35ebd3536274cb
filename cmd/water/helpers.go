package water

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/realbLanK993/water/internal/app"
	"github.com/realbLanK993/water/internal/config"
	"github.com/realbLanK993/water/internal/db"
	"github.com/realbLanK993/water/internal/logger"
	"github.com/realbLanK993/water/internal/notify"
	"github.com/realbLanK993/water/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// session is the per-invocation state shared by commands.
type session struct {
	cfg    *config.Config
	log    *zap.Logger
	dbPath string
}

func loadSession() (*session, error) {
	if err := config.LoadEnvFile(".env"); err != nil {
		return nil, err
	}
	path, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	dbp, err := resolveDBPath(cfg)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, log: logger.New(cfg.Log), dbPath: dbp}, nil
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	path, err := app.DefaultConfigPath()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	return path, nil
}

// resolveDBPath prefers --db, then the configured db_path, then the default.
func resolveDBPath(cfg *config.Config) (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return app.DefaultDBPath()
}

func withSession(run func(*session, *sql.DB) error) error {
	s, err := loadSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.log.Sync() }()

	if err := app.EnsureDBDir(s.dbPath); err != nil {
		return err
	}
	sqldb, err := db.Open(s.dbPath)
	if err != nil {
		s.log.Error("open database failed", zap.String("path", s.dbPath), zap.Error(err))
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(s, sqldb)
}

func withDB(run func(*sql.DB) error) error {
	return withSession(func(_ *session, sqldb *sql.DB) error {
		return run(sqldb)
	})
}

// newGateway returns the configured notification gateway and a func that
// blocks until shown notifications are delivered.
func newGateway(cmd *cobra.Command, s *session, muted bool) (notify.Gateway, func()) {
	if s.cfg.Notifier == config.NotifierStdout {
		if muted {
			return mutedGateway{}, func() {}
		}
		return notify.NewWriter(cmd.OutOrStdout()), func() {}
	}
	d := notify.NewDesktop(s.log, notify.WithMuted(muted))
	return d, d.Wait
}

type mutedGateway struct{}

func (mutedGateway) RequestPermission() bool { return false }
func (mutedGateway) Show(notify.Notification) {}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

// parseDateOrToday accepts YYYY-MM-DD; empty means today.
func parseDateOrToday(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return service.FormatDate(time.Now()), nil
	}
	if _, err := service.ParseDate(value); err != nil {
		return "", err
	}
	return value, nil
}

func parseDateTime(date, timeStr string) (time.Time, error) {
	date = strings.TrimSpace(date)
	timeStr = strings.TrimSpace(timeStr)
	if date == "" || timeStr == "" {
		return time.Time{}, fmt.Errorf("both --date and --time are required")
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+timeStr, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date/--time (expected YYYY-MM-DD and HH:MM)")
	}
	return t, nil
}
