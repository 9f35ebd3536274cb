package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/realbLanK993/water/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"WATER_ENV", "WATER_DB", "WATER_LOG_LEVEL", "WATER_LOG_FORMAT", "WATER_LOG_FILE", "WATER_NOTIFIER", "WATER_COOLDOWN_MINUTES"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.EnvProduction, cfg.Env)
	assert.Equal(t, config.NotifierDesktop, cfg.Notifier)
	assert.Equal(t, 10*time.Minute, cfg.Cooldown())
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
env: production
db_path: /tmp/from-file.db
cooldown_minutes: 5
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("WATER_DB", "/tmp/from-env.db")
	t.Setenv("WATER_NOTIFIER", "STDOUT")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env.db", cfg.DBPath)
	assert.Equal(t, config.NotifierStdout, cfg.Notifier)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 5*time.Minute, cfg.Cooldown())
	assert.Equal(t, 3, cfg.Log.MaxBackups)
}

func TestDevelopmentDisablesCooldown(t *testing.T) {
	clearEnv(t)
	t.Setenv("WATER_ENV", "development")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.True(t, cfg.IsDevelopment())
	assert.Zero(t, cfg.Cooldown())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("WATER_ENV", "staging")
	_, err := config.Load("")
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("WATER_NOTIFIER", "pager")
	_, err = config.Load("")
	assert.Error(t, err)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides a variable that is already set, even to "".
	require.NoError(t, os.Unsetenv("WATER_COOLDOWN_MINUTES"))
	dir := t.TempDir()
	require.NoError(t, config.LoadEnvFile(filepath.Join(dir, "missing.env")))

	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("WATER_COOLDOWN_MINUTES=3\n"), 0o644))
	require.NoError(t, config.LoadEnvFile(path))

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 3*time.Minute, cfg.Cooldown())
}
