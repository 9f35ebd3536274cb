package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	NotifierDesktop = "desktop"
	NotifierStdout  = "stdout"

	DefaultCooldownMinutes = 10
)

type Config struct {
	Env             string    `yaml:"env"`
	DBPath          string    `yaml:"db_path"`
	Log             LogConfig `yaml:"log"`
	CooldownMinutes int       `yaml:"cooldown_minutes"`
	Notifier        string    `yaml:"notifier"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

func Default() *Config {
	return &Config{
		Env:             EnvProduction,
		CooldownMinutes: DefaultCooldownMinutes,
		Notifier:        NotifierDesktop,
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
	}
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// A missing file is not an error; variables already set are kept.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Load reads the YAML file at path (skipped when path is empty), then applies
// WATER_* environment overrides.
func Load(path string) (*Config, error) {
	c := Default()
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	envOverride(&c.Env, "WATER_ENV")
	envOverride(&c.DBPath, "WATER_DB")
	envOverride(&c.Log.Level, "WATER_LOG_LEVEL")
	envOverride(&c.Log.Format, "WATER_LOG_FORMAT")
	envOverride(&c.Log.File, "WATER_LOG_FILE")
	envOverride(&c.Notifier, "WATER_NOTIFIER")
	envOverrideInt(&c.CooldownMinutes, "WATER_COOLDOWN_MINUTES")

	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.Notifier = strings.ToLower(strings.TrimSpace(c.Notifier))
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	switch c.Env {
	case EnvProduction, EnvDevelopment:
	default:
		return fmt.Errorf("invalid env %q (expected %s or %s)", c.Env, EnvProduction, EnvDevelopment)
	}
	switch c.Notifier {
	case NotifierDesktop, NotifierStdout:
	default:
		return fmt.Errorf("invalid notifier %q (expected %s or %s)", c.Notifier, NotifierDesktop, NotifierStdout)
	}
	if c.CooldownMinutes < 0 {
		return fmt.Errorf("cooldown_minutes must be >= 0")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// Cooldown is the wait enforced between logs. Development disables it.
func (c *Config) Cooldown() time.Duration {
	if c.IsDevelopment() {
		return 0
	}
	return time.Duration(c.CooldownMinutes) * time.Minute
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
