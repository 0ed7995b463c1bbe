package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the server configuration. Values come from defaults, then the
// YAML file, then VILLAGETICK_* environment variables.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Clock    ClockConfig    `yaml:"clock"`
	Logging  LoggingConfig  `yaml:"logging"`
	Demo     DemoConfig     `yaml:"demo"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DatabaseConfig selects postgres when DSN is set; otherwise the server keeps
// everything in memory.
type DatabaseConfig struct {
	DSN         string `yaml:"dsn"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

type ClockConfig struct {
	StartUnix int64 `yaml:"start_unix"`
	TickMs    int   `yaml:"tick_ms"`
}

func (c ClockConfig) StartAt() time.Time {
	return time.Unix(c.StartUnix, 0).UTC()
}

func (c ClockConfig) Tick() time.Duration {
	return time.Duration(c.TickMs) * time.Millisecond
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DemoConfig seeds two villages on startup so the API can be explored.
type DemoConfig struct {
	Seed bool `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		Server:   ServerConfig{Addr: ":8080"},
		Database: DatabaseConfig{AutoMigrate: true},
		Clock:    ClockConfig{TickMs: 1000},
		Logging:  LoggingConfig{Level: "info", Format: "json"},
		Demo:     DemoConfig{Seed: true},
	}
}

// Load reads path when it exists. A missing file yields the defaults with
// environment overrides applied.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("VILLAGETICK_ADDR")); v != "" {
		c.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("VILLAGETICK_DB_DSN")); v != "" {
		c.Database.DSN = v
	}
	c.Database.AutoMigrate = boolEnv("VILLAGETICK_AUTO_MIGRATE", c.Database.AutoMigrate)
	c.Clock.StartUnix = int64(intEnv("VILLAGETICK_CLOCK_START_UNIX", int(c.Clock.StartUnix)))
	c.Clock.TickMs = intEnv("VILLAGETICK_TICK_MS", c.Clock.TickMs)
	if v := strings.TrimSpace(os.Getenv("VILLAGETICK_LOG_LEVEL")); v != "" {
		c.Logging.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("VILLAGETICK_LOG_FORMAT")); v != "" {
		c.Logging.Format = v
	}
	c.Demo.Seed = boolEnv("VILLAGETICK_DEMO_SEED", c.Demo.Seed)
}

func (c *Config) Validate() error {
	if c.Clock.TickMs <= 0 {
		return fmt.Errorf("clock.tick_ms must be positive, got %d", c.Clock.TickMs)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// Build returns a production zap logger at the configured level.
func (c LoggingConfig) Build() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = c.Format
	if c.Format == "console" {
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	return zc.Build()
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func boolEnv(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
