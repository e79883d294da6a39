// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/multierr"
)

// Config holds all configuration for the mathplay service.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string
	// DBPath is the SQLite results database file.
	DBPath string
	// VariantsFile optionally points at a YAML variant catalog merged over
	// the built-ins at startup.
	VariantsFile string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// SessionTTL evicts live sessions idle longer than this.
	SessionTTL time.Duration
	// AllowedOrigins is the CORS allowlist for the browser games.
	AllowedOrigins []string
}

// Load reads configuration from MATHPLAY_* environment variables and
// validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:           getEnv("MATHPLAY_ADDR", ":8080"),
		DBPath:         getEnv("MATHPLAY_DB_PATH", "mathplay.db"),
		VariantsFile:   getEnv("MATHPLAY_VARIANTS_FILE", ""),
		LogLevel:       getEnv("MATHPLAY_LOG_LEVEL", "info"),
		SessionTTL:     getEnvAsDuration("MATHPLAY_SESSION_TTL", 30*time.Minute),
		AllowedOrigins: getEnvAsList("MATHPLAY_ALLOWED_ORIGINS", []string{"*"}),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration, collecting every problem rather than
// stopping at the first.
func (c *Config) Validate() error {
	var err error
	if c.Addr == "" {
		err = multierr.Append(err, fmt.Errorf("listen address is required"))
	}
	if c.DBPath == "" {
		err = multierr.Append(err, fmt.Errorf("database path is required"))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("invalid log level %q", c.LogLevel))
	}
	if c.SessionTTL < time.Minute {
		err = multierr.Append(err, fmt.Errorf("session TTL %s below 1m", c.SessionTTL))
	}
	if len(c.AllowedOrigins) == 0 {
		err = multierr.Append(err, fmt.Errorf("at least one allowed origin is required"))
	}
	return err
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
