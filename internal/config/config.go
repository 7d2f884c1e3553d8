// Package config reads server settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/mmynk/brgrr/pkg/logging"
)

// Session storage backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

const defaultSecret = "brgrr-dev-secret"

// Config holds the server settings.
type Config struct {
	Port       int
	DBPath     string
	StaticPath string

	// SessionBackend selects where session-scoped data lives.
	SessionBackend string
	RedisAddr      string

	SessionSecret      string
	SessionIdleTimeout time.Duration

	LogLevel slog.Level
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// Load reads the configuration from environment variables, falling back to
// development defaults.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil || port <= 0 {
		return nil, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}

	idle, err := time.ParseDuration(getEnv("SESSION_IDLE_TIMEOUT", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_IDLE_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Port:               port,
		DBPath:             getEnv("DB_PATH", "./data/brgrr.db"),
		StaticPath:         getEnv("STATIC_PATH", "../frontend/static"),
		SessionBackend:     getEnv("SESSION_BACKEND", BackendMemory),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		SessionSecret:      getEnv("SESSION_SECRET", defaultSecret),
		SessionIdleTimeout: idle,
		LogLevel:           logging.ParseLevel(os.Getenv("LOG_LEVEL")),
	}

	switch cfg.SessionBackend {
	case BackendMemory, BackendSQLite, BackendRedis:
	default:
		return nil, fmt.Errorf("unknown SESSION_BACKEND %q", cfg.SessionBackend)
	}

	if cfg.SessionSecret == defaultSecret {
		slog.Warn("SESSION_SECRET not set, using development secret")
	}
	return cfg, nil
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
