package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_PATH", "STATIC_PATH", "SESSION_BACKEND", "REDIS_ADDR", "SESSION_SECRET", "SESSION_IDLE_TIMEOUT", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("expected :8080, got %s", cfg.Addr())
	}
	if cfg.SessionBackend != BackendMemory {
		t.Errorf("expected memory backend, got %s", cfg.SessionBackend)
	}
	if cfg.SessionIdleTimeout != 30*time.Minute {
		t.Errorf("expected 30m idle timeout, got %v", cfg.SessionIdleTimeout)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("SESSION_IDLE_TIMEOUT", "5m")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.SessionBackend != BackendRedis || cfg.RedisAddr != "redis:6379" {
		t.Errorf("unexpected redis settings: %+v", cfg)
	}
	if cfg.SessionIdleTimeout != 5*time.Minute {
		t.Errorf("expected 5m, got %v", cfg.SessionIdleTimeout)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.LogLevel)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad port", "PORT", "eighty"},
		{"negative port", "PORT", "-1"},
		{"bad backend", "SESSION_BACKEND", "etcd"},
		{"bad timeout", "SESSION_IDLE_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
