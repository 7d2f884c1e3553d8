package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/brgrr/internal/auth"
	"github.com/mmynk/brgrr/internal/catalog"
	"github.com/mmynk/brgrr/internal/config"
	"github.com/mmynk/brgrr/internal/metrics"
	"github.com/mmynk/brgrr/internal/session"
	"github.com/mmynk/brgrr/internal/storage"
	"github.com/mmynk/brgrr/internal/storage/memory"
	"github.com/mmynk/brgrr/internal/storage/redis"
	"github.com/mmynk/brgrr/internal/storage/sqlite"
	"github.com/mmynk/brgrr/pkg/logging"
)

const (
	tokenDuration = 24 * time.Hour
	sweepInterval = time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup()
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.SetupWithLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Favorites outlive sessions, so the device scope is always on disk.
	deviceStore, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer deviceStore.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	sessionStore, err := openSessionStore(ctx, cfg, deviceStore)
	if err != nil {
		slog.Error("Failed to initialize session storage", "backend", cfg.SessionBackend, "error", err)
		os.Exit(1)
	}
	if sessionStore != storage.Store(deviceStore) {
		defer sessionStore.Close()
	}
	slog.Info("Session storage initialized", "backend", cfg.SessionBackend)

	m := metrics.New()
	manager := session.NewManager(session.Options{
		SessionStore:   sessionStore,
		DeviceStore:    deviceStore,
		Catalog:        catalog.Default(),
		Metrics:        m,
		IdleTimeout:    cfg.SessionIdleTimeout,
		EndedRetention: tokenDuration,
	})
	go manager.Run(ctx, sweepInterval)
	if cfg.SessionIdleTimeout > 0 && cfg.SessionBackend == config.BackendSQLite {
		go purgeStaleSessions(ctx, deviceStore, cfg.SessionIdleTimeout)
	}

	jwtManager := auth.NewJWTManager(cfg.SessionSecret, tokenDuration)

	staticDir, err := filepath.Abs(cfg.StaticPath)
	if err != nil {
		slog.Error("Failed to resolve static path", "error", err)
		os.Exit(1)
	}
	slog.Info("Serving static files", "path", staticDir)

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(newRouter(manager, jwtManager, m, staticDir), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Shutdown failed", "error", err)
		}
	}()

	slog.Info("Connect server starting", "address", server.Addr, "url", "http://localhost"+server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

// openSessionStore returns the store for session-scoped data. The sqlite
// backend shares the device database.
func openSessionStore(ctx context.Context, cfg *config.Config, db *sqlite.SQLiteStore) (storage.Store, error) {
	switch cfg.SessionBackend {
	case config.BackendSQLite:
		return db, nil
	case config.BackendRedis:
		// Redis expires abandoned sessions on its own.
		store, err := redis.New(ctx, cfg.RedisAddr, cfg.SessionIdleTimeout)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return memory.New(), nil
	}
}

// purgeStaleSessions drops session namespaces left by tabs that were closed
// without ending their session, including ones from before a restart.
// Live sessions keep their namespace fresh through Manager.Get.
func purgeStaleSessions(ctx context.Context, db *sqlite.SQLiteStore, idle time.Duration) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := db.PurgeStale(ctx, storage.SessionNamespace(""), time.Now().Add(-idle))
			if err != nil {
				slog.Warn("Failed to purge stale sessions", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("Stale session data purged", "rows", n)
			}
		}
	}
}
