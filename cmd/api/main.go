// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Cinelist HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the favorites store (PostgreSQL + migrations, or memory).
//  4. Connect to Redis when a catalog cache is configured.
//  5. Build the token verifier and the catalog chain.
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/cinelist/internal/api"
	"github.com/taibuivan/cinelist/internal/catalog"
	"github.com/taibuivan/cinelist/internal/contact"
	"github.com/taibuivan/cinelist/internal/favorites"
	"github.com/taibuivan/cinelist/internal/platform/config"
	"github.com/taibuivan/cinelist/internal/platform/constants"
	"github.com/taibuivan/cinelist/internal/platform/migration"
	pgstore "github.com/taibuivan/cinelist/internal/platform/postgres"
	redisstore "github.com/taibuivan/cinelist/internal/platform/redis"
	"github.com/taibuivan/cinelist/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("store_driver", cfg.StoreDriver),
		slog.Bool("catalog_cache", cfg.RedisURL != ""),
	)

	// Root context for startup. A 30s deadline surfaces misconfiguration
	// quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	var checks []api.HealthCheck

	// ── 3. Favorites Store ────────────────────────────────────────────────
	var repository favorites.Repository
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}()

		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		repository = favorites.NewPostgresRepository(pool)
		checks = append(checks, api.HealthCheck{Name: "postgres", Check: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		}})

	case config.StoreDriverMemory:
		log.Warn("memory_store_enabled", slog.Int("seed_users", len(cfg.MemorySeedUsers)))
		repository = favorites.NewMemoryRepository(cfg.MemorySeedUsers...)
	}

	// ── 4. Catalog Chain ──────────────────────────────────────────────────
	var movies catalog.Catalog = catalog.NewBreakerCatalog(
		catalog.NewTMDBClient(cfg.TMDBBaseURL, cfg.TMDBAPIKey, cfg.CatalogLanguage()),
		catalog.BreakerSettings{},
		log,
	)

	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()

		movies = catalog.NewRedisCache(movies, rdb, cfg.CatalogCacheTTL)
		checks = append(checks, api.HealthCheck{Name: "redis", Check: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}})
	}

	// ── 5. Token Verifier ─────────────────────────────────────────────────
	var tokens *sec.TokenService
	if cfg.JWTPubKeyPath != "" {
		tokens, err = sec.NewRSATokenService(cfg.JWTPubKeyPath, cfg.JWTIssuer)
	} else {
		tokens, err = sec.NewHMACTokenService(cfg.JWTSecret, cfg.JWTIssuer)
	}
	must(log, err, "initialize token verifier")

	// ── 6. Contact Delivery ───────────────────────────────────────────────
	var sender contact.Sender = contact.LogSender{}
	if cfg.SMTPHost != "" {
		sender = contact.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.ContactRecipient)
	} else {
		log.Warn("contact_smtp_disabled")
	}

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(checks, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Catalog:   catalog.NewHandler(movies),
		Favorites: favorites.NewHandler(favorites.NewService(repository, movies)),
		Contact:   contact.NewHandler(contact.NewService(sender)),
	}

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, tokens, handlers)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("server_shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
