// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the bookmarks HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis when REDIS_URL is set.
//  5. Run database migrations (idempotent).
//  6. Build the session subsystem and its reaper.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
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

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/bookmarks/internal/api"
	"github.com/taibuivan/bookmarks/internal/core/category"
	"github.com/taibuivan/bookmarks/internal/core/language"
	"github.com/taibuivan/bookmarks/internal/core/site"
	"github.com/taibuivan/bookmarks/internal/core/tag"
	"github.com/taibuivan/bookmarks/internal/platform/config"
	"github.com/taibuivan/bookmarks/internal/platform/constants"
	"github.com/taibuivan/bookmarks/internal/platform/migration"
	pgstore "github.com/taibuivan/bookmarks/internal/platform/postgres"
	redisstore "github.com/taibuivan/bookmarks/internal/platform/redis"
	"github.com/taibuivan/bookmarks/internal/platform/sec"
	"github.com/taibuivan/bookmarks/internal/users/account"
	"github.com/taibuivan/bookmarks/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("session_store", cfg.SessionStore),
	)

	// Root context: cancelled on SIGINT/SIGTERM, stops background loops.
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("postgres_pool_closing")
		pool.Close()
	}()

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	var rdb *goredis.Client
	if cfg.RedisURL != "" {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("redis_client_closing")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()
	}

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Sessions ───────────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)

	var sessionRepository auth.SessionRepository = auth.NewSessionRepository(pool)
	if cfg.SessionStore == config.SessionStoreRedis {
		sessionRepository = auth.NewRedisSessionRepository(rdb, userRepository)
	}

	sessionManager := auth.NewSessionManager(sessionRepository, log)
	cookies := sec.NewCookieIssuer(constants.SessionCookieName, cfg.IsProduction())

	reaper, err := auth.NewSessionReaper(sessionManager, cfg.SessionReapInterval, log)
	must(log, err, "schedule session reaper")
	reaper.Start()
	defer reaper.Stop(context.Background())

	// ── 7. Health handlers ────────────────────────────────────────────────
	healthDependencies := api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
	}
	if rdb != nil {
		healthDependencies.CheckCache = func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}
	}
	liveness, readiness := api.NewHealthHandlers(healthDependencies, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	authService := auth.NewService(userRepository, sessionManager, log, cfg.SkipPasswordCheck)
	accountService := account.NewService(userRepository, sessionManager, log)

	languageService := language.NewService(language.NewPostgresRepository(pool), log)
	categoryService := category.NewService(category.NewPostgresRepository(pool), log)
	tagService := tag.NewService(tag.NewPostgresRepository(pool), log)
	siteService := site.NewService(site.NewPostgresRepository(pool), categoryService.OwnerOf, languageService, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, cookies),
		Account:   account.NewHandler(accountService, cookies),
		Language:  language.NewHandler(languageService),
		Category:  category.NewHandler(categoryService),
		Tag:       tag.NewHandler(tagService),
		Site:      site.NewHandler(siteService),
	}

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(rootCtx, cfg, log, sessionManager, cookies, handlers)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case <-rootCtx.Done():
		log.Info("shutdown_signal_received")
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		return
	}

	log.Info("server_stopped")
}

// newLogger builds the process-wide JSON logger and installs it as the default.
func newLogger(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(logger)
	return logger
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
