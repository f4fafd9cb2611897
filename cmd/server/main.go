package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"

	httpAdapter "github.com/lorrc/mentor-portal/internal/adapters/primary/http"
	mw "github.com/lorrc/mentor-portal/internal/adapters/primary/http/middleware"
	"github.com/lorrc/mentor-portal/internal/adapters/primary/web"
	"github.com/lorrc/mentor-portal/internal/adapters/secondary/api"
	"github.com/lorrc/mentor-portal/internal/adapters/secondary/cache"
	"github.com/lorrc/mentor-portal/internal/adapters/secondary/postgres"
	"github.com/lorrc/mentor-portal/internal/auth"
	"github.com/lorrc/mentor-portal/internal/catalog"
	"github.com/lorrc/mentor-portal/internal/config"
	"github.com/lorrc/mentor-portal/internal/core/forms"
	"github.com/lorrc/mentor-portal/internal/core/ports"
	"github.com/lorrc/mentor-portal/internal/core/services"
	"github.com/lorrc/mentor-portal/internal/infrastructure/logging"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Structured Logger
	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      os.Stdout,
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Environment,
	})

	logger.Info("starting service",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
		"config", cfg.String(),
	)

	ctx := context.Background()

	// 3. Account backend, optionally behind the profile cache
	gateway, checks, cleanup, err := newGateway(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize account backend", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	if cfg.Redis.Enabled() {
		rdb := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		store := cache.NewRedisStore(rdb)
		defer store.Close()

		if err := store.Ping(ctx); err != nil {
			logger.Warn("redis ping failed, cache reads will fall through", "error", err)
		}
		profileCache := cache.NewProfileCache(gateway, store, cfg.Redis.ProfileTTL, logger)
		gateway = profileCache
		checks["cache"] = profileCache
		logger.Info("profile cache enabled", "ttl", cfg.Redis.ProfileTTL)
	}

	// 4. Reference data and form rules
	cat := catalog.MustLoad()
	engine := forms.NewEngine()
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL, cfg.JWT.EditGrantTTL)

	// 5. Initialize Rate Limiters
	var generalRateLimiter, accountRateLimiter *mw.RateLimiter
	if cfg.RateLimit.Enabled {
		general := mw.DefaultRateLimiterConfig()
		general.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		general.BurstSize = cfg.RateLimit.BurstSize
		generalRateLimiter = mw.NewRateLimiter(general)
		defer generalRateLimiter.Stop()

		account := mw.AccountRateLimiterConfig()
		account.RequestsPerSecond = cfg.RateLimit.AccountRPS
		account.BurstSize = cfg.RateLimit.AccountBurst
		accountRateLimiter = mw.NewRateLimiter(account)
		defer accountRateLimiter.Stop()
	}

	// 6. Dependency Injection (Wiring the Hexagon)
	errorHandler := httpAdapter.NewErrorHandler(logger)

	signupService := services.NewSignupService(gateway, cat, cat.SignupFields(), engine, logger)
	profileService := services.NewProfileService(gateway, cat, cat.PasswordConfirmationFields(), engine, cfg.App.DefaultProfileImage, logger)

	renderer, err := web.NewRenderer()
	if err != nil {
		logger.Error("failed to parse templates", "error", err)
		os.Exit(1)
	}

	pageHandler := web.NewHandler(signupService, profileService, tokenManager, renderer, web.Options{
		AppName:        cfg.App.Name,
		Countries:      cat.CountryNames(),
		Categories:     cat.Categories(),
		SecureCookies:  cfg.Server.SecureCookies,
		AccountLimiter: accountRateLimiter,
	}, logger)
	accountHandler := httpAdapter.NewAccountHandler(signupService, profileService, tokenManager, errorHandler, cfg.Server.SecureCookies, logger)
	healthHandler := httpAdapter.NewHealthHandler(checks, cfg.App.Version)

	// 7. Setup Router
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.RecoveryLogger(logger))

	if generalRateLimiter != nil {
		r.Use(generalRateLimiter.Limit(http.HandlerFunc(pageHandler.HandleRateLimited)))
	}

	healthHandler.RegisterRoutes(r)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", mw.EditGrantHeader},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
		if accountRateLimiter != nil {
			r.Use(accountRateLimiter.Middleware)
		}

		accountHandler.RegisterPublicRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(mw.JWTMiddleware(tokenManager))
			accountHandler.RegisterRoutes(r)
		})
	})

	// Pages last so their NotFound handler covers everything else.
	pageHandler.RegisterRoutes(r)

	// 8. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server shutdown complete")
}

// newGateway builds the configured account backend and its health checks.
// cleanup releases whatever the backend opened.
func newGateway(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.AccountGateway, map[string]ports.HealthChecker, func(), error) {
	switch cfg.Backend.Mode {
	case config.BackendPostgres:
		pool, err := openDatabase(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		store := postgres.NewAccountStore(pool, logger)
		return store, map[string]ports.HealthChecker{"database": store}, pool.Close, nil
	default:
		client := api.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, logger)
		logger.Info("using remote account backend", "url", cfg.Backend.BaseURL)
		return client, map[string]ports.HealthChecker{"backend": client}, func() {}, nil
	}
}

func openDatabase(ctx context.Context, dbCfg config.DatabaseConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	mig, err := migrate.New(dbCfg.MigrationsPath, dbCfg.URL)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	if srcErr, dbErr := mig.Close(); srcErr != nil || dbErr != nil {
		logger.Warn("closing migrate instance", "source_error", srcErr, "database_error", dbErr)
	}

	poolConfig, err := pgxpool.ParseConfig(dbCfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(dbCfg.MaxOpenConns)
	poolConfig.MinConns = int32(dbCfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = dbCfg.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = dbCfg.ConnMaxIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping: %w", err)
	}

	logger.Info("database connection established")
	return pool, nil
}
