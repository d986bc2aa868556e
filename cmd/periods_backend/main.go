package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"

	portsrepo "github.com/SscSPs/ledger_periods/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_periods/internal/core/services"
	"github.com/SscSPs/ledger_periods/internal/handlers"
	"github.com/SscSPs/ledger_periods/internal/middleware"
	"github.com/SscSPs/ledger_periods/internal/platform/config"
	"github.com/SscSPs/ledger_periods/internal/platform/lock"
	"github.com/SscSPs/ledger_periods/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_periods/internal/repositories/memory"
	"github.com/SscSPs/ledger_periods/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// @title Ledger Periods API
// @version 1.0
// @description Accounting period lifecycle and period-close reconciliation.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	repos, cleanup, err := setupRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("driver", cfg.StorageDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	locker, closeLocker, err := setupLocker(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize period locker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeLocker()

	serviceContainer := services.NewServiceContainer(repos, services.WithPeriodLocker(locker))

	r, err := newRouter(cfg, logger)
	if err != nil {
		logger.Error("Failed to configure router", slog.String("error", err.Error()))
		os.Exit(1)
	}
	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// setupRepositories opens the configured store. The returned cleanup is always safe to call.
func setupRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		logger.Warn("Using in-memory storage; data is lost on restart")
		ledger := memory.NewLedgerRepository()
		return portsrepo.RepositoryProvider{
			PeriodRepo:  memory.NewPeriodRepository(),
			LedgerRepo:  ledger,
			JournalRepo: ledger,
		}, func() {}, nil

	case config.StorageDriverPostgres:
		logger.Info("Running database migrations...", slog.String("source", cfg.MigrationsPath))
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return portsrepo.RepositoryProvider{}, func() {}, err
		}

		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, func() {}, err
		}
		return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil

	default:
		return portsrepo.RepositoryProvider{}, func() {}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

// setupLocker returns a Redis backed locker when REDIS_ADDRESS is set, else an in-process one.
func setupLocker(ctx context.Context, cfg *config.Config, logger *slog.Logger) (lock.Locker, func(), error) {
	if cfg.RedisAddress == "" {
		logger.Info("REDIS_ADDRESS not set; period locks are in-process only")
		return lock.NewKeyedLocker(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddress})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddress, err)
	}

	logger.Info("Using Redis period locks", slog.String("address", cfg.RedisAddress), slog.Duration("ttl", cfg.CloseLockTTL))
	return lock.NewRedisLocker(client, cfg.CloseLockTTL), func() {
		if err := client.Close(); err != nil {
			logger.Error("Error closing redis client", slog.String("error", err.Error()))
		}
	}, nil
}

func newRouter(cfg *config.Config, logger *slog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) == 0 || slices.Contains(cfg.CORSAllowedOrigins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AddAllowHeaders("Authorization", handlers.OrganizationHeader, middleware.RequestIDHeader)
	corsConfig.AddExposeHeaders(middleware.RequestIDHeader)

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return nil, err
	}

	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		cors.New(corsConfig),
		middleware.RateLimit(rateLimiter),
	)
	return r, nil
}
