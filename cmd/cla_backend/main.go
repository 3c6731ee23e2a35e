package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/cardledger/card_ledger_app/internal/core/services"
	"github.com/cardledger/card_ledger_app/internal/handlers"
	"github.com/cardledger/card_ledger_app/internal/middleware"
	"github.com/cardledger/card_ledger_app/internal/platform/config"
	"github.com/cardledger/card_ledger_app/internal/repositories/database/pgsql"
	"github.com/cardledger/card_ledger_app/pkg/cache"
	"github.com/cardledger/card_ledger_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portsrepo "github.com/cardledger/card_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/cardledger/card_ledger_app/internal/core/ports/services"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Card Ledger API
// @version 1.0
// @description Ledger reconstruction and partner distribution backend for a prepaid-card reseller business.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := runMigrations(cfg, logger); err != nil {
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	repos := pgsql.NewRepositoryProvider(dbPool)
	svcContainer := buildServices(cfg, repos, registry)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	requestMetrics := middleware.NewRequestMetrics(registry)
	r.Use(requestMetrics.Middleware())

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(r, cfg, svcContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newLogger builds the structured logger: JSON in production, colorized
// tint output for local development.
func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsProduction {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.Kitchen,
	}))
}

// runMigrations applies all pending "up" migrations using a temporary
// standard sql.DB connection over the pgx stdlib driver.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", upErr.Error()))
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		return sourceErr
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// buildServices wires the repositories into the service container. All report
// reads share one tagged in-memory cache that the mutating services
// invalidate through.
func buildServices(cfg *config.Config, repos *portsrepo.RepositoryProvider, registry prometheus.Registerer) *portssvc.ServiceContainer {
	var reportCache cache.Cache = cache.Passthrough{}
	if !cfg.CacheDisabled {
		reportCache = cache.NewMemoryCache(
			cache.WithMetrics(cache.NewMetrics(registry, "reports")),
			cache.WithJanitor(time.Minute),
		)
	}

	periods := services.NewPeriodResolver(
		services.WithEarliestDate(func() (time.Time, bool) {
			day, ok, err := repos.DatesRepo.FindEarliestRecordDate(context.Background())
			if err != nil {
				slog.Warn("Failed to find earliest record date", slog.String("error", err.Error()))
				return time.Time{}, false
			}
			return day, ok
		}),
	)

	return &portssvc.ServiceContainer{
		Records:  services.NewRecordService(*repos, services.WithRecordCache(reportCache)),
		Stores:   services.NewStoreService(*repos, services.WithStoreCache(reportCache)),
		Partners: services.NewPartnerService(*repos, services.WithPartnerCache(reportCache)),
		Reporting: services.NewReportingService(*repos,
			services.WithReportCache(reportCache),
			services.WithReportTTL(cfg.ReportTTL),
		),
		Periods: periods,
	}
}
