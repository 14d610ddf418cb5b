package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/geek-edu/courseledger/internal/core/domain"
	portsrepo "github.com/geek-edu/courseledger/internal/core/ports/repositories"
	"github.com/geek-edu/courseledger/internal/core/services"
	"github.com/geek-edu/courseledger/internal/dto"
	"github.com/geek-edu/courseledger/internal/handlers"
	"github.com/geek-edu/courseledger/internal/middleware"
	"github.com/geek-edu/courseledger/internal/platform/config"
	"github.com/geek-edu/courseledger/internal/repositories/database/pgsql"
	"github.com/geek-edu/courseledger/internal/repositories/memory"
	"github.com/geek-edu/courseledger/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title CourseLedger API
// @version 1.0
// @description Token ledger, certificate registry and course market for the course sale platform.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dto.RegisterCustomValidators()

	// The audit trail is the only persisted state. Without a database URL it
	// lives in process memory.
	var eventStore portsrepo.EventStore = memory.NewEventRepository()
	if cfg.DatabaseURL != "" {
		dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.ClosePgxPool(dbPool)
		logger.Info("Database connection pool established.")

		if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}

		eventStore = pgsql.NewPgxEventRepository(dbPool)
	}

	serviceContainer, err := services.NewServiceContainer(services.ContainerDeps{
		AdminAccount:    domain.AccountID(cfg.AdminAccount),
		MarketOwner:     domain.AccountID(cfg.MarketOwner),
		MarketTreasury:  domain.AccountID(cfg.MarketTreasury),
		MetadataBaseURI: cfg.MetadataBaseURI,
		AdminSecret:     cfg.AdminSecret,
		JWTSecret:       cfg.JWTSecret,
		JWTExpiry:       cfg.JWTExpiryDuration,
		JWTIssuer:       cfg.JWTIssuer,
		EventStore:      eventStore,
		Logger:          logger,
	})
	if err != nil {
		logger.Error("Failed to build service container", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("rate_limit", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memorystore.NewStore(), rate)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations from the migrations
// directory using a temporary database/sql connection.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
