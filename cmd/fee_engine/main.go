package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	portssvc "github.com/SscSPs/fx_fee_engine/internal/core/ports/services"
	"github.com/SscSPs/fx_fee_engine/internal/core/services"
	"github.com/SscSPs/fx_fee_engine/internal/handlers"
	"github.com/SscSPs/fx_fee_engine/internal/platform/config"
	"github.com/SscSPs/fx_fee_engine/internal/platform/logging"
	"github.com/SscSPs/fx_fee_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/fx_fee_engine/pkg/database"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		return 1
	}

	// stdout is reserved for command output.
	baseLogger := logging.InitLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		router := handlers.NewRouter()
		handlers.RegisterCommands(router, cfg, &portssvc.ServiceContainer{}, nil)
		router.Usage(os.Stdout)
		return 0
	}

	logger := logging.NewRunLogger(baseLogger, args[0])
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithLogger(ctx, logger)

	migrate := func(ctx context.Context) (bool, error) {
		return database.RunMigrations(ctx, cfg.DatabaseURL, cfg.MigrationsPath)
	}

	if cfg.RunMigrations && args[0] != "migrate" {
		applied, err := migrate(ctx)
		if err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			return 1
		}
		logger.Debug("Migrations checked", slog.Bool("applied", applied))
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		return 1
	}
	defer database.ClosePgxPool(dbPool)

	router := handlers.NewRouter()
	handlers.RegisterCommands(router, cfg, services.NewContainer(pgsql.NewRepositoryProvider(dbPool)), migrate)

	if err := router.Dispatch(ctx, args, os.Stdout); err != nil {
		logger.Error("Command failed", slog.String("error", err.Error()))
		if errors.Is(err, handlers.ErrUsage) {
			router.Usage(os.Stderr)
		}
		return 1
	}
	return 0
}
