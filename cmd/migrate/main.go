package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"

	"github.com/spec-kit/hr-portal/internal/config"
	"github.com/spec-kit/hr-portal/internal/observability"
	"github.com/spec-kit/hr-portal/internal/persistence"
)

func main() {
	var (
		command = flag.String("command", "", "Migration command: up, down, version, force")
		steps   = flag.Int("steps", 0, "Number of migration steps (for up/down)")
		version = flag.Int("version", 0, "Migration version (for force)")
	)
	flag.Parse()

	if *command == "" {
		fmt.Println("Usage: migrate -command [up|down|version|force] [-steps N] [-version N]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Postgres.DSN == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Env == "development")
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	m, err := persistence.NewMigrator(cfg.Postgres.DSN, os.DirFS(cfg.Postgres.MigrationsDir), logger)
	if err != nil {
		logger.Fatal("failed to create migrator", zap.Error(err))
	}
	defer m.Close()

	switch *command {
	case "up":
		if *steps > 0 {
			err = m.Steps(*steps)
		} else {
			err = m.Up()
		}
		report(logger, "up", err)
	case "down":
		n := *steps
		if n <= 0 {
			n = 1
		}
		report(logger, "down", m.Steps(-n))
	case "version":
		v, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			logger.Info("no migrations applied")
			return
		}
		if err != nil {
			logger.Fatal("failed to read version", zap.Error(err))
		}
		logger.Info("schema version", zap.Uint("version", v), zap.Bool("dirty", dirty))
	case "force":
		if *version <= 0 {
			logger.Fatal("-version is required for force")
		}
		if err := m.Force(*version); err != nil {
			logger.Fatal("force failed", zap.Error(err))
		}
		logger.Info("schema version forced", zap.Int("version", *version))
	default:
		logger.Fatal("unknown command", zap.String("command", *command))
	}
}

func report(logger *zap.Logger, direction string, err error) {
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("no migrations to run", zap.String("direction", direction))
	case err != nil:
		logger.Fatal("migration failed", zap.String("direction", direction), zap.Error(err))
	default:
		logger.Info("migrations complete", zap.String("direction", direction))
	}
}
