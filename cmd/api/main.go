package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httptransport "github.com/spec-kit/hr-portal/internal/api/http"
	"github.com/spec-kit/hr-portal/internal/api/http/handlers"
	"github.com/spec-kit/hr-portal/internal/auth"
	"github.com/spec-kit/hr-portal/internal/config"
	"github.com/spec-kit/hr-portal/internal/events"
	"github.com/spec-kit/hr-portal/internal/observability"
	"github.com/spec-kit/hr-portal/internal/persistence"
	"github.com/spec-kit/hr-portal/internal/repository"
	"github.com/spec-kit/hr-portal/internal/service"
	"github.com/spec-kit/hr-portal/internal/validator"
	"github.com/spec-kit/hr-portal/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Env == "development")
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	var employeeRepo repository.EmployeeRepository
	dependencies := map[string]handlers.Pinger{}
	if pg.Enabled() {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(cfg.Postgres.DSN, os.DirFS(cfg.Postgres.MigrationsDir), logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		employeeRepo = repository.NewEmployeeRepository(pg.PoolHandle())
		dependencies["postgres"] = pg
	} else {
		employeeRepo = repository.NewInMemoryEmployeeRepository()
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()
	dependencies["redis"] = redis

	metrics := observability.NewMetrics("hr_portal")
	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, events.NewRedisPublisher(redis.Client), logger, cfg.Events)
	worker.StartNotificationWorker(notificationService, logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		EmployeeRepo: employeeRepo,
		Logger:       logger,
	})
	if _, err := authService.BootstrapAdmin(ctx, cfg.Seed); err != nil {
		logger.Fatal("failed to bootstrap administrator", zap.Error(err))
	}
	chartService := service.NewOrgChartService(*cfg, service.OrgChartDependencies{
		EmployeeRepo: employeeRepo,
		Dispatcher:   dispatcher,
		Metrics:      metrics,
		Logger:       logger,
	})

	v := validator.New()
	app := httptransport.NewApp(cfg.App.Name, logger, cfg.App.RequestTimeout(), httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dependencies),
		Auth:           handlers.NewAuthHandler(authService, v),
		OrgChart:       handlers.NewOrgChartHandler(chartService, v),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), employeeRepo),
		Metrics:        metrics,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.Bool("postgres", pg.Enabled()))
		return app.Listen(cfg.App.Addr())
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})
	if err := g.Wait(); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
}
