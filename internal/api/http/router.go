package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"go.uber.org/zap"

	"github.com/spec-kit/hr-portal/internal/api/http/handlers"
	"github.com/spec-kit/hr-portal/internal/auth"
	"github.com/spec-kit/hr-portal/internal/domain"
	"github.com/spec-kit/hr-portal/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	OrgChart       *handlers.OrgChartHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// NewApp builds the Fiber application with middlewares and routes attached.
func NewApp(name string, logger *zap.Logger, timeout time.Duration, routes RouteConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               name,
		DisableStartupMessage: true,
		Immutable:             true,
	})
	RegisterMiddlewares(app, logger, routes.Metrics, timeout)
	RegisterRoutes(app, routes)
	return app
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	app.Post("/auth/login", cfg.Auth.Login)

	adminOnly := auth.RequireRole(domain.RoleAdmin)

	chart := app.Group("/organigramme", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	chart.Get("/data", cfg.OrgChart.Data)
	chart.Get("/:id/supervisor-candidates", cfg.OrgChart.SupervisorCandidates)
	chart.Post("/add", adminOnly, cfg.OrgChart.Add)
	chart.Put("/:id", adminOnly, cfg.OrgChart.Update)
	chart.Delete("/:id", adminOnly, cfg.OrgChart.Delete)

	employees := app.Group("/employees", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	employees.Get("/", cfg.OrgChart.ListEmployees)
	employees.Get("/:id", cfg.OrgChart.GetEmployee)
}
