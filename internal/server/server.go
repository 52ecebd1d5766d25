package server

import (
	"context"

	"promptito-be/internal/bootstrap"
	"promptito-be/internal/config"
	"promptito-be/internal/controller"
	"promptito-be/internal/pkg/serverutils"
	"promptito-be/pkg/database"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

type healthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:             4 * 1024 * 1024,
		DisableStartupMessage: cfg.App.IsProduction(),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Accept-Language, Authorization, " + controller.HeaderClientID,
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Content-Disposition",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware(container.Logger))

	app.Get("/health", healthHandler(container))
	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.container.Logger.Info("Server", "Server is running", map[string]interface{}{"port": s.cfg.App.Port})
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func healthHandler(c *bootstrap.Container) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		res := healthStatus{Status: "ok", Database: "disabled", Redis: "disabled"}
		if c.DB != nil {
			res.Database = "ok"
			if err := database.Ping(c.DB); err != nil {
				res.Database = "down"
				res.Status = "degraded"
			}
		}
		if c.Redis != nil {
			res.Redis = "ok"
			if err := c.Redis.Ping(ctx.UserContext()).Err(); err != nil {
				res.Redis = "down"
				res.Status = "degraded"
			}
		}
		return ctx.JSON(serverutils.SuccessResponse("Health", res))
	}
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.BuilderController.RegisterRoutes(api)
	c.CatalogController.RegisterRoutes(api)
	c.PreferenceController.RegisterRoutes(api)

	c.GalleryController.RegisterRoutes(api)
	c.ModerationController.RegisterRoutes(api)
	c.DashboardController.RegisterRoutes(api)

	c.SkillPackController.RegisterRoutes(api)
	c.AgentController.RegisterRoutes(api)

	if c.NotificationHandler != nil {
		c.NotificationHandler.RegisterRoutes(api)
	}
}
