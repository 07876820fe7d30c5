package server

import (
	"errors"
	"time"

	"teslo/internal/config"
	"teslo/internal/handlers"
	"teslo/internal/problem"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Handlers groups the route owners mounted under /api.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Products *handlers.ProductHandler
	Files    *handlers.FilesHandler
	Seed     *handlers.SeedHandler // nil leaves /seed unmounted
}

// New builds the Fiber app with its middleware and routes.
func New(cfg *config.Config, h Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "teslo",
		ErrorHandler: errorHandler,
		BodyLimit:    10 * 1024 * 1024,
		UnescapePath: true,
	})

	// --- Middleware ---
	app.Use(recover.New())
	if !cfg.IsProduction() {
		app.Use(logger.New())
	}
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.App.CORSOrigins}))

	// --- API Routes ---
	api := app.Group("/api")
	h.Auth.RegisterRoutes(api)
	h.Products.RegisterRoutes(api)
	h.Files.RegisterRoutes(api)
	if h.Seed != nil && !cfg.IsProduction() {
		h.Seed.RegisterRoutes(api)
	}

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}

// errorHandler renders errors no handler answered, such as unknown routes.
func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	detail := "Unexpected error, check server logs"
	var e *fiber.Error
	if errors.As(err, &e) {
		status = e.Code
		detail = e.Message
	}
	return problem.Write(c, status, detail)
}
