package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Options struct {
	Logger      zerolog.Logger
	Gatherer    prometheus.Gatherer
	MetricsPath string
	// Archive is nil when events are not persisted; /ready then only
	// reports the process state.
	Archive Pinger
}

// NewApp builds the fiber app with middleware and the operational routes.
// Public: /health, /ready, the metrics path, /docs/*
func NewApp(opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(AccessLog(opts.Logger))
	app.Use(recover.New())

	// Liveness: confirms the process is running.
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	// Readiness: confirms the archive is reachable when one is configured.
	app.Get("/ready", func(c *fiber.Ctx) error {
		if opts.Archive == nil {
			return c.Status(http.StatusOK).JSON(fiber.Map{"status": "ready"})
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), time.Second)
		defer cancel()

		if err := opts.Archive.PingContext(ctx); err != nil {
			return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "not_ready",
				"error":  err.Error(),
			})
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{"status": "ready"})
	})

	if opts.Gatherer != nil {
		app.Get(opts.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	return app
}
