package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/Abraxas-365/sparkx/pkg/config"
	"github.com/Abraxas-365/sparkx/pkg/errx"
	"github.com/Abraxas-365/sparkx/pkg/logx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// 1. Configuration and logger
	cfg, err := config.Load()
	if err != nil {
		logx.WithError(err).Fatal("failed to load configuration")
	}
	log := cfg.Log.Logger()
	logx.SetDefaultLogger(log)

	log.WithFields(nil).Info("starting sparkhook")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Dependency container
	container, err := NewContainer(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize container")
	}
	defer container.Cleanup()

	// 3. HTTP app
	app := newApp(container)

	// 4. Background workers
	workers := container.StartBackgroundServices(ctx)

	// 5. Serve until a signal arrives
	serveErr := make(chan error, 1)
	go func() {
		log.WithFields(logx.Fields{
			"addr":    cfg.Hook.Addr,
			"webhook": cfg.Hook.Path,
		}).Info("server listening")
		serveErr <- app.Listen(cfg.Hook.Addr)
	}()

	select {
	case <-ctx.Done():
		log.WithFields(nil).Info("shutting down gracefully")
	case err := <-serveErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.WithError(err).Error("server error")
		}
		stop()
	}

	if err := app.ShutdownWithTimeout(cfg.Jobx.ShutdownTimeout); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}
	if err := <-workers; err != nil {
		log.WithError(err).Error("job workers stopped with error")
	}
	log.WithFields(nil).Info("server exited")
}

// newApp builds the fiber app serving the webhook intake, health and metrics.
func newApp(c *Container) *fiber.App {
	hc := c.Config.Hook

	app := fiber.New(fiber.Config{
		AppName:               "sparkhook",
		DisableStartupMessage: true,
		ErrorHandler:          errx.FiberHandler,
		BodyLimit:             hc.BodyLimit,
		ReadTimeout:           hc.ReadTimeout,
		WriteTimeout:          hc.WriteTimeout,
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path} | ${ip} | ${respHeader:X-Request-ID}\n",
		TimeFormat: "2006-01-02 15:04:05",
		Output:     os.Stderr,
	}))

	c.Handler.RegisterRoutes(app, hc.Path)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{})))

	app.Use(notFoundHandler)
	return app
}

func notFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":      "Route not found",
		"code":       "NOT_FOUND",
		"path":       c.Path(),
		"method":     c.Method(),
		"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
	})
}
