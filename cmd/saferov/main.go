package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/anubhav-001/saferov/internal/api/http"
	"github.com/anubhav-001/saferov/internal/cache"
	"github.com/anubhav-001/saferov/internal/config"
	"github.com/anubhav-001/saferov/internal/crime"
	"github.com/anubhav-001/saferov/internal/geo"
	"github.com/anubhav-001/saferov/internal/observability"
	"github.com/anubhav-001/saferov/internal/safety"
	"github.com/anubhav-001/saferov/internal/scheduler"
	"github.com/anubhav-001/saferov/internal/weather"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound upstream calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	metrics := observability.NewMetrics()

	// Data adapters with resilience (backoff + circuit breaker) and per-source
	// TTL caches.
	crimeSvc := crime.NewService(httpClient, crime.Options{
		BaseURL: cfg.CrimeAPIBaseURL,
		APIKey:  cfg.CrimeAPIKey,
		Cache:   cache.New(cfg.CrimeCacheTTL, nil),
		Metrics: metrics,
	})
	weatherSvc := weather.NewService(httpClient, weather.Options{
		BaseURL: cfg.WeatherAPIBaseURL,
		APIKey:  cfg.WeatherAPIKey,
		Cache:   cache.New(cfg.WeatherCacheTTL, nil),
		Metrics: metrics,
	})

	// Aggregation engine with optional geocoding.
	engine := safety.NewEngine(safety.Options{
		Crime:    crimeSvc,
		Weather:  weatherSvc,
		Resolver: geo.NewResolver(cfg.GeocoderAPIKey),
		Metrics:  metrics,
	})

	// Scheduler that keeps tracked-location caches warm.
	sched := scheduler.New(cfg.TrackedLocations, cfg.FetchInterval, crimeSvc, weatherSvc)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "saferov",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "saferov",
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API routes.
	httpapi.RegisterRoutes(app, engine, crimeSvc, weatherSvc)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
