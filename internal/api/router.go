package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/zipmint/archive-renamer/internal/domain"
	"github.com/zipmint/archive-renamer/internal/middleware"
)

// RouterConfig contains configuration for the HTTP router
type RouterConfig struct {
	CORSOrigins    []string
	BodyLimit      int
	RateLimitRPS   int
	RateLimitBurst int
}

// RouterDependencies contains all dependencies needed by the router
type RouterDependencies struct {
	Renamer       domain.Renamer
	Analyzer      domain.Analyzer
	Reader        domain.ListingReader
	Sessions      domain.SessionRepository
	Presets       domain.PresetRepository
	Validator     domain.Validator
	HealthChecker domain.HealthChecker
	Exporter      PresetExporter
}

// RouterResult contains the configured app and cleanup function
type RouterResult struct {
	App     *fiber.App
	Cleanup func()
}

// SetupRouter creates and configures the Fiber app with all routes and middleware
func SetupRouter(renamer domain.Renamer, analyzer domain.Analyzer, reader domain.ListingReader, sessions domain.SessionRepository, presets domain.PresetRepository, validator domain.Validator, healthChecker domain.HealthChecker, config RouterConfig) *fiber.App {
	result := SetupRouterWithDeps(RouterDependencies{
		Renamer:       renamer,
		Analyzer:      analyzer,
		Reader:        reader,
		Sessions:      sessions,
		Presets:       presets,
		Validator:     validator,
		HealthChecker: healthChecker,
	}, config)
	return result.App
}

// SetupRouterWithDeps creates and configures the Fiber app with all dependencies
func SetupRouterWithDeps(deps RouterDependencies, config RouterConfig) *RouterResult {
	// Create Fiber app with custom config
	app := fiber.New(fiber.Config{
		BodyLimit:    config.BodyLimit,
		ErrorHandler: customErrorHandler,
	})

	// Create handlers
	handlers := NewHandlers(deps.Renamer, deps.Analyzer, deps.Reader, deps.Sessions, deps.Presets, deps.Validator, deps.HealthChecker)
	presetHandlers := NewPresetHandlers(deps.Presets, deps.Exporter, deps.Validator)

	// Middleware pipeline (order is critical)

	// 1. RequestID middleware for UUID generation
	app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return generateUUID()
		},
	}))

	// 2. Structured logging middleware with zerolog
	app.Use(structuredLoggingMiddleware())

	// 3. Panic recovery middleware with stack trace logging
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			requestID := ""
			if rid, ok := c.Locals("requestid").(string); ok {
				requestID = rid
			}
			log.Error().
				Str("request_id", requestID).
				Interface("panic", e).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("ip", c.IP()).
				Msg("Panic recovered")
		},
	}))

	// 4. Security headers middleware (HSTS, XSS protection)
	app.Use(securityHeadersMiddleware())

	// 5. Rate limiting middleware (before CORS to limit all requests)
	var stopRateLimiter func()
	if config.RateLimitRPS > 0 {
		rateLimiter := middleware.NewRateLimiter(config.RateLimitRPS, config.RateLimitBurst)
		stopRateLimiter = rateLimiter.StartCleanupRoutine()
		app.Use(rateLimiter.Middleware())
	}

	// 6. CORS middleware with origin restrictions
	if len(config.CORSOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Join(config.CORSOrigins, ","),
			AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
			AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Request-ID",
			AllowCredentials: false,
			MaxAge:           86400, // 24 hours
		}))
	}

	// 7. Body limit middleware (upload ceiling) - handled by Fiber config above

	// API routes
	v1 := app.Group("/v1")

	// Stateless engine endpoints
	v1.Post("/rename", handlers.RenameHandler)
	v1.Post("/analyze", handlers.AnalyzeHandler)

	// Archive session endpoints
	v1.Post("/archives", handlers.UploadArchiveHandler)
	v1.Get("/archives/:id", handlers.GetArchiveHandler)
	v1.Post("/archives/:id/rename", handlers.ArchiveRenameHandler)
	v1.Post("/archives/:id/restore", handlers.RestoreArchiveHandler)
	v1.Post("/archives/:id/analyze", handlers.AnalyzeArchiveHandler)
	v1.Delete("/archives/:id", handlers.DeleteArchiveHandler)

	// Preset endpoints
	v1.Get("/presets", presetHandlers.ListPresetsHandler)
	v1.Post("/presets", presetHandlers.CreatePresetHandler)
	v1.Get("/presets/:id", presetHandlers.GetPresetHandler)
	v1.Put("/presets/:id", presetHandlers.UpdatePresetHandler)
	v1.Delete("/presets/:id", presetHandlers.DeletePresetHandler)
	v1.Get("/presets/:id/export", presetHandlers.ExportPresetHandler)

	// Health and metrics endpoints
	app.Get("/health", handlers.HealthHandler)
	app.Get("/metrics", handlers.MetricsHandler)

	// Swagger documentation endpoint
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Build cleanup function
	cleanup := func() {
		if stopRateLimiter != nil {
			stopRateLimiter()
		}
	}

	return &RouterResult{App: app, Cleanup: cleanup}
}

// customErrorHandler handles Fiber framework errors
func customErrorHandler(c *fiber.Ctx, err error) error {
	// Default to 500 server error
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Map common Fiber errors to domain errors
	switch code {
	case fiber.StatusRequestEntityTooLarge:
		return c.Status(413).JSON(ErrorResponse{
			Status:  "error",
			Code:    domain.ErrTooLarge,
			Message: "Request payload too large",
		})
	case fiber.StatusBadRequest:
		return c.Status(400).JSON(ErrorResponse{
			Status:  "error",
			Code:    domain.ErrInvalidInput,
			Message: message,
		})
	default:
		return c.Status(code).JSON(ErrorResponse{
			Status:  "error",
			Code:    domain.ErrInternal,
			Message: message,
		})
	}
}

// generateUUID generates a UUID v4 for request tracking
func generateUUID() string {
	return uuid.New().String()
}

// structuredLoggingMiddleware creates structured JSON logging middleware with zerolog
func structuredLoggingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Process request
		err := c.Next()

		// Log request details
		requestID := "unknown"
		if rid, ok := c.Locals("requestid").(string); ok {
			requestID = rid
		}

		latency := time.Since(start)
		status := c.Response().StatusCode()

		logEvent := log.Info()
		if status >= 400 {
			logEvent = log.Error()
		}

		logEvent.
			Str("request_id", requestID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", latency).
			Str("ip", c.IP()).
			Str("user_agent", c.Get("User-Agent")).
			Int("body_size", len(c.Body())).
			Int("response_size", len(c.Response().Body())).
			Msg("HTTP request processed")

		return err
	}
}

// securityHeadersMiddleware adds security headers (HSTS, XSS protection)
func securityHeadersMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Security headers
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

		return c.Next()
	}
}
