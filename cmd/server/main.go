package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/zipmint/archive-renamer/internal/analyzer"
	"github.com/zipmint/archive-renamer/internal/api"
	"github.com/zipmint/archive-renamer/internal/archive"
	"github.com/zipmint/archive-renamer/internal/config"
	"github.com/zipmint/archive-renamer/internal/domain"
	"github.com/zipmint/archive-renamer/internal/health"
	"github.com/zipmint/archive-renamer/internal/preset"
	"github.com/zipmint/archive-renamer/internal/rename"
	"github.com/zipmint/archive-renamer/internal/session"

	docs "github.com/zipmint/archive-renamer/docs"
)

// @title Archive Renamer Microservice API
// @version 1.0
// @description Batch rename rule engine and pre-flight analyzer for uploaded ZIP archive listings
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /
// @schemes http https

// @tag.name Rename
// @tag.description Stateless batch rename operations

// @tag.name Analyze
// @tag.description Stateless archive listing analysis

// @tag.name Archives
// @tag.description Uploaded archive session operations

// @tag.name Presets
// @tag.description Rule preset management operations

// @tag.name System
// @tag.description System health and metrics operations

func main() {
	healthCheck := flag.Bool("health-check", false, "Perform health check and exit")
	flag.Parse()

	if *healthCheck {
		performHealthCheck()
		return
	}

	setupLogger()

	log.Info().Msg("Archive Renamer Microservice starting...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatal().Err(err).Msg("Failed to create required directories")
	}

	docs.SwaggerInfo.Host = os.Getenv("DOMAIN")

	logStartupConfig(cfg)

	presets := preset.NewStore(cfg.Storage.PresetDir)

	ctx := context.Background()
	if err := presets.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load presets")
	}

	sessions := session.NewStore(cfg.Session.MaxSessions, cfg.Session.TTL)
	stopSweeper := sessions.StartSweeper(cfg.Session.SweepInterval)

	reader := archive.NewReader(cfg.Limits.MaxEntries)
	renamer := rename.NewEngine()
	listingAnalyzer := analyzer.NewAnalyzer()

	validator := domain.NewValidator(cfg.Limits.MaxEntries, cfg.Limits.MaxRuleGroups, cfg.Limits.MaxRulesPerGroup)

	healthChecker := health.NewSystemHealthChecker(sessions, presets)

	routerConfig := api.RouterConfig{
		CORSOrigins:    cfg.Security.CORSOrigins,
		BodyLimit:      cfg.Server.BodyLimit,
		RateLimitRPS:   cfg.Security.RateLimitRPS,
		RateLimitBurst: cfg.Security.RateLimitBurst,
	}

	result := api.SetupRouterWithDeps(api.RouterDependencies{
		Renamer:       renamer,
		Analyzer:      listingAnalyzer,
		Reader:        reader,
		Sessions:      sessions,
		Presets:       presets,
		Validator:     validator,
		HealthChecker: healthChecker,
		Exporter:      presets,
	}, routerConfig)
	app := result.App

	app.Server().ReadTimeout = cfg.Server.ReadTimeout
	app.Server().WriteTimeout = cfg.Server.WriteTimeout

	setupGracefulShutdown(app, stopSweeper, result.Cleanup)

	serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info().
		Int("port", cfg.Server.Port).
		Str("addr", serverAddr).
		Msg("Starting HTTP server")

	if err := app.Listen(serverAddr); err != nil {
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

func setupLogger() {
	zerolog.TimeFieldFormat = time.RFC3339

	level := os.Getenv("LOG_LEVEL")
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if os.Getenv("LOG_FORMAT") == "text" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func logStartupConfig(cfg *config.Config) {
	log.Info().
		Int("server_port", cfg.Server.Port).
		Dur("server_read_timeout", cfg.Server.ReadTimeout).
		Dur("server_write_timeout", cfg.Server.WriteTimeout).
		Int("server_body_limit", cfg.Server.BodyLimit).
		Int("session_max_sessions", cfg.Session.MaxSessions).
		Dur("session_ttl", cfg.Session.TTL).
		Dur("session_sweep_interval", cfg.Session.SweepInterval).
		Int("limits_max_entries", cfg.Limits.MaxEntries).
		Int("limits_max_rule_groups", cfg.Limits.MaxRuleGroups).
		Int("limits_max_rules_per_group", cfg.Limits.MaxRulesPerGroup).
		Str("storage_preset_dir", cfg.Storage.PresetDir).
		Strs("security_cors_origins", cfg.Security.CORSOrigins).
		Int("security_rate_limit_rps", cfg.Security.RateLimitRPS).
		Str("logging_level", cfg.Logging.Level).
		Str("logging_format", cfg.Logging.Format).
		Msg("Configuration loaded successfully")
}

func setupGracefulShutdown(app *fiber.App, stopSweeper func(), routerCleanup func()) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-ctx.Done()
		stop()

		log.Info().Msg("Received shutdown signal, initiating graceful shutdown")

		log.Info().Msg("Stopping session sweeper...")
		stopSweeper()

		if routerCleanup != nil {
			routerCleanup()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		log.Info().Msg("Stopping HTTP server...")
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during HTTP server shutdown")
		}

		log.Info().Msg("Graceful shutdown completed")
		os.Exit(0)
	}()
}

func performHealthCheck() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	client := &http.Client{
		Timeout: 3 * time.Second,
	}

	resp, err := client.Get(fmt.Sprintf("http://localhost:%s/health", port))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Health check failed: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "Health check failed: HTTP %d\n", resp.StatusCode)
		os.Exit(1)
	}

	fmt.Println("Health check passed")
	os.Exit(0)
}
