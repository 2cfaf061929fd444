package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hshubham24beit-oss/news-website/config"
	"github.com/hshubham24beit-oss/news-website/utils/logger"
	"github.com/hshubham24beit-oss/news-website/utils/otel"
)

// Run is the main application entry point. It initializes all dependencies,
// starts the server, then waits for a shutdown signal.
func Run(ctx context.Context) error {
	log := logger.InitLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	otelCfg := otel.ConfigFromEnv()
	otelShutdown, err := otel.InitProvider(ctx, otelCfg)
	if err != nil {
		log.Error("Failed to initialize OpenTelemetry, tracing disabled", "error", err)
		otelCfg.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			log.Error("Failed to shutdown OpenTelemetry", "error", err)
		}
	}()

	log.Info("Starting news backend",
		"port", cfg.Server.Port,
		"hero_mode", cfg.News.HeroMode,
		"weather_provider", cfg.Weather.Provider,
		"otel_enabled", otelCfg.Enabled)

	deps, cleanup, err := BuildDependencies(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build dependencies: %w", err)
	}
	defer cleanup()

	e := NewHTTPServer(deps, otelCfg.Enabled, otelCfg.ServiceName)
	StartHTTPServer(e, deps, log)

	log.Info("News backend started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down news backend")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down HTTP server", "error", err)
	}

	log.Info("News backend stopped")
	return nil
}
