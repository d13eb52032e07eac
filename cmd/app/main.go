package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"homeoffice/cmd"
	"homeoffice/internal/jobs"
	"homeoffice/internal/pkg/telemetry"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	configs := getConfigs()
	if err := configs.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := telemetry.NewLogger(os.Stdout, telemetry.ParseLevel(configs.LogLevel))

	tel, err := telemetry.Initialize(ctx, telemetry.Config{
		ServiceName:    configs.ServiceName,
		ServiceVersion: configs.ServiceVersion,
		Environment:    configs.Environment,
		OTLPEndpoint:   configs.OTLPEndpoint,
		EnableTracing:  configs.EnableTracing,
		EnableMetrics:  configs.EnableMetrics,
		SampleRate:     configs.SampleRate,
	})
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}

	app, err := cmd.NewCompositionRoot(ctx, configs, tel, logger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	runErr := run(ctx, app, configs.HTTPPort)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cmd.ShutdownTimeout)
	defer cancel()

	if err := app.Close(); err != nil {
		logger.Error("Failed to close storage", "error", err)
	}
	if err := tel.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down telemetry", "error", err)
	}

	if runErr != nil {
		log.Fatalf("Service stopped: %v", runErr)
	}
	logger.Info("Service stopped")
}

// run serves HTTP and runs the scheduled jobs until ctx is cancelled or either fails.
func run(ctx context.Context, app *cmd.CompositionRoot, port string) error {
	e, err := app.CreateHTTPServer()
	if err != nil {
		return fmt.Errorf("failed to build http server: %w", err)
	}

	jobManager := app.CreateJobManager()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := jobManager.StartAll(); err != nil {
			return err
		}
		<-gctx.Done()
		jobManager.StopAll()
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cmd.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config := cmd.Config{
		HTTPPort:            envOr("HTTP_PORT", "8080"),
		StorageDriver:       envOr("STORAGE_DRIVER", cmd.StorageDriverPostgres),
		DBHost:              os.Getenv("DB_HOST"),
		DBPort:              envOr("DB_PORT", "5432"),
		DBUser:              os.Getenv("DB_USER"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBName:              os.Getenv("DB_NAME"),
		DBSslMode:           envOr("DB_SSLMODE", "disable"),
		DBAutoMigrate:       parseBool("DB_AUTO_MIGRATE", true),
		SQLitePath:          envOr("SQLITE_PATH", "homeoffice.db"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		CacheTTL:            parseDuration("CACHE_TTL", 5*time.Minute),
		SalesReportSchedule: envOr("SALES_REPORT_SCHEDULE", jobs.DefaultSalesReportSchedule),
		SalesReportLookback: parseDuration("SALES_REPORT_LOOKBACK", time.Hour),
		LogLevel:            envOr("LOG_LEVEL", "info"),
		OTLPEndpoint:        os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		EnableTracing:       parseBool("OTEL_ENABLE_TRACING", false),
		EnableMetrics:       parseBool("OTEL_ENABLE_METRICS", false),
		SampleRate:          parseFloat("OTEL_SAMPLE_RATE", 1.0),
		ServiceName:         envOr("SERVICE_NAME", "homeoffice"),
		ServiceVersion:      envOr("SERVICE_VERSION", "dev"),
		Environment:         envOr("ENVIRONMENT", "local"),
	}
	return config
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func parseBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		log.Fatalf("Invalid %s %q: %v", key, raw, err)
	}
	return value
}

func parseFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("Invalid %s %q: %v", key, raw, err)
	}
	return value
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid %s %q: %v", key, raw, err)
	}
	return value
}
