package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Gobusters/ectologger"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/MikeSterry/pinup-popper-database-exporter/config"
	"github.com/MikeSterry/pinup-popper-database-exporter/internal/repositories/runhistory"
	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/backup"
	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/database"
	exportengine "github.com/MikeSterry/pinup-popper-database-exporter/pkg/export"
	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/jobs"
	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/middleware"
	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/models"
	exportroutes "github.com/MikeSterry/pinup-popper-database-exporter/pkg/routes/export"
	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/routes/health"
	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/routes/status"
	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/scheduler"
	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/syncer"
	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/tracing"
	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/vps"
)

const version = "1.0.0"

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger()
	logger.WithField("app", cfg.AppName).Info("Starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		shutdown, err := tracing.Init(ctx, cfg.AppName, tracing.OTLPConfig{
			Endpoint: cfg.TracingEndpoint,
			Insecure: cfg.TracingInsecure,
		})
		if err != nil {
			logger.WithError(err).Error("Failed to initialize tracing")
			os.Exit(1)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.WithError(err).Warn("Failed to shut tracing down")
			}
		}()
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
		logger.WithError(err).Error("Failed to create database directory")
		os.Exit(1)
	}
	db, err := database.Open(ctx, logger, cfg.DatabasePath)
	if err != nil {
		logger.WithError(err).Error("Failed to open database")
		os.Exit(1)
	}
	defer db.Close()

	migrations := database.NewMigrationService(logger, cfg.DatabaseMigrationFolderPath)
	if err := migrations.Migrate(db); err != nil {
		logger.WithError(err).Error("Failed to run migrations")
		os.Exit(1)
	}

	client := vps.NewHTTPClient(cfg.RequestTimeout(), cfg.LastUpdatedURL, cfg.PuplookupURL, cfg.VpsdbURL)
	sync := syncer.New(logger, client, cfg.DataDir)
	rotator := backup.New(logger, cfg.BackupsDir, cfg.MaxBackups)
	engine := exportengine.NewEngine(logger, cfg.DataDir, cfg.OutputDir, cfg.OutputFilename)
	history := runhistory.New(database.NewDatabaseInstance(db, logger), logger)

	outputPath := filepath.Join(cfg.OutputDir, cfg.OutputFilename)
	runner := jobs.NewRunner(logger, sync, rotator, engine, history, outputPath)

	// Best-effort initial run; the service still starts when the remote is
	// unreachable and serves whatever was generated previously.
	if _, err := runner.Bootstrap(ctx); err != nil && err != jobs.ErrNoUpdate {
		logger.WithError(err).Warn("Initial export failed")
	}

	sched := scheduler.New(logger, cfg.SyncInterval(), func(ctx context.Context) error {
		_, err := runner.Run(ctx, models.TriggerSchedule)
		if err == jobs.ErrNoUpdate {
			return nil
		}
		return err
	})
	sched.Start(ctx)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.Error(logger)
	e.Use(echomiddleware.Recover())
	e.Use(middleware.Context())
	e.Use(middleware.Logger(logger))

	checker := health.NewChecker(db, cfg.DataDir, version)
	checker.RegisterRoutes(e)
	exportroutes.NewHandler(logger, runner, outputPath).RegisterRoutes(e)
	status.NewHandler(logger, sync, history, outputPath, status.Settings{
		DataDir:             cfg.DataDir,
		OutputDir:           cfg.OutputDir,
		BackupsDir:          cfg.BackupsDir,
		SyncIntervalSeconds: cfg.SyncIntervalSeconds,
		MaxBackups:          cfg.MaxBackups,
	}).RegisterRoutes(e)

	checker.SetReady(true)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")
	checker.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Failed to shut server down cleanly")
	}
	sched.Wait()
	logger.Info("Shutdown complete")
}

// newLogger emits one JSON object per log message on stdout.
func newLogger() ectologger.Logger {
	encoder := json.NewEncoder(os.Stdout)
	return ectologger.NewEctoLogger(func(msg ectologger.EctoLogMessage) {
		if err := encoder.Encode(msg); err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode log message: %v\n", err)
		}
	})
}
