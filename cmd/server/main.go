package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/carepath/medicaid-intake/internal/application/service"
	"github.com/carepath/medicaid-intake/internal/config"
	"github.com/carepath/medicaid-intake/internal/infrastructure/export"
	"github.com/carepath/medicaid-intake/internal/infrastructure/external/planner"
	"github.com/carepath/medicaid-intake/internal/infrastructure/persistence/repository"
	httpserver "github.com/carepath/medicaid-intake/internal/interfaces/http"
	"github.com/carepath/medicaid-intake/pkg/database"
	"github.com/carepath/medicaid-intake/pkg/utils"
)

// sugaredLogger adapts zap's sugared logger to the HTTP layer's interface.
type sugaredLogger struct {
	*zap.SugaredLogger
}

func (l sugaredLogger) Info(msg string, keysAndValues ...interface{}) {
	l.Infow(msg, keysAndValues...)
}

func (l sugaredLogger) Error(msg string, keysAndValues ...interface{}) {
	l.Errorw(msg, keysAndValues...)
}

func main() {
	// Local .env is optional; deployed environments set real variables.
	_ = gotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Medicaid planning intake service",
		zap.Int("port", cfg.Server.Port),
		zap.String("planner_base_url", cfg.Planner.BaseURL))

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.Run(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	draftRepo := repository.NewDraftRepository(db.DB, logger)
	submissionRepo := repository.NewSubmissionRepository(db.DB, logger)

	plannerClient := planner.NewClient(planner.Config{
		BaseURL: cfg.Planner.BaseURL,
		Timeout: cfg.Planner.Timeout,
	}, logger)

	draftService := service.NewDraftService(draftRepo, logger)
	sessionService := service.NewSessionService(draftService, service.SessionConfig{
		AutosaveDelay:   cfg.Draft.AutosaveDelay,
		AutosaveEnabled: cfg.Draft.AutosaveEnabled,
	}, logger)
	submissionService := service.NewSubmissionService(plannerClient, submissionRepo, draftService, logger)
	reportService := service.NewReportService(plannerClient, export.NewExcelExporter(logger), logger)

	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Host:         cfg.Server.Host,
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		sessionService,
		submissionService,
		reportService,
		sugaredLogger{logger.Sugar()},
	)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
