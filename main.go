package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"

	"github.com/reviewradar/labeling-engine/pkg/apperrors"
	"github.com/reviewradar/labeling-engine/pkg/config"
	"github.com/reviewradar/labeling-engine/pkg/database"
	"github.com/reviewradar/labeling-engine/pkg/labeling"
	"github.com/reviewradar/labeling-engine/pkg/llm"
	"github.com/reviewradar/labeling-engine/pkg/logging"
	"github.com/reviewradar/labeling-engine/pkg/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	batchID := flag.Int64("batch", 0, "batch id to label (required)")
	providerName := flag.String("provider", labeling.KindGeminiFlashLite, "labeling provider")
	storageKind := flag.String("storage", storage.KindPostgres, "storage backend")
	migrationsPath := flag.String("migrations", "", "apply migrations from this directory before the run")
	flag.Parse()

	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, *batchID, *providerName, *storageKind, *migrationsPath); err != nil {
		logger.Error("Labeling run failed", zap.Error(err))
		stop()
		os.Exit(1)
	}
}

func run(
	ctx context.Context,
	cfg *config.Config,
	logger *zap.Logger,
	batchID int64,
	providerName string,
	storageKind string,
	migrationsPath string,
) error {
	if batchID <= 0 {
		return fmt.Errorf("a positive -batch id is required")
	}

	logger.Info("Starting labeling engine",
		zap.String("version", cfg.Version),
		zap.String("env", cfg.Env),
		zap.Int64("batch_id", batchID),
		zap.String("provider", providerName),
		zap.String("storage", storageKind))

	storageFactory := storage.NewFactory(map[string]storage.Constructor{
		storage.KindPostgres: func(ctx context.Context) (storage.Client, error) {
			db, err := database.NewConnection(ctx, &database.Config{
				URL:            cfg.Database.URL(),
				MaxConnections: cfg.Database.MaxConnections,
			})
			if err != nil {
				return nil, fmt.Errorf("connect to postgres: %w", err)
			}
			if migrationsPath != "" {
				sqlDB := stdlib.OpenDBFromPool(db.Pool)
				if err := database.RunMigrations(sqlDB, migrationsPath, logger); err != nil {
					db.Close()
					return nil, fmt.Errorf("apply migrations: %w", err)
				}
				if err := sqlDB.Close(); err != nil {
					logger.Warn("Failed to close migration connection", zap.Error(err))
				}
			}
			return storage.NewPostgresClient(db, logger), nil
		},
		storage.KindMSSQL: func(ctx context.Context) (storage.Client, error) {
			return storage.NewMSSQLClient(ctx, cfg.SQLServer.URL(), logger)
		},
	})

	providerFactory := labeling.NewProviderFactory(map[string]labeling.ProviderConstructor{
		labeling.KindGeminiFlashLite: func(aspects []string) (labeling.Provider, error) {
			if cfg.Gemini.APIKey == "" {
				return nil, fmt.Errorf("%w: GEMINI_API_KEY is not set", apperrors.ErrMissingCredentials)
			}
			client, err := llm.NewClient(&llm.Config{
				Endpoint: cfg.Gemini.BaseURL,
				Model:    cfg.Gemini.Model,
				APIKey:   cfg.Gemini.APIKey,
			}, logger)
			if err != nil {
				return nil, fmt.Errorf("create gemini client: %w", err)
			}
			return labeling.NewGeminiProvider(client, aspects, logger)
		},
		labeling.KindClaudeHaiku: func(aspects []string) (labeling.Provider, error) {
			if cfg.Anthropic.APIKey == "" {
				return nil, fmt.Errorf("%w: ANTHROPIC_API_KEY is not set", apperrors.ErrMissingCredentials)
			}
			client := anthropic.NewClient(cfg.Anthropic.APIKey)
			return labeling.NewClaudeProvider(client, cfg.Anthropic.Model, aspects, logger)
		},
	})

	service, err := labeling.NewServiceFromKinds(ctx, batchID, providerName, storageKind,
		storageFactory, providerFactory, logger)
	if err != nil {
		return fmt.Errorf("assemble labeling service: %w", err)
	}
	defer func() {
		if err := service.Close(); err != nil {
			logger.Warn("Failed to close storage client", zap.Error(err))
		}
	}()

	status, err := service.Run(ctx, labeling.RunOptions{
		FetchPageSize:     cfg.Labeling.FetchPageSize,
		WriteBatchSize:    cfg.Labeling.WriteBatchSize,
		InputTokenBudget:  int64(cfg.Labeling.InputTokenBudget),
		OutputTokenBudget: int64(cfg.Labeling.OutputTokenBudget),
	})
	if err != nil {
		return fmt.Errorf("run ended with status %q: %w", status, err)
	}

	logger.Info("Labeling run finished",
		zap.Int64("batch_id", batchID),
		zap.String("status", string(status)))
	return nil
}
