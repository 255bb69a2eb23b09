package main

import (
	"context"

	"stockrates-service/internal/bootstrap"
	"stockrates-service/internal/config"
	"stockrates-service/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	ctx := context.Background()
	logger := logx.L()
	cfg := config.Load()

	stores, cleanup, err := bootstrap.BuildStores(ctx, cfg)
	if err != nil {
		logger.Fatal("bootstrap stores", zap.Error(err))
	}
	defer cleanup()

	audit, closeAudit, err := bootstrap.BuildAudit(cfg, stores.Audit)
	if err != nil {
		logger.Fatal("bootstrap audit", zap.Error(err))
	}
	defer closeAudit()

	pipeline := bootstrap.BuildPipeline(cfg, stores, audit)
	report, err := pipeline.Run(ctx)
	if err != nil {
		logger.Fatal("ingestion run", zap.Error(err))
	}

	logger.Info("ingestion report",
		zap.String("run_id", report.RunID),
		zap.Int("files", len(report.Results)),
		zap.Int("failed", report.Failed()),
	)
}
