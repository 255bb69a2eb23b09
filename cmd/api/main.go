package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"stockrates-service/internal/bootstrap"
	"stockrates-service/internal/config"
	infraconfig "stockrates-service/internal/infrastructure/config"
	httpserver "stockrates-service/internal/infrastructure/http"
	"stockrates-service/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	ctx := context.Background()
	logger := logx.L()
	cfg := config.Load()
	addr := ":" + cfg.Port

	stores, cleanup, err := bootstrap.BuildStores(ctx, cfg)
	if err != nil {
		logger.Fatal("bootstrap stores", zap.Error(err))
	}
	defer cleanup()

	cache, closeCache, err := bootstrap.BuildStatsCache(cfg)
	if err != nil {
		logger.Fatal("bootstrap stats cache", zap.Error(err))
	}
	defer closeCache()

	ranges, stats := bootstrap.BuildQueryServices(stores, cache)
	srv := httpserver.NewServer(ranges, stats, stores.Ping)
	mux := httpserver.NewRouter(srv)

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		logger.Info("server started", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, shCancel := context.WithTimeout(context.Background(), infraconfig.DefaultShutdownTimeout)
	defer shCancel()
	_ = server.Shutdown(shutdownCtx)
	logger.Info("server stopped")
}
