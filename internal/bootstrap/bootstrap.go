package bootstrap

import (
	"context"
	"fmt"

	"stockrates-service/internal/application"
	"stockrates-service/internal/config"
	"stockrates-service/internal/infrastructure/auditfile"
	"stockrates-service/internal/infrastructure/jsonsink"
	"stockrates-service/internal/infrastructure/logx"
	"stockrates-service/internal/infrastructure/pg"
	redisstore "stockrates-service/internal/infrastructure/redis"
	"stockrates-service/internal/infrastructure/source"

	"github.com/redis/go-redis/v9"
)

type Stores struct {
	Prices application.PriceRepo
	Audit  application.AuditSink
	Ping   func(ctx context.Context) error
}

// BuildStores connects to Postgres, runs migrations and returns the repos.
func BuildStores(ctx context.Context, cfg config.Config) (Stores, func(), error) {
	log := logx.L()
	if cfg.DatabaseURL == "" {
		return Stores{}, func() {}, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := pg.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return Stores{}, func() {}, err
	}
	if err := pg.RunMigrations(ctx, db); err != nil {
		db.Close()
		return Stores{}, func() {}, err
	}
	cleanup := func() {
		log.Info("closing pg")
		db.Close()
	}
	return Stores{Prices: pg.NewPriceRepo(db), Audit: pg.NewAuditRepo(db), Ping: db.Ping}, cleanup, nil
}

// BuildAudit assembles the dual-sink audit logger: append-only file plus the
// stocks_data_log table, with the operational logger as fallback channel.
func BuildAudit(cfg config.Config, table application.AuditSink) (*application.AuditLogger, func(), error) {
	file, cleanup, err := auditfile.New(cfg.AuditLogFile)
	if err != nil {
		return nil, func() {}, err
	}
	return application.NewAuditLogger(logx.L(), file, table), cleanup, nil
}

// BuildStatsCache returns the Redis-backed cache when enabled, otherwise a noop.
func BuildStatsCache(cfg config.Config) (application.StatsCache, func(), error) {
	if cfg.CacheBackend != "redis" {
		return application.NoopStatsCache{}, func() {}, nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	cleanup := func() { _ = rdb.Close() }
	return redisstore.New(rdb, cfg.CacheTTL), cleanup, nil
}

// BuildPipeline wires the ingestion pipeline over the CSV source directory
// and the symbol reference file.
func BuildPipeline(cfg config.Config, stores Stores, audit *application.AuditLogger) *application.Pipeline {
	return application.NewPipeline(
		&source.CSVDir{Dir: cfg.StocksDir},
		&source.MetaFile{Path: cfg.SymbolsFile},
		stores.Prices,
		audit,
		application.WithBatchSize(cfg.BatchSize),
		application.WithWorkers(cfg.IngestWorkers),
		application.WithPipelineLogger(logx.L()),
	)
}

// BuildQueryServices wires the two read services over the store.
func BuildQueryServices(stores Stores, cache application.StatsCache) (*application.RangeQuery, *application.Stats) {
	sink := jsonsink.Sink{}
	return application.NewRangeQuery(stores.Prices, sink),
		application.NewStats(stores.Prices, sink, cache, logx.L())
}
