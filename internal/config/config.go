package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Common
	Env      string
	LogLevel string
	// API
	Port        string
	DatabaseURL string
	// Ingestion
	StocksDir     string
	SymbolsFile   string
	AuditLogFile  string
	BatchSize     int
	IngestWorkers int
	// Stats cache
	CacheBackend  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

// Load reads environment variables and applies defaults.
func Load() Config {
	return Config{
		Env:           getEnv("ENV", "local"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		StocksDir:     getEnv("STOCKS_DIR", "stock_dataset/stocks"),
		SymbolsFile:   getEnv("SYMBOLS_META_FILE", "stock_dataset/symbols_valid_meta.csv"),
		AuditLogFile:  getEnv("AUDIT_LOG_FILE", "process_log.log"),
		BatchSize:     atoiDef(getEnv("BATCH_SIZE", "500"), 500),
		IngestWorkers: atoiDef(getEnv("INGEST_WORKERS", "1"), 1),
		CacheBackend:  getEnv("STATS_CACHE", "none"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       atoiDef(getEnv("REDIS_DB", "0"), 0),
		CacheTTL:      time.Duration(atoiDef(getEnv("STATS_CACHE_TTL_MS", "300000"), 300000)) * time.Millisecond,
	}
}
