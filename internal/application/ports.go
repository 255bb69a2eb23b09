package application

import (
	"context"
	"time"

	"stockrates-service/internal/domain"
)

// PriceRepo is the store boundary for the stock_rates table. Implementations
// surface store errors as-is and never retry; retry policy belongs to callers.
type PriceRepo interface {
	// Append writes rows in chunks of batchSize. Chunks written before a
	// failure stay written.
	Append(ctx context.Context, rows []domain.PriceRecord, batchSize int) error
	SelectRange(ctx context.Context, symbol string, start, end time.Time) ([]domain.PriceRecord, error)
	SelectRangeMulti(ctx context.Context, symbols []string, start, end time.Time) ([]domain.PriceRecord, error)
	// SelectCloseOn returns the closing price of each symbol that has a
	// record exactly on day. Absent symbols are simply missing from the map.
	SelectCloseOn(ctx context.Context, symbols []string, day time.Time) (map[string]float64, error)
	SelectAggregate(ctx context.Context, symbols []string, start, end time.Time) (map[string]domain.Aggregate, error)
}

// AuditSink persists a single audit entry. Implementations must keep entries
// independent (no batching) so concurrent writers cannot block each other.
type AuditSink interface {
	Write(ctx context.Context, e domain.AuditEntry) error
}

// SourceFile is one discovered per-symbol price file.
type SourceFile struct {
	Symbol string
	Path   string
}

// SourceDir discovers and loads per-symbol price files.
type SourceDir interface {
	List(ctx context.Context) ([]SourceFile, error)
	Load(ctx context.Context, f SourceFile) ([]domain.PriceRecord, error)
}

// NameTable resolves symbols to security names.
type NameTable interface {
	Load(ctx context.Context) (map[string]string, error)
}

// ResultSink writes a query result to a caller-supplied path.
type ResultSink interface {
	Write(path string, v any) error
}

// StatsCache is a best-effort cache for computed statistics. Cache trouble
// must never fail a query.
type StatsCache interface {
	Get(ctx context.Context, key string) ([]domain.StatRow, bool, error)
	Set(ctx context.Context, key string, rows []domain.StatRow) error
}

// NoopStatsCache always misses; used when Redis is disabled.
type NoopStatsCache struct{}

func (NoopStatsCache) Get(context.Context, string) ([]domain.StatRow, bool, error) {
	return nil, false, nil
}

func (NoopStatsCache) Set(context.Context, string, []domain.StatRow) error { return nil }
