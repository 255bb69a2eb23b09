package application

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"stockrates-service/internal/domain"

	"go.uber.org/zap"
)

// Stats computes period yield and windowed rate statistics per symbol. A
// stats query is one logical read: any store error aborts the whole
// computation, unlike the ingestion pipeline's per-file isolation.
type Stats struct {
	prices PriceRepo
	sink   ResultSink
	cache  StatsCache
	log    *zap.Logger
}

func NewStats(prices PriceRepo, sink ResultSink, cache StatsCache, log *zap.Logger) *Stats {
	if cache == nil {
		cache = NoopStatsCache{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Stats{prices: prices, sink: sink, cache: cache, log: log}
}

// Compute returns one StatRow per symbol that traded on both boundary dates,
// ordered by yield descending. The 30-day cap does not apply to statistics.
// When outPath is not empty a non-empty result is also written there.
func (s *Stats) Compute(ctx context.Context, symbols []string, start, end, outPath string) ([]domain.StatRow, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: at least one symbol is required", ErrInvalidInput)
	}
	from, to, err := ValidateRange(start, end, false)
	if err != nil {
		return nil, err
	}

	key := cacheKey(symbols, start, end)
	if rows, ok, err := s.cache.Get(ctx, key); err != nil {
		s.log.Warn("stats cache get failed", zap.Error(err))
	} else if ok {
		return s.deliver(rows, outPath)
	}

	startClose, err := s.prices.SelectCloseOn(ctx, symbols, from)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	endClose, err := s.prices.SelectCloseOn(ctx, symbols, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	aggs, err := s.prices.SelectAggregate(ctx, symbols, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	// Iterating the request order keeps the output deterministic and gives
	// the stable sort its tie-break order.
	rows := make([]domain.StatRow, 0, len(symbols))
	for _, sym := range symbols {
		sc, okStart := startClose[sym]
		ec, okEnd := endClose[sym]
		agg, okAgg := aggs[sym]
		// A symbol without a record on either boundary date is silently
		// excluded, not an error.
		if !okStart || !okEnd || !okAgg {
			continue
		}
		if sc == 0 {
			// Yield is undefined for a zero start close, and JSON cannot
			// encode the infinity it would produce.
			continue
		}
		rows = append(rows, domain.StatRow{
			Symbol:       sym,
			SecurityName: agg.SecurityName,
			StartClose:   sc,
			EndClose:     ec,
			MaxRate:      agg.MaxRate,
			MinRate:      agg.MinRate,
			AvgRate:      agg.AvgRate,
			Yield:        (ec - sc) / sc * 100,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Yield > rows[j].Yield })

	if err := s.cache.Set(ctx, key, rows); err != nil {
		s.log.Warn("stats cache set failed", zap.Error(err))
	}
	return s.deliver(rows, outPath)
}

func (s *Stats) deliver(rows []domain.StatRow, outPath string) ([]domain.StatRow, error) {
	if outPath != "" && len(rows) > 0 {
		if err := s.sink.Write(outPath, rows); err != nil {
			return nil, fmt.Errorf("write result file: %w", err)
		}
	}
	return rows, nil
}

func cacheKey(symbols []string, start, end string) string {
	return "stats:" + strings.Join(symbols, ",") + ":" + start + ":" + end
}
