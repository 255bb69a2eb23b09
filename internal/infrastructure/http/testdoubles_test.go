package httpserver

import (
	"context"
	"time"

	"stockrates-service/internal/application"
	"stockrates-service/internal/domain"
)

var _ application.PriceRepo = (*fakePriceRepo)(nil)

// fakePriceRepo backs the HTTP tests with a fixed in-memory row set.
type fakePriceRepo struct {
	rows []domain.PriceRecord
	err  error
}

func (f *fakePriceRepo) Append(_ context.Context, rows []domain.PriceRecord, _ int) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, rows...)
	return nil
}

func (f *fakePriceRepo) SelectRange(_ context.Context, symbol string, start, end time.Time) ([]domain.PriceRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.PriceRecord
	for _, r := range f.rows {
		if r.Symbol == symbol && !r.Date.Before(start) && !r.Date.After(end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakePriceRepo) SelectRangeMulti(ctx context.Context, symbols []string, start, end time.Time) ([]domain.PriceRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.PriceRecord
	for _, sym := range symbols {
		rows, _ := f.SelectRange(ctx, sym, start, end)
		out = append(out, rows...)
	}
	return out, nil
}

func (f *fakePriceRepo) SelectCloseOn(_ context.Context, symbols []string, day time.Time) (map[string]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := map[string]float64{}
	for _, sym := range symbols {
		for _, r := range f.rows {
			if r.Symbol == sym && r.Date.Equal(day) {
				out[sym] = r.Close
			}
		}
	}
	return out, nil
}

func (f *fakePriceRepo) SelectAggregate(_ context.Context, symbols []string, start, end time.Time) (map[string]domain.Aggregate, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := map[string]domain.Aggregate{}
	for _, sym := range symbols {
		var agg domain.Aggregate
		n := 0
		for _, r := range f.rows {
			if r.Symbol != sym || r.Date.Before(start) || r.Date.After(end) {
				continue
			}
			if n == 0 || r.High > agg.MaxRate {
				agg.MaxRate = r.High
			}
			if n == 0 || r.Low < agg.MinRate {
				agg.MinRate = r.Low
			}
			agg.AvgRate += r.Close
			agg.SecurityName = r.SecurityName
			n++
		}
		if n > 0 {
			agg.AvgRate /= float64(n)
			out[sym] = agg
		}
	}
	return out, nil
}

type noopSink struct{}

func (noopSink) Write(string, any) error { return nil }

// NewInMemoryServer wires a Server over fake storage for tests.
func NewInMemoryServer(rows []domain.PriceRecord) (*Server, *fakePriceRepo) {
	repo := &fakePriceRepo{rows: rows}
	ranges := application.NewRangeQuery(repo, noopSink{})
	stats := application.NewStats(repo, noopSink{}, nil, nil)
	return NewServer(ranges, stats, nil), repo
}
