package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"stockrates-service/internal/domain"
)

var ErrRepo = errors.New("repo error")

type fakePriceRepo struct {
	mu         sync.Mutex
	appended   []domain.PriceRecord
	batchSizes []int
	appendErr  map[string]error // keyed by symbol of the first row

	rangeRows  []domain.PriceRecord
	closeOn    map[string]map[string]float64 // date -> symbol -> close
	aggregates map[string]domain.Aggregate

	err   error
	calls int
}

func dateKey(t time.Time) string { return t.Format("2006-01-02") }

func (f *fakePriceRepo) Append(_ context.Context, rows []domain.PriceRecord, batchSize int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if len(rows) > 0 && f.appendErr != nil {
		if err, ok := f.appendErr[rows[0].Symbol]; ok {
			return err
		}
	}
	f.appended = append(f.appended, rows...)
	f.batchSizes = append(f.batchSizes, batchSize)
	return nil
}

func (f *fakePriceRepo) SelectRange(_ context.Context, symbol string, start, end time.Time) ([]domain.PriceRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.PriceRecord
	for _, r := range f.rangeRows {
		if r.Symbol == symbol && !r.Date.Before(start) && !r.Date.After(end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakePriceRepo) SelectRangeMulti(_ context.Context, symbols []string, start, end time.Time) ([]domain.PriceRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.PriceRecord
	for _, sym := range symbols {
		rows, _ := f.SelectRange(context.Background(), sym, start, end)
		out = append(out, rows...)
	}
	return out, nil
}

func (f *fakePriceRepo) SelectCloseOn(_ context.Context, symbols []string, day time.Time) (map[string]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := map[string]float64{}
	for _, sym := range symbols {
		if c, ok := f.closeOn[dateKey(day)][sym]; ok {
			out[sym] = c
		}
	}
	return out, nil
}

func (f *fakePriceRepo) SelectAggregate(_ context.Context, symbols []string, _, _ time.Time) (map[string]domain.Aggregate, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := map[string]domain.Aggregate{}
	for _, sym := range symbols {
		if a, ok := f.aggregates[sym]; ok {
			out[sym] = a
		}
	}
	return out, nil
}

type fakeSourceDir struct {
	files   []SourceFile
	rows    map[string][]domain.PriceRecord
	loadErr map[string]error
	listErr error
}

func (f *fakeSourceDir) List(context.Context) ([]SourceFile, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.files, nil
}

func (f *fakeSourceDir) Load(_ context.Context, sf SourceFile) ([]domain.PriceRecord, error) {
	if err, ok := f.loadErr[sf.Symbol]; ok {
		return nil, err
	}
	return f.rows[sf.Symbol], nil
}

type fakeNameTable struct {
	names map[string]string
	err   error
}

func (f *fakeNameTable) Load(context.Context) (map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.names, nil
}

type fakeAuditSink struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
	err     error
}

func (f *fakeAuditSink) Write(_ context.Context, e domain.AuditEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeAuditSink) byLevel(level domain.AuditLevel) []domain.AuditEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.AuditEntry
	for _, e := range f.entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

type fakeResultSink struct {
	writes map[string]any
	err    error
}

func (f *fakeResultSink) Write(path string, v any) error {
	if f.err != nil {
		return f.err
	}
	if f.writes == nil {
		f.writes = map[string]any{}
	}
	f.writes[path] = v
	return nil
}

type fakeStatsCache struct {
	store map[string][]domain.StatRow
	err   error
	hits  int
}

func (f *fakeStatsCache) Get(_ context.Context, key string) ([]domain.StatRow, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	rows, ok := f.store[key]
	if ok {
		f.hits++
	}
	return rows, ok, nil
}

func (f *fakeStatsCache) Set(_ context.Context, key string, rows []domain.StatRow) error {
	if f.err != nil {
		return f.err
	}
	if f.store == nil {
		f.store = map[string][]domain.StatRow{}
	}
	f.store[key] = rows
	return nil
}

func strPtr(s string) *string { return &s }
