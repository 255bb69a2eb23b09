package application

import (
	"context"
	"fmt"

	"stockrates-service/internal/domain"
)

// RangeQuery fetches raw price rows for a symbol inside a capped date window.
type RangeQuery struct {
	prices PriceRepo
	sink   ResultSink
}

func NewRangeQuery(prices PriceRepo, sink ResultSink) *RangeQuery {
	return &RangeQuery{prices: prices, sink: sink}
}

// Fetch validates the window (30-day cap applies), reads the rows and, when
// outPath is not empty, also writes them to outPath as a JSON array. Rows are
// returned in either case.
func (s *RangeQuery) Fetch(ctx context.Context, symbol, start, end, outPath string) ([]domain.PriceRecord, error) {
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", ErrInvalidInput)
	}
	from, to, err := ValidateRange(start, end, true)
	if err != nil {
		return nil, err
	}
	rows, err := s.prices.SelectRange(ctx, symbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if outPath != "" {
		if err := s.sink.Write(outPath, rows); err != nil {
			return nil, fmt.Errorf("write result file: %w", err)
		}
	}
	return rows, nil
}

// FetchMulti is the multi-symbol variant. Results are returned only, never
// written to a file.
func (s *RangeQuery) FetchMulti(ctx context.Context, symbols []string, start, end string) ([]domain.PriceRecord, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: at least one symbol is required", ErrInvalidInput)
	}
	from, to, err := ValidateRange(start, end, true)
	if err != nil {
		return nil, err
	}
	rows, err := s.prices.SelectRangeMulti(ctx, symbols, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return rows, nil
}
