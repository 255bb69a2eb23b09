package pg

import (
	"context"
	"time"

	"stockrates-service/internal/domain"
	"stockrates-service/internal/infrastructure/logx"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PriceRepo struct{ db *DB }

func NewPriceRepo(db *DB) *PriceRepo { return &PriceRepo{db: db} }

const insertRate = `
        INSERT INTO stock_rates(symbol, security_name, date, open, high, low, close, adj_close, volume)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// Append writes rows in chunks of batchSize. Chunks written before a later
// failure stay written; the caller owns any retry policy.
func (r *PriceRepo) Append(ctx context.Context, rows []domain.PriceRecord, batchSize int) error {
	if batchSize <= 0 {
		batchSize = 500
	}
	log := logx.L().With(
		zap.String("repo", "price"),
		zap.String("operation", "Append"),
		zap.Int("rows", len(rows)),
		zap.Int("batch_size", batchSize),
	)
	for from := 0; from < len(rows); from += batchSize {
		to := from + batchSize
		if to > len(rows) {
			to = len(rows)
		}
		if err := r.appendChunk(ctx, rows[from:to]); err != nil {
			log.Error("sql.batch_failed", zap.Int("offset", from), zap.Error(err))
			return err
		}
	}
	log.Info("sql.batch_success")
	return nil
}

func (r *PriceRepo) appendChunk(ctx context.Context, rows []domain.PriceRecord) error {
	b := &pgx.Batch{}
	for _, row := range rows {
		b.Queue(insertRate, row.Symbol, row.SecurityName, row.Date, row.Open, row.High, row.Low, row.Close, row.AdjClose, row.Volume)
	}
	br := r.db.Pool.SendBatch(ctx, b)
	for range rows {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return err
		}
	}
	return br.Close()
}

const selectRange = `
        SELECT symbol, security_name, date, open::float8, high::float8, low::float8, close::float8, adj_close::float8, volume
        FROM stock_rates
        WHERE symbol = $1 AND date BETWEEN $2 AND $3
        ORDER BY date`

func (r *PriceRepo) SelectRange(ctx context.Context, symbol string, start, end time.Time) ([]domain.PriceRecord, error) {
	rows, err := r.db.Pool.Query(ctx, selectRange, symbol, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

const selectRangeMulti = `
        SELECT symbol, security_name, date, open::float8, high::float8, low::float8, close::float8, adj_close::float8, volume
        FROM stock_rates
        WHERE symbol = ANY($1) AND date BETWEEN $2 AND $3
        ORDER BY symbol, date`

func (r *PriceRepo) SelectRangeMulti(ctx context.Context, symbols []string, start, end time.Time) ([]domain.PriceRecord, error) {
	rows, err := r.db.Pool.Query(ctx, selectRangeMulti, symbols, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

const selectCloseOn = `
        SELECT symbol, close::float8
        FROM stock_rates
        WHERE date = $1 AND symbol = ANY($2)`

func (r *PriceRepo) SelectCloseOn(ctx context.Context, symbols []string, day time.Time) (map[string]float64, error) {
	rows, err := r.db.Pool.Query(ctx, selectCloseOn, day, symbols)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]float64{}
	for rows.Next() {
		var symbol string
		var close float64
		if err := rows.Scan(&symbol, &close); err != nil {
			return nil, err
		}
		out[symbol] = close
	}
	return out, rows.Err()
}

const selectAggregate = `
        SELECT symbol, security_name, MAX(high)::float8, MIN(low)::float8, AVG(close)::float8
        FROM stock_rates
        WHERE symbol = ANY($1) AND date BETWEEN $2 AND $3
        GROUP BY symbol, security_name`

func (r *PriceRepo) SelectAggregate(ctx context.Context, symbols []string, start, end time.Time) (map[string]domain.Aggregate, error) {
	rows, err := r.db.Pool.Query(ctx, selectAggregate, symbols, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]domain.Aggregate{}
	for rows.Next() {
		var symbol string
		var agg domain.Aggregate
		if err := rows.Scan(&symbol, &agg.SecurityName, &agg.MaxRate, &agg.MinRate, &agg.AvgRate); err != nil {
			return nil, err
		}
		out[symbol] = agg
	}
	return out, rows.Err()
}

func scanRecords(rows pgx.Rows) ([]domain.PriceRecord, error) {
	var out []domain.PriceRecord
	for rows.Next() {
		var rec domain.PriceRecord
		if err := rows.Scan(&rec.Symbol, &rec.SecurityName, &rec.Date, &rec.Open, &rec.High, &rec.Low, &rec.Close, &rec.AdjClose, &rec.Volume); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
