package pg

import (
	"context"

	"stockrates-service/internal/domain"
)

// AuditRepo is the table sink of the audit trail. Each entry is its own
// auto-committed insert; log_time is assigned server-side.
type AuditRepo struct{ db *DB }

func NewAuditRepo(db *DB) *AuditRepo { return &AuditRepo{db: db} }

const insertLog = `
        INSERT INTO stocks_data_log(etl_process, log_level, error_desc)
        VALUES ($1, $2, $3)`

func (r *AuditRepo) Write(ctx context.Context, e domain.AuditEntry) error {
	// error_desc carries detail only for errors; INFO messages live on the
	// file sink.
	var desc *string
	if e.Level == domain.AuditLevelError {
		desc = e.Detail
	}
	_, err := r.db.Pool.Exec(ctx, insertLog, e.Process, string(e.Level), desc)
	return err
}
