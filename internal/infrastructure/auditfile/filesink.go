// Package auditfile provides the append-only file sink of the audit trail.
package auditfile

import (
	"context"

	"stockrates-service/internal/domain"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Sink appends one timestamp-prefixed line per audit entry. Write never
// returns an error: internal zap failures go to stderr only.
type Sink struct {
	log *zap.Logger
}

func New(path string) (*Sink, func(), error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Sampling = nil
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	log, err := cfg.Build()
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = log.Sync() }
	return &Sink{log: log}, cleanup, nil
}

func (s *Sink) Write(_ context.Context, e domain.AuditEntry) error {
	msg := ""
	if e.Detail != nil {
		msg = *e.Detail
	}
	if e.Level == domain.AuditLevelError {
		s.log.Error(msg, zap.String("process", e.Process))
	} else {
		s.log.Info(msg, zap.String("process", e.Process))
	}
	return nil
}
