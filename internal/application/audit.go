package application

import (
	"context"
	"time"

	"stockrates-service/internal/domain"

	"go.uber.org/zap"
)

// AuditLogger fans one event out to every configured sink. A failing sink is
// reported to the fallback logger and skipped for that event; the other sinks
// still receive it and the caller's operation is never affected.
type AuditLogger struct {
	sinks    []AuditSink
	fallback *zap.Logger
}

func NewAuditLogger(fallback *zap.Logger, sinks ...AuditSink) *AuditLogger {
	if fallback == nil {
		fallback = zap.NewNop()
	}
	return &AuditLogger{sinks: sinks, fallback: fallback}
}

// Info records a successful step of the named process.
func (l *AuditLogger) Info(ctx context.Context, process, message string) {
	l.write(ctx, domain.AuditLevelInfo, process, message)
}

// Error records a failed step of the named process.
func (l *AuditLogger) Error(ctx context.Context, process, message string) {
	l.write(ctx, domain.AuditLevelError, process, message)
}

func (l *AuditLogger) write(ctx context.Context, level domain.AuditLevel, process, message string) {
	e := domain.AuditEntry{
		Process:  process,
		LoggedAt: time.Now().UTC(),
		Level:    level,
		Detail:   &message,
	}
	for _, s := range l.sinks {
		if err := s.Write(ctx, e); err != nil {
			l.fallback.Warn("audit sink write failed",
				zap.String("process", process),
				zap.String("level", string(level)),
				zap.Error(err),
			)
		}
	}
}
