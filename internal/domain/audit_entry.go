package domain

import "time"

type AuditLevel string

const (
	AuditLevelInfo  AuditLevel = "INFO"
	AuditLevelError AuditLevel = "ERROR"
)

// AuditEntry is one event on the ingestion audit trail. Process names the
// ingestion unit (the symbol) the event belongs to. Entries are immutable;
// the table sink assigns LoggedAt server-side.
type AuditEntry struct {
	ID       int64
	Process  string
	LoggedAt time.Time
	Level    AuditLevel
	Detail   *string
}
