package application

import "errors"

// ErrInvalidInput marks a request the caller can fix: a malformed date, an
// inverted range, a range over the cap. Never written to the audit trail.
var ErrInvalidInput = errors.New("invalid input")

// ErrStore marks a store-level failure (connectivity, constraint). During
// ingestion it is contained per file; during queries it aborts the call.
var ErrStore = errors.New("store error")
