package models

import "errors"

// Failure kinds surfaced to the CLI. Fetch failures abort the run before any
// diff or persistence happens; an unreadable snapshot aborts rather than
// masking data loss as a false "everything added" report.
var (
	ErrFetchFailed        = errors.New("fetch failed")
	ErrSnapshotUnreadable = errors.New("snapshot unreadable")
)
