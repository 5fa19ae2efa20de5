// Package snapshotdb persists the keyed shortage snapshot used as the diff
// baseline between runs.
package snapshotdb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/fdawatch/fdawatch/pkg/models"
)

// SnapshotDoc is the on-disk document. Records round-trip through
// encoding/json so a load/save cycle never introduces spurious diffs.
type SnapshotDoc struct {
	Version   string                  `json:"version"`
	Kind      string                  `json:"kind"`
	FetchedAt string                  `json:"fetchedAt"`
	Records   models.RecordCollection `json:"records"`
}

type SnapshotDb struct {
	Path   string
	logger *zap.Logger
}

func New(logger *zap.Logger, path string) *SnapshotDb {
	return &SnapshotDb{
		Path:   path,
		logger: logger,
	}
}

// Load reads the persisted collection. A missing file is first-run semantics
// and yields an empty collection; unreadable or corrupt content aborts the
// run instead of masking data loss as a false "everything added" report.
func (db *SnapshotDb) Load(ctx context.Context) (models.RecordCollection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(db.Path)
	if err != nil {
		if os.IsNotExist(err) {
			db.logger.Debug("no snapshot recorded yet, treating as first run", zap.String("path", db.Path))
			return models.RecordCollection{}, nil
		}
		return nil, fmt.Errorf("%w: %v", models.ErrSnapshotUnreadable, err)
	}

	var doc SnapshotDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrSnapshotUnreadable, db.Path, err)
	}

	if doc.Kind == "" && doc.Records == nil {
		// flat key-to-record layout written by older versions
		var flat models.RecordCollection
		if err := json.Unmarshal(data, &flat); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", models.ErrSnapshotUnreadable, db.Path, err)
		}
		return flat, nil
	}

	if doc.Records == nil {
		return models.RecordCollection{}, nil
	}
	return doc.Records, nil
}

// Save replaces the persisted baseline with the full current collection,
// regardless of what the diff reported.
func (db *SnapshotDb) Save(ctx context.Context, records models.RecordCollection) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(db.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create the snapshot directory: %v", err)
		}
	}

	doc := SnapshotDoc{
		Version:   models.SnapshotVersion,
		Kind:      models.SnapshotKind,
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
		Records:   records,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal the snapshot: %v", err)
	}

	if err := os.WriteFile(db.Path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write the snapshot: %v", err)
	}

	db.logger.Debug("persisted snapshot", zap.String("path", db.Path), zap.Int("records", len(records)))
	return nil
}
