// Package track runs one fetch, diff, report, persist cycle.
package track

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fdawatch/fdawatch/config"
	"github.com/fdawatch/fdawatch/pkg/diff"
	"github.com/fdawatch/fdawatch/pkg/platform/openfda"
	"github.com/fdawatch/fdawatch/utils"
)

type Tracker struct {
	logger     *zap.Logger
	fetcher    Fetcher
	snapshotDB SnapshotDB
	config     *config.Config
	out        io.Writer
}

func New(logger *zap.Logger, fetcher Fetcher, snapshotDB SnapshotDB, cfg *config.Config) *Tracker {
	return &Tracker{
		logger:     logger,
		fetcher:    fetcher,
		snapshotDB: snapshotDB,
		config:     cfg,
		out:        os.Stdout,
	}
}

// Start runs one linear fetch -> load -> diff -> report -> persist sequence.
// A fetch or load failure aborts before the diff so the report is never built
// from partial state. A save failure is surfaced after the report has been
// rendered: what was observed stays reported even if persistence for the next
// run fails.
func (t *Tracker) Start(ctx context.Context) error {
	runID := uuid.New().String()

	current, fetched, err := t.fetcher.Fetch(ctx, openfda.Query{
		Search: t.config.FDA.Search,
		Limit:  t.config.FDA.Limit,
		Skip:   t.config.FDA.Skip,
	})
	if err != nil {
		utils.LogError(t.logger, err, "failed to fetch shortage records")
		return err
	}

	previous, err := t.snapshotDB.Load(ctx)
	if err != nil {
		utils.LogError(t.logger, err, "failed to load the previous snapshot")
		return err
	}

	changeset := diff.Diff(previous, current)

	report := Report{
		RunID:     runID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Fetched:   fetched,
		Changeset: changeset,
	}
	if t.config.Track.JSON {
		if err := t.renderJSON(report); err != nil {
			utils.LogError(t.logger, err, "failed to render the report")
			return err
		}
	} else {
		t.renderHuman(report)
	}

	if t.config.Track.NoSave {
		t.logger.Debug("skipping snapshot save", zap.String("runId", runID))
		return nil
	}

	if err := t.snapshotDB.Save(ctx, current); err != nil {
		utils.LogError(t.logger, err, "failed to persist the snapshot, the report above still reflects what was observed")
		return err
	}

	t.logger.Info("snapshot persisted",
		zap.String("path", t.config.Track.SnapshotPath),
		zap.Int("records", len(current)),
		zap.Int("added", len(changeset.Added)),
		zap.Int("removed", len(changeset.Removed)),
		zap.Int("changed", len(changeset.Changed)))
	return nil
}
