package serve

import (
	"context"

	"github.com/fdawatch/fdawatch/pkg/models"
	"github.com/fdawatch/fdawatch/pkg/platform/openfda"
)

// Fetcher queries the remote shortage dataset.
type Fetcher interface {
	Fetch(ctx context.Context, q openfda.Query) (models.RecordCollection, int, error)
}

// SnapshotDB reads the persisted diff baseline. The HTTP wrapper never
// persists; only "fdawatch track" moves the baseline.
type SnapshotDB interface {
	Load(ctx context.Context) (models.RecordCollection, error)
}

type Service interface {
	Current(ctx context.Context, limit int) (models.RecordCollection, error)
	Search(ctx context.Context, query string, limit int) (models.RecordCollection, error)
	Changes(ctx context.Context, limit int) (models.Changeset, error)
}
