package track

import (
	"context"

	"github.com/fdawatch/fdawatch/pkg/models"
	"github.com/fdawatch/fdawatch/pkg/platform/openfda"
)

// Fetcher queries the remote shortage dataset.
type Fetcher interface {
	Fetch(ctx context.Context, q openfda.Query) (models.RecordCollection, int, error)
}

// SnapshotDB loads and replaces the persisted diff baseline.
type SnapshotDB interface {
	Load(ctx context.Context) (models.RecordCollection, error)
	Save(ctx context.Context, records models.RecordCollection) error
}

type Service interface {
	Start(ctx context.Context) error
}
