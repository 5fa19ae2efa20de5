package serve

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fdawatch/fdawatch/config"
	"github.com/fdawatch/fdawatch/pkg/models"
	"github.com/fdawatch/fdawatch/pkg/platform/openfda"
)

type stubFetcher struct {
	records models.RecordCollection
	err     error
	calls   int
}

func (s *stubFetcher) Fetch(context.Context, openfda.Query) (models.RecordCollection, int, error) {
	s.calls++
	if s.err != nil {
		return nil, 0, s.err
	}
	return s.records, len(s.records), nil
}

type stubSnapshotDB struct {
	records models.RecordCollection
	err     error
}

func (s *stubSnapshotDB) Load(context.Context) (models.RecordCollection, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.records == nil {
		return models.RecordCollection{}, nil
	}
	return s.records, nil
}

func newService(fetcher *stubFetcher, db *stubSnapshotDB) *Shortages {
	cfg, err := config.New()
	if err != nil {
		panic(err)
	}
	return New(zap.NewNop(), fetcher, db, cfg)
}

func TestCurrentCachesRepeatQueries(t *testing.T) {
	fetcher := &stubFetcher{
		records: models.RecordCollection{"S-1": {"key": "S-1", "status": "Current"}},
	}
	svc := newService(fetcher, &stubSnapshotDB{})
	ctx := context.Background()

	first, err := svc.Current(ctx, 5)
	require.NoError(t, err)
	second, err := svc.Current(ctx, 5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, fetcher.calls)
}

func TestSearchDistinctQueriesMissTheCache(t *testing.T) {
	fetcher := &stubFetcher{records: models.RecordCollection{}}
	svc := newService(fetcher, &stubSnapshotDB{})
	ctx := context.Background()

	_, err := svc.Search(ctx, `status:"Current"`, 5)
	require.NoError(t, err)
	_, err = svc.Search(ctx, `status:"Resolved"`, 5)
	require.NoError(t, err)

	assert.Equal(t, 2, fetcher.calls)
}

func TestChangesDiffsAgainstBaseline(t *testing.T) {
	fetcher := &stubFetcher{
		records: models.RecordCollection{
			"S-1": {"key": "S-1", "status": "Resolved"},
			"S-3": {"key": "S-3", "status": "Current"},
		},
	}
	db := &stubSnapshotDB{
		records: models.RecordCollection{
			"S-1": {"key": "S-1", "status": "Current"},
			"S-2": {"key": "S-2", "status": "Current"},
		},
	}
	svc := newService(fetcher, db)

	cs, err := svc.Changes(context.Background(), 100)
	require.NoError(t, err)

	require.Len(t, cs.Added, 1)
	assert.Equal(t, "S-3", cs.Added[0].Key)
	require.Len(t, cs.Removed, 1)
	assert.Equal(t, "S-2", cs.Removed[0].Key)
	require.Len(t, cs.Changed, 1)
	assert.Equal(t, "S-1", cs.Changed[0].Key)
}

func TestChangesSurfacesFetchFailure(t *testing.T) {
	fetcher := &stubFetcher{err: fmt.Errorf("%w: HTTP 503", models.ErrFetchFailed)}
	svc := newService(fetcher, &stubSnapshotDB{})

	_, err := svc.Changes(context.Background(), 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrFetchFailed)
}
