// Package serve exposes the shortage dataset and its changes over HTTP.
package serve

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/fdawatch/fdawatch/config"
	"github.com/fdawatch/fdawatch/pkg/diff"
	"github.com/fdawatch/fdawatch/pkg/models"
	"github.com/fdawatch/fdawatch/pkg/platform/openfda"
)

type cached struct {
	records models.RecordCollection
}

type Shortages struct {
	logger     *zap.Logger
	fetcher    Fetcher
	snapshotDB SnapshotDB
	config     *config.Config
	cache      *expirable.LRU[string, cached]
}

func New(logger *zap.Logger, fetcher Fetcher, snapshotDB SnapshotDB, cfg *config.Config) *Shortages {
	size := cfg.Serve.CacheSize
	if size <= 0 {
		size = 128
	}
	ttl := time.Duration(cfg.Serve.CacheTTL) * time.Second

	return &Shortages{
		logger:     logger,
		fetcher:    fetcher,
		snapshotDB: snapshotDB,
		config:     cfg,
		cache:      expirable.NewLRU[string, cached](size, nil, ttl),
	}
}

// fetchCached serves repeat queries from the LRU so bursts of identical
// requests hit openFDA once per TTL window.
func (s *Shortages) fetchCached(ctx context.Context, q openfda.Query) (models.RecordCollection, error) {
	key := fmt.Sprintf("%s|%d|%d", q.Search, q.Limit, q.Skip)
	if v, ok := s.cache.Get(key); ok {
		s.logger.Debug("serving shortage query from cache", zap.String("key", key))
		return v.records, nil
	}

	records, _, err := s.fetcher.Fetch(ctx, q)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, cached{records: records})
	return records, nil
}

func (s *Shortages) Current(ctx context.Context, limit int) (models.RecordCollection, error) {
	return s.fetchCached(ctx, openfda.Query{Limit: limit})
}

func (s *Shortages) Search(ctx context.Context, query string, limit int) (models.RecordCollection, error) {
	return s.fetchCached(ctx, openfda.Query{Search: query, Limit: limit})
}

// Changes diffs a fresh fetch against the persisted baseline without moving
// the baseline; only a "track" run persists.
func (s *Shortages) Changes(ctx context.Context, limit int) (models.Changeset, error) {
	current, err := s.fetchCached(ctx, openfda.Query{Search: s.config.FDA.Search, Limit: limit})
	if err != nil {
		return models.Changeset{}, err
	}

	previous, err := s.snapshotDB.Load(ctx)
	if err != nil {
		return models.Changeset{}, err
	}

	return diff.Diff(previous, current), nil
}
