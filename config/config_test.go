package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPopulatesDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "https://api.fda.gov/drug/shortages.json", cfg.FDA.BaseURL)
	assert.Equal(t, 100, cfg.FDA.Limit)
	assert.Equal(t, 0, cfg.FDA.Skip)
	assert.Equal(t, uint64(30), cfg.FDA.Timeout)
	assert.Equal(t, "data/shortage_snapshot.json", cfg.Track.SnapshotPath)
	assert.False(t, cfg.Track.NoSave)
	assert.Equal(t, 5, cfg.Track.MaxPreview)
	assert.Equal(t, uint32(8320), cfg.Serve.Port)
}

func TestDefaultDocumentIsStable(t *testing.T) {
	// generate-config writes this document verbatim; it must stay parseable.
	assert.NotEmpty(t, Default())
	_, err := New()
	assert.NoError(t, err)
}
