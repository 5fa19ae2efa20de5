package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fdawatch/fdawatch/config"
	"github.com/fdawatch/fdawatch/pkg/platform/openfda"
	"github.com/fdawatch/fdawatch/pkg/platform/snapshotdb"
	trackSvc "github.com/fdawatch/fdawatch/pkg/service/track"
	"github.com/fdawatch/fdawatch/utils"
)

func init() {
	Register("track", Track)
}

var trackFlagKeys = map[string]string{
	"fda.baseURL":        "base-url",
	"fda.search":         "search",
	"fda.limit":          "limit",
	"fda.skip":           "skip",
	"track.snapshotPath": "snapshot",
	"track.noSave":       "no-save",
	"track.json":         "json",
	"track.maxPreview":   "max-preview",
}

func Track(ctx context.Context, logger *zap.Logger, cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "track",
		Short:   "fetch the latest shortage records and diff them against the last snapshot",
		Example: `fdawatch track --search 'shortage_status:"Current"' --limit 100 --snapshot data/shortage_snapshot.json`,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := bindFlagsAndLoad(logger, cfg, cmd, trackFlagKeys); err != nil {
				return err
			}
			if cfg.FDA.Limit <= 0 {
				utils.LogError(logger, nil, "--limit must be > 0")
				return errors.New("--limit must be > 0")
			}
			if cfg.FDA.Skip < 0 {
				utils.LogError(logger, nil, "--skip must be >= 0")
				return errors.New("--skip must be >= 0")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := openfda.New(logger, cfg.FDA.BaseURL, time.Duration(cfg.FDA.Timeout)*time.Second)
			db := snapshotdb.New(logger, cfg.Track.SnapshotPath)
			svc := trackSvc.New(logger, client, db, cfg)
			return svc.Start(ctx)
		},
	}

	cmd.Flags().String("base-url", cfg.FDA.BaseURL, "openFDA shortage endpoint URL")
	cmd.Flags().String("search", cfg.FDA.Search, "openFDA search query")
	cmd.Flags().Int("limit", cfg.FDA.Limit, "max records per request")
	cmd.Flags().Int("skip", cfg.FDA.Skip, "result offset")
	cmd.Flags().String("snapshot", cfg.Track.SnapshotPath, "path to the local snapshot file")
	cmd.Flags().Bool("no-save", cfg.Track.NoSave, "do not write the snapshot to disk")
	cmd.Flags().Bool("json", cfg.Track.JSON, "emit the report as JSON with RFC 6902 patches")
	cmd.Flags().Int("max-preview", cfg.Track.MaxPreview, "max records listed per report section")

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return cmd
}
