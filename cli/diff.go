package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fdawatch/fdawatch/config"
	"github.com/fdawatch/fdawatch/pkg/diff"
	"github.com/fdawatch/fdawatch/pkg/platform/snapshotdb"
	trackSvc "github.com/fdawatch/fdawatch/pkg/service/track"
	"github.com/fdawatch/fdawatch/utils"
)

func init() {
	Register("diff", Diff)
}

// Diff compares two snapshot files offline, without touching the network or
// moving any baseline.
func Diff(ctx context.Context, logger *zap.Logger, cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "diff OLD_SNAPSHOT NEW_SNAPSHOT",
		Short:   "compare two snapshot files without fetching or persisting",
		Example: `fdawatch diff data/shortage_snapshot.json data/shortage_snapshot.new.json`,
		Args:    cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlagsAndLoad(logger, cfg, cmd, map[string]string{
				"track.json":       "json",
				"track.maxPreview": "max-preview",
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			previous, err := snapshotdb.New(logger, args[0]).Load(ctx)
			if err != nil {
				utils.LogError(logger, err, "failed to load the old snapshot", zap.String("path", args[0]))
				return err
			}
			current, err := snapshotdb.New(logger, args[1]).Load(ctx)
			if err != nil {
				utils.LogError(logger, err, "failed to load the new snapshot", zap.String("path", args[1]))
				return err
			}

			report := trackSvc.Report{
				Timestamp: time.Now().UTC().Format(time.RFC3339),
				Fetched:   len(current),
				Changeset: diff.Diff(previous, current),
			}
			if cfg.Track.JSON {
				return trackSvc.RenderJSON(os.Stdout, logger, report)
			}
			trackSvc.RenderHuman(os.Stdout, report, cfg.Track.MaxPreview)
			return nil
		},
	}

	cmd.Flags().Bool("json", cfg.Track.JSON, "emit the report as JSON with RFC 6902 patches")
	cmd.Flags().Int("max-preview", cfg.Track.MaxPreview, "max records listed per report section")

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return cmd
}
