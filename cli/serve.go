package cli

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fdawatch/fdawatch/config"
	"github.com/fdawatch/fdawatch/pkg/platform/openfda"
	"github.com/fdawatch/fdawatch/pkg/platform/snapshotdb"
	"github.com/fdawatch/fdawatch/pkg/routes"
	serveSvc "github.com/fdawatch/fdawatch/pkg/service/serve"
	"github.com/fdawatch/fdawatch/utils"
)

func init() {
	Register("serve", Serve)
}

// Serve runs the HTTP wrapper API over the shortage dataset.
func Serve(ctx context.Context, logger *zap.Logger, cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "expose current shortages, search, and changes over HTTP",
		Example: `fdawatch serve --port 8320`,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlagsAndLoad(logger, cfg, cmd, map[string]string{
				"serve.port":      "port",
				"serve.cacheSize": "cache-size",
				"serve.cacheTTL":  "cache-ttl",
				"fda.baseURL":     "base-url",
			})
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := openfda.New(logger, cfg.FDA.BaseURL, time.Duration(cfg.FDA.Timeout)*time.Second)
			db := snapshotdb.New(logger, cfg.Track.SnapshotPath)
			svc := serveSvc.New(logger, client, db, cfg)

			router := chi.NewRouter()
			routes.New(router, svc, logger)

			if err := routes.StartServer(ctx, logger, cfg.Serve.Port, router); err != nil {
				utils.LogError(logger, err, "the HTTP server stopped with an error")
				return err
			}
			return nil
		},
	}

	cmd.Flags().Uint32("port", cfg.Serve.Port, "port for the HTTP server")
	cmd.Flags().Int("cache-size", cfg.Serve.CacheSize, "max cached upstream queries")
	cmd.Flags().Uint64("cache-ttl", cfg.Serve.CacheTTL, "seconds a cached upstream response stays fresh")
	cmd.Flags().String("base-url", cfg.FDA.BaseURL, "openFDA shortage endpoint URL")

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return cmd
}
