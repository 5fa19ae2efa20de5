package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	yamlLib "gopkg.in/yaml.v3"

	"github.com/fdawatch/fdawatch/config"
	"github.com/fdawatch/fdawatch/utils"
)

func init() {
	Register("generate-config", GenerateConfig)
}

// GenerateConfig writes the default fdawatch.yml so users have a template to
// edit instead of memorizing flags.
func GenerateConfig(_ context.Context, logger *zap.Logger, cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate-config",
		Short:   "generate a default fdawatch.yml in the target directory",
		Example: `fdawatch generate-config -p "/path/to/localdir"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := cmd.Flags().GetString("path")
			if err != nil {
				utils.LogError(logger, err, "failed to read the path flag")
				return err
			}

			doc := config.Default()
			// sanity-parse before writing so a broken default never ships
			var parsed config.Config
			if err := yamlLib.Unmarshal([]byte(doc), &parsed); err != nil {
				utils.LogError(logger, err, "default config document is not valid yaml")
				return err
			}

			filePath := filepath.Join(path, "fdawatch.yml")
			if err := os.WriteFile(filePath, []byte(doc), 0o644); err != nil {
				utils.LogError(logger, err, "failed to write the config file", zap.String("path", filePath))
				return err
			}

			logger.Info("config file generated", zap.String("path", filePath))
			return nil
		},
	}

	cmd.Flags().StringP("path", "p", ".", "directory to write fdawatch.yml into")

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return cmd
}
