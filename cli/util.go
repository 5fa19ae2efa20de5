package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/fdawatch/fdawatch/config"
	"github.com/fdawatch/fdawatch/utils"
)

// bindFlagsAndLoad binds the executed command's flags to their config keys
// and re-unmarshals the layered config. Binding here rather than at command
// construction keeps sibling commands that share a key (e.g. track.json) from
// shadowing each other's flags in viper.
func bindFlagsAndLoad(logger *zap.Logger, cfg *config.Config, cmd *cobra.Command, keys map[string]string) error {
	for key, flag := range keys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			utils.LogError(logger, err, "failed to bind flag to config", zap.String("flag", flag))
			return err
		}
	}
	if err := viper.Unmarshal(cfg); err != nil {
		utils.LogError(logger, err, "failed to unmarshal the config")
		return err
	}
	return nil
}
