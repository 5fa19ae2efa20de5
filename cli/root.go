package cli

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fdawatch/fdawatch/config"
	"github.com/fdawatch/fdawatch/pkg/models"
	"github.com/fdawatch/fdawatch/utils"
	"github.com/fdawatch/fdawatch/utils/log"
)

var rootCustomHelpTemplate = `{{.Short}}

Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

Aliases:
  {{.NameAndAliases}}{{end}}{{if .HasAvailableSubCommands}}

Available Commands:{{range .Commands}}{{if .IsAvailableCommand}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}

Use "{{.CommandPath}} [command] --help" for more information about a command.
`

var rootExamples = `
  Track:
	fdawatch track --search 'shortage_status:"Current"' --limit 100

  Offline diff:
	fdawatch diff data/old_snapshot.json data/new_snapshot.json

  Serve:
	fdawatch serve --port 8320

  Generate-Config:
	fdawatch generate-config -p "/path/to/localdir"
`

// Root builds the root command and mounts every registered subcommand.
func Root(ctx context.Context, logger *zap.Logger, conf *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "fdawatch",
		Short:   "fdawatch tracks changes in the openFDA drug-shortage dataset",
		Example: rootExamples,
		Version: utils.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return preProcess(logger, conf, cmd)
		},
	}
	rootCmd.SetHelpTemplate(rootCustomHelpTemplate)

	rootCmd.PersistentFlags().Bool("debug", conf.Debug, "Run in debug mode")
	rootCmd.PersistentFlags().Bool("disable-ansi", conf.DisableANSI, "Disable ANSI coloring of the report")
	rootCmd.PersistentFlags().String("config-path", conf.ConfigPath, "Path to the directory holding fdawatch.yml")

	bindFlag(logger, "debug", rootCmd, "debug")
	bindFlag(logger, "disableANSI", rootCmd, "disable-ansi")
	bindFlag(logger, "configPath", rootCmd, "config-path")

	for _, hook := range Registered {
		rootCmd.AddCommand(hook(ctx, logger, conf))
	}
	return rootCmd
}

func bindFlag(logger *zap.Logger, key string, cmd *cobra.Command, flag string) {
	if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		utils.LogError(logger, err, "failed to bind flag to config", zap.String("flag", flag))
	}
}

// preProcess layers the defaults, the optional fdawatch.yml, and the bound
// flags into conf, then adjusts the logger and color settings.
func preProcess(logger *zap.Logger, conf *config.Config, cmd *cobra.Command) error {
	viper.SetConfigType("yaml")
	if err := viper.ReadConfig(strings.NewReader(config.Default())); err != nil {
		utils.LogError(logger, err, "failed to read the default config")
		return err
	}

	configPath := conf.ConfigPath
	if flagPath, err := cmd.Flags().GetString("config-path"); err == nil && flagPath != "" {
		configPath = flagPath
	}
	if configPath == "" {
		configPath = "."
	}
	viper.SetConfigName("fdawatch")
	viper.AddConfigPath(configPath)
	if err := viper.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			utils.LogError(logger, err, "failed to read the config file", zap.String("path", configPath))
			return err
		}
		logger.Debug("no fdawatch.yml found, running on defaults", zap.String("path", configPath))
	}

	if err := viper.Unmarshal(conf); err != nil {
		utils.LogError(logger, err, "failed to unmarshal the config")
		return err
	}

	if conf.Debug {
		debugLogger, err := log.ChangeLogLevel(zapcore.DebugLevel)
		if err != nil {
			utils.LogError(logger, err, "failed to switch the logger to debug level")
			return err
		}
		*logger = *debugLogger
	}

	if conf.DisableANSI {
		models.IsAnsiDisabled = true
		color.NoColor = true
	}
	// honor NO_COLOR even without the flag
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		models.IsAnsiDisabled = true
	}

	return nil
}
