package main

import (
	"os"
	"time"

	sentry "github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/fdawatch/fdawatch/cli"
	"github.com/fdawatch/fdawatch/config"
	"github.com/fdawatch/fdawatch/utils"
	"github.com/fdawatch/fdawatch/utils/log"
)

// version and dsn are injected during build by ldflags.
var version string
var dsn string

func main() {
	if version == "" {
		version = "0-dev"
	}
	utils.Version = version

	logger, err := log.New()
	if err != nil {
		panic(err)
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		TracesSampleRate: 1.0,
	}); err != nil {
		logger.Debug("could not initialize sentry", zap.Error(err))
	}
	defer utils.HandlePanic(logger)
	defer sentry.Flush(2 * time.Second)

	ctx := utils.NewCtx()

	cfg, err := config.New()
	if err != nil {
		utils.LogError(logger, err, "failed to build the default config")
		os.Exit(1)
	}

	rootCmd := cli.Root(ctx, logger, cfg)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
