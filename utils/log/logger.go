// Package log builds the zap logger used across the fdawatch CLI.
package log

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logCfg zap.Config

func New() (*zap.Logger, error) {
	logCfg = zap.NewDevelopmentConfig()

	logCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	logCfg.DisableStacktrace = true
	logCfg.EncoderConfig.EncodeCaller = nil

	logger, err := logCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build config for logger: %v", err)
	}
	return logger, nil
}

// ChangeLogLevel rebuilds the logger at the given level. Debug level turns
// stacktraces and caller annotations back on.
func ChangeLogLevel(level zapcore.Level) (*zap.Logger, error) {
	logCfg.Level = zap.NewAtomicLevelAt(level)
	if level == zap.DebugLevel {
		logCfg.DisableStacktrace = false
		logCfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	}

	logger, err := logCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build config for logger: %v", err)
	}
	return logger, nil
}
