// Package utils provides shared helpers for the fdawatch CLI.
package utils

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	sentry "github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

var Emoji = "\U0001F48A" + " fdawatch:"

// Version is injected at build time via ldflags.
var Version = "0-dev"

// LogError logs the error with the given message. Safe to call with a nil
// logger during early startup.
func LogError(logger *zap.Logger, err error, msg string, fields ...zap.Field) {
	if logger == nil {
		fmt.Println(Emoji, msg, err)
		return
	}
	fields = append(fields, zap.Error(err))
	logger.Error(msg, fields...)
}

// HandlePanic recovers a panic, reports it to sentry, and prints the stack so
// a crash never exits silently.
func HandlePanic(logger *zap.Logger) {
	if r := recover(); r != nil {
		sentry.CurrentHub().Recover(r)
		sentry.Flush(2 * time.Second)
		LogError(logger, fmt.Errorf("%v", r), "recovered from panic", zap.String("stack", string(debug.Stack())))
		os.Exit(1)
	}
}

// NewCtx returns a context cancelled on SIGINT/SIGTERM so a run aborts
// cleanly before the diff begins.
func NewCtx() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 1)
	// os.Interrupt is more portable than syscall.SIGINT
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigs
		cancel()
	}()

	return ctx
}
