// Package log owns the process-wide structured logger. Init runs once
// at startup; everything afterwards goes through slog handlers.
package log

import (
	"log/slog"
	"os"
	"sync"
)

var (
	logger *slog.Logger
	once   sync.Once
)

// Init configures the global logger at the given level ("debug",
// "info", "warn", "error"). Unrecognized levels fall back to info.
// TOUCHPOINT_ENV=production switches to JSON output for log shippers;
// anything else gets human-readable text.
func Init(level string) {
	once.Do(func() {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			lvl = slog.LevelInfo
		}
		opts := &slog.HandlerOptions{Level: lvl}

		var h slog.Handler
		if os.Getenv("TOUCHPOINT_ENV") == "production" {
			h = slog.NewJSONHandler(os.Stdout, opts)
		} else {
			h = slog.NewTextHandler(os.Stderr, opts)
		}

		logger = slog.New(h)
		slog.SetDefault(logger)
	})
}

// L returns the global logger, initializing it at info if Init was
// never called.
func L() *slog.Logger {
	if logger == nil {
		Init("info")
	}
	return logger
}

func Debug(msg string, args ...any) { L().Debug(msg, args...) }
func Info(msg string, args ...any)  { L().Info(msg, args...) }
func Warn(msg string, args ...any)  { L().Warn(msg, args...) }
func Error(msg string, args ...any) { L().Error(msg, args...) }

// With returns a child logger carrying the given attributes.
func With(args ...any) *slog.Logger {
	return L().With(args...)
}
