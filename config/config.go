// Package config holds the small, read-once-at-startup configuration shared
// by every cmd/kauma subcommand: log level/format for the structured logger.
// Flags specific to one subcommand are bound in cmd/kauma itself. There is no
// hot-reload and no remote config source — this toolbox runs as a one-shot
// CLI invocation or a short-lived oracle server process.
package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logging holds the global logger configuration bound by the root command's
// persistent flags, shared by every subcommand.
type Logging struct {
	Level  string
	Format string
}

// NewLogger builds a zap.Logger from the logging configuration: a console
// encoder for interactive use, a JSON encoder when Format is "json".
func (l Logging) NewLogger() (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return nil, fmt.Errorf("config: invalid log level %q: %w", l.Level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	switch l.Format {
	case "json":
		cfg.Encoding = "json"
	case "console", "":
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("config: invalid log format %q, want \"console\" or \"json\"", l.Format)
	}

	return cfg.Build()
}
