// Package logging builds the zap loggers used by the otb command and the
// editing session.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logging configuration
type Config struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"` // "json" or "console"
	OutputPath  string `yaml:"output_path"`
	Development bool   `yaml:"development"`
}

// DefaultConfig logs info and above to stderr in console format.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "console",
	}
}

// Validate checks the level and format.
func (c Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	switch c.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging: unknown format %q (want json or console)", c.Format)
	}
	return nil
}

// NewLogger creates a logger from config. An unparsable level falls back to
// info.
func NewLogger(config Config) (*zap.Logger, error) {
	var zapConfig zap.Config

	if config.Development {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(config.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zapConfig.Level = level

	if config.Format == "json" {
		zapConfig.Encoding = "json"
	} else {
		zapConfig.Encoding = "console"
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapConfig.DisableStacktrace = true
	}

	if config.OutputPath != "" {
		zapConfig.OutputPaths = []string{config.OutputPath}
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return logger, nil
}

// NewDefaultLogger creates a logger with DefaultConfig, falling back to a
// no-op logger if that fails.
func NewDefaultLogger() *zap.Logger {
	logger, err := NewLogger(DefaultConfig())
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
