// Package logging builds the zap loggers used across charsnap.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const rootName = "charsnap"

// New returns a development-style sugared logger writing to stderr, named
// charsnap.<name>. An unrecognised level falls back to info.
func New(name, level string) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level.SetLevel(ParseLevel(level))
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return Named(logger.Sugar(), name)
}

// Named scopes a logger to a component below the charsnap root.
func Named(log *zap.SugaredLogger, name string) *zap.SugaredLogger {
	if log == nil {
		return Nop()
	}
	if name == "" {
		return log.Named(rootName)
	}
	return log.Named(rootName).Named(name)
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// ParseLevel maps a config level name to a zap level.
func ParseLevel(level string) zapcore.Level {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return parsed
}
