// Package logger owns the process-wide logger of the patterngen CLI.
// Library packages never log through it; they receive a logger through
// their configuration and fall back to a no-op one.
package logger

import (
	"go.uber.org/zap"
)

var log *zap.SugaredLogger

func init() {
	// A no-op logger is installed at load time, so failures before
	// Initialize runs can log safely.
	log = zap.NewNop().Sugar()
}

// Initialize builds the global logger. The default configuration prints
// warnings and errors in a human-readable form; verbose lowers the level
// to debug and enables caller annotations.
func Initialize(verbose bool) error {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.DisableCaller = false
	}
	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	log = zl.Sugar()
	return nil
}

// Get returns the global logger for injection into library configuration.
func Get() *zap.SugaredLogger {
	return log
}

// Cleanup flushes buffered entries. Called once before process exit.
func Cleanup() {
	_ = log.Sync()
}

// Debugf logs a formatted debug message.
func Debugf(format string, args ...any) {
	log.Debugf(format, args...)
}

// Debugw logs a debug message with structured fields.
func Debugw(msg string, keysAndValues ...any) {
	log.Debugw(msg, keysAndValues...)
}

// Infof logs a formatted info message.
func Infof(format string, args ...any) {
	log.Infof(format, args...)
}

// Infow logs an info message with structured fields.
func Infow(msg string, keysAndValues ...any) {
	log.Infow(msg, keysAndValues...)
}

// Warnf logs a formatted warning message.
func Warnf(format string, args ...any) {
	log.Warnf(format, args...)
}

// Warnw logs a warning message with structured fields.
func Warnw(msg string, keysAndValues ...any) {
	log.Warnw(msg, keysAndValues...)
}

// Errorf logs a formatted error message.
func Errorf(format string, args ...any) {
	log.Errorf(format, args...)
}

// Errorw logs an error message with structured fields.
func Errorw(msg string, keysAndValues ...any) {
	log.Errorw(msg, keysAndValues...)
}
