// Package logger wraps zap with the small surface the server needs.
package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Logger carries the underlying zap logger.
type Logger struct {
	// Log is the configured zap logger, a no-op until Init is called.
	Log *zap.Logger
}

// New returns a Logger with a no-op zap logger so it is safe to use
// before Init.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init builds a production zap logger at the given level ("debug",
// "info", "warn", "error"; case-insensitive).
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(strings.ToLower(level))
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	log, err := cfg.Build()
	if err != nil {
		return err
	}
	l.Log = log
	return nil
}
