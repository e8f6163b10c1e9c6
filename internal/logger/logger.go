package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Initialize builds the production zap logger and installs it as the
// global, so packages log via zap.L().
func Initialize(level string) error {
	atomic, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = atomic

	log, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	zap.ReplaceGlobals(log)
	return nil
}
