// Package logging builds the zap logger behind the --debug flag.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a development logger writing to path at debug level, or a
// no-op logger when path is empty. The terminal belongs to the TUI, so the
// logger never writes to stdout or stderr.
func New(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.CallerKey = "caller"

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building debug logger: %w", err)
	}
	return logger.Named("agegate"), nil
}
