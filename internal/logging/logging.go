// Package logging builds the zap loggers used for diagnostic output.
//
// Diagnostics never share a writer with command results: callers pass the
// stderr-side writer so JSON and YAML on stdout stay parseable.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger writing to w.
// When verbose is false it returns a no-op logger.
func New(w io.Writer, verbose bool) *zap.Logger {
	if !verbose || w == nil {
		return zap.NewNop()
	}

	cfg := zap.NewDevelopmentEncoderConfig()
	// Timestamps would make diagnostic output differ between identical runs.
	cfg.TimeKey = ""
	cfg.CallerKey = ""

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.AddSync(w),
		zap.DebugLevel,
	)
	return zap.New(core)
}
