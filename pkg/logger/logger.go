package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLogFile is where diagnostics go when no path is configured.
const DefaultLogFile = "inventory.log"

// Options controls where and how the diagnostic sink writes.
type Options struct {
	// Path is the log file. Empty means DefaultLogFile.
	Path  string
	Level zapcore.Level
	// Console mirrors records to stderr in addition to the file.
	Console bool
}

// New instantiates a zap logger that writes one timestamped line per event to the log file.
func New(opts Options) (*zap.Logger, error) {
	path := opts.Path
	if path == "" {
		path = DefaultLogFile
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.Level = zap.NewAtomicLevelAt(opts.Level)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncoderConfig.CallerKey = ""
	cfg.EncoderConfig.StacktraceKey = ""
	cfg.Sampling = nil
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if opts.Console {
		cfg.OutputPaths = append(cfg.OutputPaths, "stderr")
	}

	return cfg.Build()
}

// Must is a helper that panics when the logger cannot be created.
func Must(logger *zap.Logger, err error) *zap.Logger {
	if err != nil {
		panic(err)
	}
	return logger
}

// Named returns a child logger with the provided component name.
func Named(base *zap.Logger, component string) *zap.Logger {
	if base == nil {
		return zap.NewNop()
	}
	return base.Named(component)
}
