package nvstore

import (
	"log/slog"
	"os"

	"github.com/hupe1980/nvstore/internal/fs"
)

type options struct {
	config           Config
	fs               fs.FileSystem
	logger           *Logger
	metricsCollector MetricsCollector
}

func defaultOptions() options {
	return options{
		config:           DefaultConfig(),
		fs:               fs.Default,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
}

// Option configures Prepare.
type Option func(*options)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithVersion selects the record-format version and with it the filename suffix.
func WithVersion(v Version) Option {
	return func(o *options) {
		o.config.Version = v
	}
}

// WithMode sets the permission mode of record files.
func WithMode(mode os.FileMode) Option {
	return func(o *options) {
		o.config.Mode = mode
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := nvstore.NewJSONLogger(slog.LevelDebug)
//	dir, _ := nvstore.Prepare("/var/lib/swtpm", nvstore.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
//	metrics := &nvstore.BasicMetricsCollector{}
//	dir, _ := nvstore.Prepare(root, nvstore.WithMetricsCollector(metrics))
//	// ... use dir ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithFileSystem sets the file system used for record files.
// This is primarily used for testing and fault injection; the directory lock
// always uses the operating system directly.
func WithFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		if fsys == nil {
			fsys = fs.Default
		}
		o.fs = fsys
	}
}
