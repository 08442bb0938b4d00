package nvstore

import (
	"errors"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with nvstore-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// WithRoot adds the state directory to every record.
func (l *Logger) WithRoot(root string) *Logger {
	return &Logger{Logger: l.Logger.With("root", root)}
}

// LogPrepare logs the outcome of Prepare.
func (l *Logger) LogPrepare(root string, err error) {
	if err != nil {
		l.Error("prepare failed", "root", root, "error", err)
		return
	}
	l.Debug("state directory prepared", "root", root)
}

// LogLoad logs a load. A missing record is not an error.
func (l *Logger) LogLoad(key Key, n int, err error) {
	switch {
	case errors.Is(err, ErrRetry):
		l.Debug("no record", "instance", key.InstanceID, "name", key.Name)
	case err != nil:
		l.Error("load failed", "instance", key.InstanceID, "name", key.Name, "error", err)
	default:
		l.Debug("load completed", "instance", key.InstanceID, "name", key.Name, "bytes", n)
	}
}

// LogStore logs a store.
func (l *Logger) LogStore(key Key, n int, err error) {
	if err != nil {
		l.Error("store failed", "instance", key.InstanceID, "name", key.Name, "bytes", n, "error", err)
		return
	}
	l.Debug("store completed", "instance", key.InstanceID, "name", key.Name, "bytes", n)
}

// LogDelete logs a delete.
func (l *Logger) LogDelete(key Key, mustExist bool, err error) {
	if err != nil {
		l.Error("delete failed", "instance", key.InstanceID, "name", key.Name, "must_exist", mustExist, "error", err)
		return
	}
	l.Debug("delete completed", "instance", key.InstanceID, "name", key.Name)
}

// LogClose logs the release of the directory lock.
func (l *Logger) LogClose(err error) {
	if err != nil {
		l.Warn("lock release failed", "error", err)
		return
	}
	l.Debug("state directory released")
}
