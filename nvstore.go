package nvstore

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/hupe1980/nvstore/internal/flock"
)

// lockFileMode is the mode of the sentinel lock file.
const lockFileMode = 0660

// Dir is a prepared state directory. It holds the directory lock until Close.
//
// Dir is safe for concurrent use as long as callers serialise operations on
// the same key.
type Dir struct {
	root    string
	files   files
	lock    *flock.Lock
	logger  *Logger
	metrics MetricsCollector
	closed  atomic.Bool
}

// Prepare validates root and takes the exclusive directory lock on
// <root>/.lock. It fails fast with ErrLockHeld when another process holds the
// lock; it never waits.
func Prepare(root string, optFns ...Option) (*Dir, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	d, err := prepare(root, o)
	o.logger.LogPrepare(root, err)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func prepare(root string, o options) (*Dir, error) {
	cfg := o.config.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, wrapResolve("prepare", root, err)
	}
	if err := Validate(root); err != nil {
		return nil, wrapResolve("prepare", root, err)
	}
	o.logger.Debug("rooted state path", "root", root, "version", cfg.Version.String())

	lockPath := rooted(root, LockFileName)
	lock, err := flock.Acquire(lockPath, lockFileMode)
	if err != nil {
		if errors.Is(err, flock.ErrHeld) {
			return nil, opError("prepare", lockPath, ErrLockHeld, err)
		}
		return nil, opError("prepare", lockPath, ErrLockCreateFailed, err)
	}

	return &Dir{
		root:    root,
		files:   files{fs: o.fs, root: root, cfg: cfg},
		lock:    lock,
		logger:  o.logger.WithRoot(root),
		metrics: o.metricsCollector,
	}, nil
}

// Root returns the state directory.
func (d *Dir) Root() string {
	return d.root
}

// Config returns the effective configuration.
func (d *Dir) Config() Config {
	return d.files.cfg
}

// Path returns the permanent file path of a record.
func (d *Dir) Path(instanceID uint32, name string) (string, error) {
	return d.files.path(instanceID, name, false)
}

// Load returns the record's bytes. The returned slice is owned by the caller.
//
// If the record does not exist, Load returns an error matching ErrRetry: the
// key has not been stored yet. A zero-length record yields an empty slice and
// no error.
func (d *Dir) Load(instanceID uint32, name string) ([]byte, error) {
	if d.closed.Load() {
		return nil, opError("load", d.root, ErrClosed, nil)
	}
	start := time.Now()
	data, err := d.files.load(instanceID, name)
	d.metrics.RecordLoad(time.Since(start), len(data), err)
	d.logger.LogLoad(Key{InstanceID: instanceID, Name: name}, len(data), err)
	return data, err
}

// Store atomically replaces the record with data.
//
// On success the record holds exactly data and the change is durable. On
// failure the previous content, if any, is left untouched and no partial
// content is ever visible under the record's name.
func (d *Dir) Store(instanceID uint32, name string, data []byte) error {
	if d.closed.Load() {
		return opError("store", d.root, ErrClosed, nil)
	}
	start := time.Now()
	err := d.files.store(instanceID, name, data)
	d.metrics.RecordStore(time.Since(start), len(data), err)
	d.logger.LogStore(Key{InstanceID: instanceID, Name: name}, len(data), err)
	return err
}

// Delete removes the record. A missing record is an error only if mustExist
// is set.
func (d *Dir) Delete(instanceID uint32, name string, mustExist bool) error {
	if d.closed.Load() {
		return opError("delete", d.root, ErrClosed, nil)
	}
	start := time.Now()
	err := d.files.remove(instanceID, name, mustExist)
	d.metrics.RecordDelete(time.Since(start), err)
	d.logger.LogDelete(Key{InstanceID: instanceID, Name: name}, mustExist, err)
	return err
}

// Keys lists the records of the configured version, ordered by instance id
// and name. Scratch files left by an interrupted Store are not listed.
func (d *Dir) Keys() ([]Key, error) {
	if d.closed.Load() {
		return nil, opError("list", d.root, ErrClosed, nil)
	}
	keys, err := d.files.keys()
	if err != nil {
		d.logger.Error("list failed", "error", err)
	}
	return keys, err
}
