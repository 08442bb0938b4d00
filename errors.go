package nvstore

import (
	"errors"
	"fmt"
)

// ErrRetry is returned by Load when no record exists for the key yet.
// It is not a failure: callers treat it as first use of the key. The
// returned error also matches fs.ErrNotExist.
var ErrRetry = errors.New("no record yet")

var (
	// ErrMissingRoot is returned when no state directory was configured.
	ErrMissingRoot = errors.New("state directory not set")

	// ErrPathTooLong is returned when the state directory or a resolved
	// record path exceeds MaxPathLen.
	ErrPathTooLong = errors.New("path too long")

	// ErrInvalidName is returned for empty names or names containing a path
	// separator or NUL.
	ErrInvalidName = errors.New("invalid record name")

	// ErrInvalidConfig is returned for unknown versions or modes.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrLockCreateFailed is returned when the lock file cannot be opened.
	ErrLockCreateFailed = errors.New("cannot open lock file")

	// ErrLockHeld is returned when another process holds the directory lock.
	ErrLockHeld = errors.New("state directory locked by another process")

	// ErrReadOpenFailed is returned when a record exists but cannot be opened.
	ErrReadOpenFailed = errors.New("cannot open record for read")

	// ErrPermissionSetFailed is returned when a record's mode cannot be set.
	ErrPermissionSetFailed = errors.New("cannot set record permissions")

	// ErrStatFailed is returned when a record's size cannot be determined.
	ErrStatFailed = errors.New("cannot stat record")

	// ErrShortRead is returned when fewer bytes were read than the record size.
	ErrShortRead = errors.New("short read")

	// ErrCreateFailed is returned when the scratch file cannot be created.
	ErrCreateFailed = errors.New("cannot create scratch file")

	// ErrShortWrite is returned when the whole blob could not be written.
	ErrShortWrite = errors.New("short write")

	// ErrSyncFailed is returned when file data cannot be flushed to stable storage.
	ErrSyncFailed = errors.New("sync failed")

	// ErrCloseFailed is returned when closing a record file fails.
	ErrCloseFailed = errors.New("close failed")

	// ErrRenameFailed is returned when the scratch file cannot replace the record.
	ErrRenameFailed = errors.New("rename failed")

	// ErrDirSyncFailed is returned when the directory entry cannot be flushed.
	ErrDirSyncFailed = errors.New("directory sync failed")

	// ErrDirCloseFailed is returned when closing the directory fails.
	ErrDirCloseFailed = errors.New("directory close failed")

	// ErrDeleteFailed is returned when a record cannot be removed, or when it
	// must exist and does not.
	ErrDeleteFailed = errors.New("delete failed")

	// ErrListFailed is returned when the state directory cannot be read.
	ErrListFailed = errors.New("list failed")

	// ErrClosed is returned for operations on a closed Dir.
	ErrClosed = errors.New("state directory closed")
)

// OpError describes a failed operation on a state directory.
//
// Kind is one of the sentinel errors of this package; Err is the underlying
// cause (usually an *fs.PathError) and may be nil. Both are reachable with
// errors.Is and errors.As.
type OpError struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *OpError) Error() string {
	msg := "nvstore: " + e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	msg += ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func opError(op, path string, kind, err error) error {
	return &OpError{Op: op, Path: path, Kind: kind, Err: err}
}

// wrapResolve attaches op context to a resolver or validator error, which
// already carries its kind.
func wrapResolve(op, path string, err error) error {
	for _, kind := range []error{ErrMissingRoot, ErrPathTooLong, ErrInvalidName, ErrInvalidConfig} {
		if errors.Is(err, kind) {
			return &OpError{Op: op, Path: path, Kind: kind, Err: unwrapDetail(err, kind)}
		}
	}
	return fmt.Errorf("nvstore: %s %s: %w", op, path, err)
}

// unwrapDetail strips the kind prefix from "kind: detail" errors so the
// message does not repeat it.
func unwrapDetail(err, kind error) error {
	if err == kind {
		return nil
	}
	msg := err.Error()
	prefix := kind.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return errors.New(msg[len(prefix):])
	}
	return err
}

func isRetry(err error) bool {
	return errors.Is(err, ErrRetry)
}
