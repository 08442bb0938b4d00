package flock

import (
	"errors"
	"os"
	"sync"
)

var (
	// ErrHeld is returned when another holder already owns the lock.
	ErrHeld = errors.New("lock held by another process")

	// ErrUnsupported is returned on platforms without fcntl locks.
	ErrUnsupported = errors.New("file locking not supported on this platform")
)

// Lock is an acquired lock on a sentinel file.
//
// The descriptor is a raw file descriptor rather than an *os.File, so nothing
// closes it behind the caller's back when the Lock becomes unreachable. It is
// closed only by Release or by process exit.
type Lock struct {
	path string

	mu   sync.Mutex
	fd   int
	held bool
}

// Acquire opens (creating or truncating) the file at path and takes a
// non-blocking exclusive write lock on it. The open refuses to follow a
// symbolic link at path.
//
// Open failures are returned as *os.PathError. A lock conflict wraps ErrHeld.
func Acquire(path string, perm os.FileMode) (*Lock, error) {
	fd, err := openFile(path, perm)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: path, Err: err}
	}
	if err := lockFile(fd, path); err != nil {
		_ = closeFile(fd)
		return nil, err
	}
	return &Lock{path: path, fd: fd, held: true}, nil
}

// Path returns the sentinel file path.
func (l *Lock) Path() string {
	return l.path
}

// Release drops the lock by closing the descriptor. It is safe to call more
// than once.
func (l *Lock) Release() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.held {
		return nil
	}
	l.held = false
	if err := closeFile(l.fd); err != nil {
		return &os.PathError{Op: "close", Path: l.path, Err: err}
	}
	return nil
}
