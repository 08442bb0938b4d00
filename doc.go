// Package nvstore provides durable, crash-consistent storage of small state
// blobs in a local directory.
//
// Each record is identified by a numeric instance id and a name and lives in
// its own file directly inside the state directory. A stored record is either
// fully visible under its final name or not visible at all, even if the
// process crashes or power is lost between write and rename.
//
// # Quick Start
//
//	dir, err := nvstore.Prepare("/var/lib/swtpm", nvstore.WithVersion(nvstore.Version2))
//	if err != nil {
//	    return err // ErrLockHeld if another process owns the directory
//	}
//	defer dir.Close()
//
//	state, err := dir.Load(0, "permall")
//	if errors.Is(err, nvstore.ErrRetry) {
//	    // first start: no state yet
//	}
//	err = dir.Store(0, "permall", state)
//
// # On-disk Layout
//
//	<root>/.lock              sentinel locked by Prepare
//	<root>/tpm-00.permall     Version1 record, instance 0
//	<root>/tpm2-00.permall    Version2 record, instance 0
//	<root>/TMP2-00.permall    scratch file, exists only during Store
//
// Instance ids are lowercase hex with at least two digits.
//
// # Durability Model
//
// Store writes a scratch file, flushes it, closes it, renames it over the
// record and then flushes the directory so the rename survives a crash.
// Readers therefore see the old or the new content, never a mix.
//
// # Locking
//
// Prepare takes a non-blocking exclusive fcntl write lock on <root>/.lock.
// A second process preparing the same directory fails with ErrLockHeld.
// The lock is released by Close or by process exit. Within one process the
// caller serialises operations on the same key.
//
// # Errors
//
// Every failure is an *OpError carrying the operation, the path, a sentinel
// kind (ErrShortRead, ErrRenameFailed, ...) and the underlying OS error. The
// package never retries internally and never logs failures it returns, except
// through an optional Logger.
package nvstore
