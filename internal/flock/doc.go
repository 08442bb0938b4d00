// Package flock implements the advisory, process-exclusive lock that guards a
// state directory.
//
// The lock is a non-blocking write lock over the whole of a sentinel file.
// Contention is reported immediately as [ErrHeld]; there is no waiting or
// retrying. The lock is released by [Lock.Release] or when the process exits,
// never by the garbage collector.
//
// On Linux open file description locks are used, so two handles in the same
// process conflict just like two processes do. Other unix systems, and Linux
// kernels without OFD support, fall back to classic POSIX record locks. Those
// belong to the process: a second Acquire of the same file in the same process
// succeeds, and releasing either Lock drops the lock for both, leaving the
// other handle unprotected against other processes.
package flock
