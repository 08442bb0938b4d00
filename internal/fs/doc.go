// Package fs provides the filesystem seam used by the record store, for
// testability and fault injection.
//
// The package defines two key interfaces:
//
//   - [File]: an open file with read/write/sync/chmod capabilities
//   - [FileSystem]: filesystem operations (open, remove, rename, stat, readdir)
//
// # Implementations
//
//   - [LocalFS]: production implementation on top of the os package
//   - [FaultyFS]: test utility that injects errors and short I/O per file
//
// # Usage
//
// Production code uses fs.Default (which is [LocalFS]):
//
//	f, err := fs.Default.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC|fs.NoFollow, 0640)
//
// Tests inject [FaultyFS] to simulate a crash between write and rename:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("TMP*", fs.Fault{FailOnRename: true})
//
// # Design Notes
//
// There are no context.Context parameters. Local filesystem calls are
// non-interruptible at the syscall level.
package fs
