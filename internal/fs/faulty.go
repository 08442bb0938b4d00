package fs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// ErrInjected is the default error returned by injected faults.
var ErrInjected = errors.New("injected fault error")

// Fault defines the failure behavior for files matching a rule.
type Fault struct {
	FailOnOpen     bool
	FailOnWrite    bool
	FailAfterBytes int64 // Fail writes once this many bytes were written to the file. 0 disables.
	MaxWriteChunk  int   // Accept at most this many bytes per Write without an error. 0 disables.
	ReadLimit      int64 // Report EOF after this many bytes were read from the file. 0 disables.
	FailOnSync     bool
	FailOnClose    bool
	FailOnChmod    bool
	FailOnStat     bool
	FailOnRename   bool // Matched against the rename source.
	FailOnRemove   bool
	Err            error
}

func (f Fault) err() error {
	if f.Err != nil {
		return f.Err
	}
	return ErrInjected
}

type rule struct {
	pattern string
	fault   Fault
}

// FaultyFS is a FileSystem wrapper that can inject errors.
//
// Rules are glob patterns (filepath.Match) applied to the base name of the
// path. The last matching rule wins; the default fault (see SetDefault)
// applies when nothing matches.
type FaultyFS struct {
	FS FileSystem

	mu      sync.Mutex
	def     Fault
	rules   []rule
	written int64
	renames int
}

// NewFaultyFS creates a new FaultyFS wrapping the provided FS (or Default if nil).
func NewFaultyFS(fs FileSystem) *FaultyFS {
	if fs == nil {
		fs = Default
	}
	return &FaultyFS{FS: fs}
}

// AddRule adds a fault injection rule for base names matching pattern.
func (f *FaultyFS) AddRule(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = append(f.rules, rule{pattern: pattern, fault: fault})
}

// SetDefault sets the fault applied to paths no rule matches.
func (f *FaultyFS) SetDefault(fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.def = fault
}

// Reset drops all rules and the default fault.
func (f *FaultyFS) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = nil
	f.def = Fault{}
}

// Written returns the total bytes written through this FS.
func (f *FaultyFS) Written() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.written
}

// Renames returns the number of successful renames.
func (f *FaultyFS) Renames() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.renames
}

func (f *FaultyFS) match(name string) Fault {
	f.mu.Lock()
	defer f.mu.Unlock()

	base := filepath.Base(name)
	fault := f.def
	for _, r := range f.rules {
		if ok, _ := filepath.Match(r.pattern, base); ok {
			fault = r.fault
		}
	}
	return fault
}

func (f *FaultyFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	fault := f.match(name)
	if fault.FailOnOpen {
		return nil, &os.PathError{Op: "open", Path: name, Err: fault.err()}
	}

	file, err := f.FS.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return &faultyFile{File: file, fs: f, fault: fault}, nil
}

func (f *FaultyFS) Remove(name string) error {
	if fault := f.match(name); fault.FailOnRemove {
		return &os.PathError{Op: "remove", Path: name, Err: fault.err()}
	}
	return f.FS.Remove(name)
}

func (f *FaultyFS) Rename(oldpath, newpath string) error {
	if fault := f.match(oldpath); fault.FailOnRename {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fault.err()}
	}
	if err := f.FS.Rename(oldpath, newpath); err != nil {
		return err
	}
	f.mu.Lock()
	f.renames++
	f.mu.Unlock()
	return nil
}

func (f *FaultyFS) Stat(name string) (os.FileInfo, error) {
	return f.FS.Stat(name)
}

func (f *FaultyFS) ReadDir(name string) ([]os.DirEntry, error) {
	return f.FS.ReadDir(name)
}

type faultyFile struct {
	File
	fs      *FaultyFS
	fault   Fault
	written int64
	read    int64
}

func (ff *faultyFile) Write(p []byte) (int, error) {
	if ff.fault.FailOnWrite {
		return 0, ff.fault.err()
	}
	if ff.fault.FailAfterBytes > 0 && ff.written+int64(len(p)) > ff.fault.FailAfterBytes {
		// Write what fits, then fail, like a full disk would.
		room := ff.fault.FailAfterBytes - ff.written
		n, _ := ff.write(p[:room])
		return n, ff.fault.err()
	}
	if ff.fault.MaxWriteChunk > 0 && len(p) > ff.fault.MaxWriteChunk {
		return ff.write(p[:ff.fault.MaxWriteChunk])
	}
	return ff.write(p)
}

func (ff *faultyFile) write(p []byte) (int, error) {
	n, err := ff.File.Write(p)
	if n > 0 {
		ff.written += int64(n)
		ff.fs.mu.Lock()
		ff.fs.written += int64(n)
		ff.fs.mu.Unlock()
	}
	return n, err
}

func (ff *faultyFile) Read(p []byte) (int, error) {
	if ff.fault.ReadLimit > 0 {
		room := ff.fault.ReadLimit - ff.read
		if room <= 0 {
			return 0, io.EOF
		}
		if int64(len(p)) > room {
			p = p[:room]
		}
	}
	n, err := ff.File.Read(p)
	ff.read += int64(n)
	return n, err
}

func (ff *faultyFile) Sync() error {
	if ff.fault.FailOnSync {
		return ff.fault.err()
	}
	return ff.File.Sync()
}

func (ff *faultyFile) Chmod(mode os.FileMode) error {
	if ff.fault.FailOnChmod {
		return ff.fault.err()
	}
	return ff.File.Chmod(mode)
}

func (ff *faultyFile) Stat() (os.FileInfo, error) {
	if ff.fault.FailOnStat {
		return nil, ff.fault.err()
	}
	return ff.File.Stat()
}

func (ff *faultyFile) Close() error {
	if ff.fault.FailOnClose {
		_ = ff.File.Close()
		return ff.fault.err()
	}
	return ff.File.Close()
}
