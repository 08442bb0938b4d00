package nvstore

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/hupe1980/nvstore/internal/fs"
)

// files implements the record operations on a validated, locked root. It
// returns structured errors and never logs.
type files struct {
	fs   fs.FileSystem
	root string
	cfg  Config
}

func (f files) path(instanceID uint32, name string, temp bool) (string, error) {
	return formatPath(f.cfg.Version, f.root, instanceID, name, temp, MaxPathLen)
}

// load reads the whole record. A missing record yields ErrRetry.
func (f files) load(instanceID uint32, name string) (data []byte, err error) {
	path, err := f.path(instanceID, name, false)
	if err != nil {
		return nil, wrapResolve("load", f.root, err)
	}

	file, err := f.fs.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, opError("load", path, ErrRetry, err)
		}
		return nil, opError("load", path, ErrReadOpenFailed, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			data = nil
			err = opError("load", path, ErrCloseFailed, cerr)
		}
	}()

	// Repairs records created under a different umask.
	if err := file.Chmod(f.cfg.Mode); err != nil {
		return nil, opError("load", path, ErrPermissionSetFailed, err)
	}

	info, err := file.Stat()
	if err != nil {
		return nil, opError("load", path, ErrStatFailed, err)
	}
	size := info.Size()
	if size < 0 || size > math.MaxUint32 {
		return nil, opError("load", path, ErrStatFailed, fmt.Errorf("size %d out of range", size))
	}
	if size == 0 {
		return []byte{}, nil
	}

	buf := make([]byte, size)
	if n, err := io.ReadFull(file, buf); err != nil {
		return nil, opError("load", path, ErrShortRead, fmt.Errorf("read %d of %d bytes: %w", n, size, err))
	}
	return buf, nil
}

// store replaces the record with data: scratch file, fsync, rename, then
// fsync of the directory so the rename itself is durable.
func (f files) store(instanceID uint32, name string, data []byte) (err error) {
	path, err := f.path(instanceID, name, false)
	if err != nil {
		return wrapResolve("store", f.root, err)
	}
	tmp, err := f.path(instanceID, name, true)
	if err != nil {
		return wrapResolve("store", f.root, err)
	}

	file, err := f.fs.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC|fs.NoFollow, f.cfg.Mode)
	if err != nil {
		return opError("store", tmp, ErrCreateFailed, err)
	}

	renamed := false
	defer func() {
		if err != nil && !renamed {
			_ = f.fs.Remove(tmp)
		}
	}()

	if err := writeFull(file, data); err != nil {
		_ = file.Close()
		return opError("store", tmp, ErrShortWrite, err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return opError("store", tmp, ErrSyncFailed, err)
	}
	if err := file.Close(); err != nil {
		return opError("store", tmp, ErrCloseFailed, err)
	}

	if err := f.fs.Rename(tmp, path); err != nil {
		return opError("store", path, ErrRenameFailed, err)
	}
	renamed = true

	return f.syncDir()
}

func (f files) syncDir() error {
	d, err := f.fs.OpenFile(f.root, os.O_RDONLY, 0)
	if err != nil {
		return opError("store", f.root, ErrDirSyncFailed, err)
	}
	if err := d.Sync(); err != nil {
		_ = d.Close()
		return opError("store", f.root, ErrDirSyncFailed, err)
	}
	if err := d.Close(); err != nil {
		return opError("store", f.root, ErrDirCloseFailed, err)
	}
	return nil
}

// writeFull writes all of p. A single Write may consume only part of it.
func writeFull(w io.Writer, p []byte) error {
	written := 0
	for written < len(p) {
		n, err := w.Write(p[written:])
		written += n
		if err != nil {
			return fmt.Errorf("wrote %d of %d bytes: %w", written, len(p), err)
		}
		if n == 0 {
			return fmt.Errorf("wrote %d of %d bytes: %w", written, len(p), io.ErrShortWrite)
		}
	}
	return nil
}

func (f files) remove(instanceID uint32, name string, mustExist bool) error {
	path, err := f.path(instanceID, name, false)
	if err != nil {
		return wrapResolve("delete", f.root, err)
	}
	err = f.fs.Remove(path)
	if err == nil || (!mustExist && errors.Is(err, os.ErrNotExist)) {
		return nil
	}
	return opError("delete", path, ErrDeleteFailed, err)
}

func (f files) keys() ([]Key, error) {
	entries, err := f.fs.ReadDir(f.root)
	if err != nil {
		return nil, opError("list", f.root, ErrListFailed, err)
	}
	keys := make([]Key, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		key, temp, ok := ParseName(f.cfg, e.Name())
		if !ok || temp {
			continue
		}
		keys = append(keys, key)
	}
	sortKeys(keys)
	return keys, nil
}
