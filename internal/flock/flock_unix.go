//go:build unix && !linux

package flock

import (
	"io"

	"golang.org/x/sys/unix"
)

func lockFile(fd int, path string) error {
	lk := unix.Flock_t{
		Type:   unix.F_WRLCK,
		Whence: io.SeekStart,
		Start:  0,
		Len:    0, // whole file
	}
	return wrapLockErr(path, unix.FcntlFlock(uintptr(fd), unix.F_SETLK, &lk))
}
