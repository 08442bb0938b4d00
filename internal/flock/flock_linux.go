//go:build linux

package flock

import (
	"errors"
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
	err := unix.FcntlFlock(uintptr(fd), unix.F_OFD_SETLK, &lk)
	if errors.Is(err, unix.EINVAL) {
		// Kernels before 3.15 have no OFD locks.
		err = unix.FcntlFlock(uintptr(fd), unix.F_SETLK, &lk)
	}
	return wrapLockErr(path, err)
}
