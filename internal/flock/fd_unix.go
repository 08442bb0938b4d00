//go:build unix

package flock

import (
	"os"

	"golang.org/x/sys/unix"
)

func openFile(path string, perm os.FileMode) (int, error) {
	for {
		fd, err := unix.Open(path, unix.O_WRONLY|unix.O_CREAT|unix.O_TRUNC|unix.O_NOFOLLOW|unix.O_CLOEXEC, uint32(perm.Perm()))
		if err == unix.EINTR {
			continue
		}
		return fd, err
	}
}

func closeFile(fd int) error {
	return unix.Close(fd)
}
