//go:build unix

package fs

import "golang.org/x/sys/unix"

// NoFollow makes OpenFile fail when the final path component is a symbolic link.
const NoFollow = unix.O_NOFOLLOW
