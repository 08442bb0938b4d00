//go:build !unix

package flock

import "os"

func openFile(string, os.FileMode) (int, error) {
	return -1, ErrUnsupported
}

func lockFile(int, string) error {
	return ErrUnsupported
}

func closeFile(int) error {
	return nil
}
