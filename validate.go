package nvstore

import "fmt"

// Validate checks that root can hold record files: it must be set, and the
// root plus a record file name must fit in MaxPathLen. It does not touch the
// filesystem.
func Validate(root string) error {
	if root == "" {
		return ErrMissingRoot
	}
	if len(root)+MaxFileNameLen > MaxPathLen {
		return fmt.Errorf("%w: state directory %q", ErrPathTooLong, root)
	}
	return nil
}
