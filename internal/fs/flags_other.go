//go:build !unix

package fs

// NoFollow is a no-op where the platform has no O_NOFOLLOW.
const NoFollow = 0
