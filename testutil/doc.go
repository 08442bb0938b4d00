// Package testutil provides testing utilities for nvstore.
//
// This package is intended for use in tests only. It provides a thread-safe,
// seeded random source for record blobs and names so property-style tests are
// reproducible.
//
//	rng := testutil.NewRNG(seed)
//	blob := rng.Blob(4096)        // random bytes
//	blobs := rng.Blobs(16, 1024)  // 16 blobs of length [0, 1024]
//	name := rng.Name(8)           // valid record name
package testutil
