package testutil

import (
	"math/rand"
	"sync"
)

const nameAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789_-"

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint32 returns a pseudo-random uint32.
func (r *RNG) Uint32() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint32()
}

// Blob returns n random bytes.
func (r *RNG) Blob(n int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := make([]byte, n)
	_, _ = r.rand.Read(b)
	return b
}

// Blobs returns num blobs with lengths in [0, maxLen].
func (r *RNG) Blobs(num, maxLen int) [][]byte {
	out := make([][]byte, num)
	for i := range out {
		out[i] = r.Blob(r.Intn(maxLen + 1))
	}
	return out
}

// Name returns a record name of length n (at least 1) without separators.
func (r *RNG) Name(n int) string {
	if n < 1 {
		n = 1
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	b := make([]byte, n)
	for i := range b {
		b[i] = nameAlphabet[r.rand.Intn(len(nameAlphabet))]
	}
	return string(b)
}
