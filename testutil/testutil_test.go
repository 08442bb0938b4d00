package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlob(t *testing.T) {
	rng := NewRNG(4711)

	b := rng.Blob(64)
	assert.Len(t, b, 64)
	assert.Empty(t, rng.Blob(0))
}

func TestBlobs(t *testing.T) {
	rng := NewRNG(4711)

	blobs := rng.Blobs(32, 16)
	assert.Len(t, blobs, 32)
	for _, b := range blobs {
		assert.LessOrEqual(t, len(b), 16)
	}
}

func TestName(t *testing.T) {
	rng := NewRNG(4711)

	for i := 0; i < 100; i++ {
		name := rng.Name(1 + i%12)
		assert.NotEmpty(t, name)
		assert.False(t, strings.ContainsAny(name, "/\x00."))
	}
	assert.Len(t, rng.Name(0), 1)
}

func TestReset(t *testing.T) {
	rng := NewRNG(42)
	first := rng.Blob(16)
	rng.Reset()
	assert.Equal(t, first, rng.Blob(16))
	assert.Equal(t, int64(42), rng.Seed())
}

func TestUint32(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)

	seen := make(map[uint32]struct{})
	for i := 0; i < 16; i++ {
		v := a.Uint32()
		assert.Equal(t, v, b.Uint32())
		seen[v] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}
