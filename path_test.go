package nvstore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		id       uint32
		record   string
		temp     bool
		expected string
	}{
		{"v1 permanent", Config{Version: Version1}, 0, "permall", false, "/tmp/teststate/tpm-00.permall"},
		{"v2 permanent", Config{Version: Version2}, 0, "permall", false, "/tmp/teststate/tpm2-00.permall"},
		{"v1 temp", Config{Version: Version1}, 0, "permall", true, "/tmp/teststate/TMP-00.permall"},
		{"v2 temp", Config{Version: Version2}, 0, "volatilestate", true, "/tmp/teststate/TMP2-00.volatilestate"},
		{"default version", Config{}, 1, "savestate", false, "/tmp/teststate/tpm-01.savestate"},
		{"lowercase hex", Config{Version: Version2}, 0xab, "x", false, "/tmp/teststate/tpm2-ab.x"},
		{"wide id", Config{Version: Version2}, 0xdeadbeef, "x", false, "/tmp/teststate/tpm2-deadbeef.x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ResolvePath(tt.cfg, "/tmp/teststate", tt.id, tt.record, tt.temp)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestResolvePath_KeepsRootVerbatim(t *testing.T) {
	p, err := ResolvePath(Config{}, "/srv/link/..", 0, "permall", false)
	require.NoError(t, err)
	assert.Equal(t, "/srv/link/../tpm-00.permall", p)

	p, err = ResolvePath(Config{}, "state/./tpm", 2, "permall", true)
	require.NoError(t, err)
	assert.Equal(t, "state/./tpm/TMP-02.permall", p)
}

func TestResolvePath_InvalidName(t *testing.T) {
	for _, name := range []string{"", "a/b", "..", ".", "nul\x00"} {
		_, err := ResolvePath(Config{}, "/tmp", 0, name, false)
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}
}

func TestFormatPath_Capacity(t *testing.T) {
	// "/r/tpm-00.n" is 11 bytes and needs a 12 byte buffer.
	p, err := formatPath(Version1, "/r", 0, "n", false, 12)
	require.NoError(t, err)
	assert.Equal(t, "/r/tpm-00.n", p)

	_, err = formatPath(Version1, "/r", 0, "n", false, 11)
	assert.ErrorIs(t, err, ErrPathTooLong)

	long := strings.Repeat("n", MaxPathLen)
	_, err = ResolvePath(Config{}, "/tmp", 0, long, false)
	assert.ErrorIs(t, err, ErrPathTooLong)
}

func TestParseName(t *testing.T) {
	v1 := Config{Version: Version1}
	v2 := Config{Version: Version2}

	key, temp, ok := ParseName(v1, "tpm-00.permall")
	require.True(t, ok)
	assert.False(t, temp)
	assert.Equal(t, Key{InstanceID: 0, Name: "permall"}, key)

	key, temp, ok = ParseName(v2, "TMP2-1f.volatilestate")
	require.True(t, ok)
	assert.True(t, temp)
	assert.Equal(t, Key{InstanceID: 0x1f, Name: "volatilestate"}, key)

	key, _, ok = ParseName(v2, "tpm2-0a.name.with.dots")
	require.True(t, ok)
	assert.Equal(t, Key{InstanceID: 10, Name: "name.with.dots"}, key)

	for _, base := range []string{
		"tpm2-00.permall", // other version
		".lock",
		"tpm-0.permall",     // not two digits
		"tpm-0A.permall",    // uppercase
		"tpm-000.permall",   // leading zero
		"tpm-zz.permall",    // not hex
		"tpm-00",            // no name
		"tpm-00.",           // empty name
		"tpm-100000000.big", // overflows uint32
	} {
		_, _, ok := ParseName(v1, base)
		assert.False(t, ok, "base %q", base)
	}
}

func TestParseName_RoundTrip(t *testing.T) {
	for _, v := range []Version{Version1, Version2} {
		cfg := Config{Version: v}
		for _, id := range []uint32{0, 1, 0x0f, 0x10, 0xff, 0x100, 0xffffffff} {
			for _, temp := range []bool{false, true} {
				p, err := ResolvePath(cfg, "/root", id, "rec", temp)
				require.NoError(t, err)
				key, gotTemp, ok := ParseName(cfg, p[len("/root/"):])
				require.True(t, ok, p)
				assert.Equal(t, temp, gotTemp)
				assert.Equal(t, Key{InstanceID: id, Name: "rec"}, key)
			}
		}
	}
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "00.permall", Key{Name: "permall"}.String())
	assert.Equal(t, "1ab.x", Key{InstanceID: 0x1ab, Name: "x"}.String())
}
