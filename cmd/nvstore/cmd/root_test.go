//go:build unix

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hupe1980/nvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps the host environment and config files out of a test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, key := range []string{"TPM_PATH", "NVSTORE_DIR", "NVSTORE_TPM_VERSION", "NVSTORE_MODE", "NVSTORE_LOG_LEVEL", "NVSTORE_LOG_FORMAT"} {
		t.Setenv(key, "")
	}
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestPutGet(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	_, stderr, err := run(t, "state bytes", "--dir", dir, "put", "permall")
	require.NoError(t, err)
	assert.Contains(t, stderr, "stored 11 bytes")
	assert.FileExists(t, filepath.Join(dir, "tpm-00.permall"))

	stdout, _, err := run(t, "", "--dir", dir, "get", "permall")
	require.NoError(t, err)
	assert.Equal(t, "state bytes", stdout)
}

func TestPutGet_Files(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	scratch := t.TempDir()

	in := filepath.Join(scratch, "in")
	out := filepath.Join(scratch, "out")
	require.NoError(t, os.WriteFile(in, []byte{0x00, 0x01, 0xff}, 0600))

	_, _, err := run(t, "", "--dir", dir, "put", "-i", "3", "-f", in, "volatilestate")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "tpm-03.volatilestate"))

	_, _, err = run(t, "", "--dir", dir, "get", "--instance", "3", "-o", out, "volatilestate")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x01, 0xff}, data)
}

func TestGet_NoRecord(t *testing.T) {
	isolate(t)

	stdout, stderr, err := run(t, "", "--dir", t.TempDir(), "get", "permall")
	require.Error(t, err)
	assert.ErrorIs(t, err, nvstore.ErrRetry)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "no record 00.permall")
}

func TestList(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	stdout, _, err := run(t, "", "--dir", dir, "ls")
	require.NoError(t, err)
	assert.Equal(t, "(no records)\n", stdout)

	for _, args := range [][]string{
		{"put", "-i", "1", "permall"},
		{"put", "savestate"},
		{"put", "permall"},
	} {
		_, _, err := run(t, "x", append([]string{"--dir", dir}, args...)...)
		require.NoError(t, err)
	}

	stdout, _, err = run(t, "", "--dir", dir, "ls")
	require.NoError(t, err)
	assert.Equal(t, "0\tpermall\n0\tsavestate\n1\tpermall\n", stdout)
}

func TestRemove(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	_, _, err := run(t, "", "--dir", dir, "rm", "permall")
	require.NoError(t, err)

	_, _, err = run(t, "", "--dir", dir, "rm", "--must-exist", "permall")
	assert.ErrorIs(t, err, nvstore.ErrDeleteFailed)

	_, _, err = run(t, "x", "--dir", dir, "put", "permall")
	require.NoError(t, err)
	_, _, err = run(t, "", "--dir", dir, "rm", "--must-exist", "permall")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "tpm-00.permall"))
}

func TestCheck(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	stdout, _, err := run(t, "", "--dir", dir, "--tpm-version", "2", "check")
	require.NoError(t, err)
	assert.Equal(t, dir+": ok (version 2)\n", stdout)
	assert.FileExists(t, filepath.Join(dir, nvstore.LockFileName))
}

func TestVersionAndMode(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	_, _, err := run(t, "x", "--dir", dir, "--tpm-version", "2", "--mode", "0600", "put", "permall")
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "tpm2-00.permall"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"version", []string{"--tpm-version", "3"}},
		{"mode", []string{"--mode", "rw-r-----"}},
		{"mode bits", []string{"--mode", "17777"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			args := append([]string{"--dir", t.TempDir()}, tt.args...)
			_, _, err := run(t, "", append(args, "check")...)
			assert.ErrorIs(t, err, nvstore.ErrInvalidConfig)
		})
	}

	t.Run("log format", func(t *testing.T) {
		isolate(t)
		_, _, err := run(t, "", "--dir", t.TempDir(), "--log-format", "xml", "check")
		assert.ErrorContains(t, err, "unknown log format")
	})
}

func TestNoDirectory(t *testing.T) {
	isolate(t)

	_, _, err := run(t, "", "check")
	assert.ErrorContains(t, err, "no state directory")
}

func TestEnvironment(t *testing.T) {
	isolate(t)
	fallback := t.TempDir()
	t.Setenv("TPM_PATH", fallback)

	_, _, err := run(t, "x", "put", "permall")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(fallback, "tpm-00.permall"))

	preferred := t.TempDir()
	t.Setenv("NVSTORE_DIR", preferred)
	t.Setenv("NVSTORE_TPM_VERSION", "2")

	_, _, err = run(t, "x", "put", "permall")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(preferred, "tpm2-00.permall"))
}

func TestConfigFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	cfgDir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "nvstore")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	cfg := "dir: " + dir + "\ntpm_version: \"2\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(cfg), 0600))

	_, _, err := run(t, "x", "put", "permall")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "tpm2-00.permall"))

	t.Run("explicit file must exist", func(t *testing.T) {
		_, _, err := run(t, "", "--config", filepath.Join(dir, "missing.yaml"), "check")
		assert.ErrorContains(t, err, "read config")
	})
}

func TestDebugLogging(t *testing.T) {
	isolate(t)

	_, stderr, err := run(t, "x", "--dir", t.TempDir(), "--log-level", "debug", "--log-format", "json", "put", "permall")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"level":"DEBUG"`)
}
