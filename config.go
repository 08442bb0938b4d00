package nvstore

import (
	"fmt"
	"os"
)

// Version selects the record-format generation, which in turn selects the
// filename suffix of every record.
type Version int

const (
	// Version1 records are named tpm-<id>.<name> (TPM 1.2 state).
	Version1 Version = 1
	// Version2 records are named tpm2-<id>.<name> (TPM 2 state).
	Version2 Version = 2
)

// DefaultMode is the permission mode of record files unless configured otherwise.
const DefaultMode os.FileMode = 0640

// String implements fmt.Stringer.
func (v Version) String() string {
	switch v {
	case Version1:
		return "1"
	case Version2:
		return "2"
	default:
		return fmt.Sprintf("Version(%d)", int(v))
	}
}

func (v Version) suffix() string {
	if v == Version2 {
		return "2"
	}
	return ""
}

// ParseVersion parses "1", "1.2", "2" or "2.0".
func ParseVersion(s string) (Version, error) {
	switch s {
	case "1", "1.2":
		return Version1, nil
	case "2", "2.0":
		return Version2, nil
	}
	return 0, fmt.Errorf("%w: unknown version %q", ErrInvalidConfig, s)
}

// Config holds the settings shared by every operation on a state directory.
// It is fixed when the directory is prepared.
type Config struct {
	// Version selects the filename suffix. Zero means Version1.
	Version Version

	// Mode is the permission mode used to create record files and to
	// normalise existing ones on load. Zero means DefaultMode.
	Mode os.FileMode
}

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return Config{Version: Version1, Mode: DefaultMode}
}

func (c Config) withDefaults() Config {
	if c.Version == 0 {
		c.Version = Version1
	}
	if c.Mode == 0 {
		c.Mode = DefaultMode
	}
	return c
}

// Validate reports whether c can be used.
func (c Config) Validate() error {
	c = c.withDefaults()
	if c.Version != Version1 && c.Version != Version2 {
		return fmt.Errorf("%w: unknown version %d", ErrInvalidConfig, int(c.Version))
	}
	if c.Mode&^os.ModePerm != 0 {
		return fmt.Errorf("%w: mode %#o has bits outside 0777", ErrInvalidConfig, uint32(c.Mode))
	}
	return nil
}
