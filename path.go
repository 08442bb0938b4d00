package nvstore

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	// MaxPathLen is the largest buffer a rooted record path may occupy,
	// terminator included.
	MaxPathLen = 4096

	// MaxFileNameLen bounds the relative file name appended to the root by the
	// validator. It is a conservative estimate; every resolved path is still
	// checked against MaxPathLen.
	MaxFileNameLen = 20

	// LockFileName is the sentinel file locked by Prepare.
	LockFileName = ".lock"

	permanentPrefix = "tpm"
	tempPrefix      = "TMP"
)

// Key identifies a record.
type Key struct {
	InstanceID uint32
	Name       string
}

// String implements fmt.Stringer.
func (k Key) String() string {
	return fmt.Sprintf("%02x.%s", k.InstanceID, k.Name)
}

// ResolvePath returns the rooted file path of a record. With temp set it
// returns the scratch path a Store writes before renaming.
//
// The permanent form is <root>/tpm<suffix>-<id>.<name>, the temporary form
// <root>/TMP<suffix>-<id>.<name>, where suffix is "" for Version1 and "2" for
// Version2 and id is lowercase hex with at least two digits.
func ResolvePath(cfg Config, root string, instanceID uint32, name string, temp bool) (string, error) {
	return formatPath(cfg.withDefaults().Version, root, instanceID, name, temp, MaxPathLen)
}

// formatPath builds the path and refuses it if it would not fit in capacity
// bytes including a terminator. A truncated path is never returned.
func formatPath(v Version, root string, instanceID uint32, name string, temp bool, capacity int) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	prefix := permanentPrefix
	if temp {
		prefix = tempPrefix
	}
	p := rooted(root, fileName(prefix, v, instanceID, name))
	if len(p) >= capacity {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrPathTooLong, len(p), capacity-1)
	}
	return p, nil
}

// rooted appends base to root verbatim. The root is not cleaned: "a/link/.."
// must name the directory the kernel resolves, not the lexical parent "a".
func rooted(root, base string) string {
	return root + "/" + base
}

func fileName(prefix string, v Version, instanceID uint32, name string) string {
	return fmt.Sprintf("%s%s-%02x.%s", prefix, v.suffix(), instanceID, name)
}

func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if strings.ContainsAny(name, "/\x00") || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// ParseName is the inverse of ResolvePath for a base file name. It reports the
// key, whether the name is a scratch file, and whether base is a record file of
// cfg's version at all.
func ParseName(cfg Config, base string) (key Key, temp bool, ok bool) {
	v := cfg.withDefaults().Version

	var rest string
	switch {
	case strings.HasPrefix(base, permanentPrefix+v.suffix()+"-"):
		rest = base[len(permanentPrefix+v.suffix()+"-"):]
	case strings.HasPrefix(base, tempPrefix+v.suffix()+"-"):
		rest = base[len(tempPrefix+v.suffix()+"-"):]
		temp = true
	default:
		return Key{}, false, false
	}

	hexID, name, found := strings.Cut(rest, ".")
	if !found || len(hexID) < 2 || checkName(name) != nil {
		return Key{}, false, false
	}
	// Canonical ids are lowercase; reject anything ResolvePath would not produce.
	if strings.ToLower(hexID) != hexID || (len(hexID) > 2 && hexID[0] == '0') {
		return Key{}, false, false
	}
	id, err := strconv.ParseUint(hexID, 16, 32)
	if err != nil {
		return Key{}, false, false
	}
	return Key{InstanceID: uint32(id), Name: name}, temp, true
}

func sortKeys(keys []Key) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].InstanceID != keys[j].InstanceID {
			return keys[i].InstanceID < keys[j].InstanceID
		}
		return keys[i].Name < keys[j].Name
	})
}
