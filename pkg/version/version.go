// Package version provides MCCS version parsing and comparison.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is an MCCS "major.minor" version, as reported by VCP 0xDF or the
// mccs_ver capability group.
type Version struct {
	Major uint8
	Minor uint8
}

// Known MCCS revisions.
var (
	V20  = Version{Major: 2, Minor: 0}
	V21  = Version{Major: 2, Minor: 1}
	V22  = Version{Major: 2, Minor: 2}
	V30  = Version{Major: 3, Minor: 0}
	V220 = Version{Major: 2, Minor: 20}
)

// Parse parses a "major.minor" version string. Surrounding whitespace is
// ignored because monitors pad capability values inconsistently.
func Parse(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 2 {
		return Version{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 8)
	if err != nil || parts[0] == "" {
		return Version{}, fmt.Errorf("invalid version %q: bad major component", s)
	}

	minor, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil || parts[1] == "" {
		return Version{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	return Version{Major: uint8(major), Minor: uint8(minor)}, nil
}

// FromVCP builds a version from the SH and SL bytes of a VCP 0xDF reply.
func FromVCP(sh, sl uint8) Version {
	return Version{Major: sh, Minor: sl}
}

// IsZero reports whether the version is unset.
func (v Version) IsZero() bool {
	return v.Major == 0 && v.Minor == 0
}

// String returns the version as "major.minor".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compatible returns true if the other version has the same major version.
func (v Version) Compatible(other Version) bool {
	return v.Major == other.Major
}

// AtLeast reports whether v is the same as or newer than other.
func (v Version) AtLeast(other Version) bool {
	if v.Major != other.Major {
		return v.Major > other.Major
	}
	return v.Minor >= other.Minor
}
