// Package version implements the four-field plugin version tuple used
// throughout the freight ABI: compatibility floors, declarations, and
// interplugin requests all compare versions with it.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// ErrMalformed is returned when a version string cannot be parsed.
var ErrMalformed = errors.New("version: malformed version string")

// Version is an immutable major.minor.release.build tuple.
//
// Ordering is lexicographic: major is compared first, then minor,
// release, and build. Two versions are equal only when all four
// fields match.
type Version struct {
	Major   uint32
	Minor   uint32
	Release uint32
	Build   uint32
}

// New builds a Version from its four fields.
func New(major, minor, release, build uint32) Version {
	return Version{Major: major, Minor: minor, Release: release, Build: build}
}

// Compare returns -1 if a is older than b, 0 if they are exactly
// equal, and 1 if a is newer than b.
func Compare(a, b Version) int {
	for _, pair := range [4][2]uint32{
		{a.Major, b.Major},
		{a.Minor, b.Minor},
		{a.Release, b.Release},
		{a.Build, b.Build},
	} {
		if pair[0] > pair[1] {
			return 1
		}
		if pair[0] < pair[1] {
			return -1
		}
	}
	return 0
}

// Less reports whether v is strictly older than other.
func (v Version) Less(other Version) bool {
	return Compare(v, other) < 0
}

// Equal reports whether all four fields match.
func (v Version) Equal(other Version) bool {
	return Compare(v, other) == 0
}

// AtLeast reports whether v satisfies floor, i.e. v is floor or newer.
// Compatibility floors in declarations and interplugin requests are
// checked with this.
func (v Version) AtLeast(floor Version) bool {
	return Compare(v, floor) >= 0
}

// IsZero reports whether v is the zero version 0.0.0.0.
func (v Version) IsZero() bool {
	return v == Version{}
}

// String renders the version as "major.minor.release.build".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Release, v.Build)
}

// Parse reads a version from its String form. All four fields are
// required; anything else is ErrMalformed.
func Parse(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return Version{}, fmt.Errorf("%w: %q: want 4 fields, got %d", ErrMalformed, s, len(parts))
	}
	var fields [4]uint32
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q: field %d: %v", ErrMalformed, s, i, err)
		}
		field, err := safecast.Conv[uint32](n)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q: field %d: %v", ErrMalformed, s, i, err)
		}
		fields[i] = field
	}
	return Version{Major: fields[0], Minor: fields[1], Release: fields[2], Build: fields[3]}, nil
}
