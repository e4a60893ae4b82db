// SPDX-License-Identifier: MPL-2.0

package version

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	// WildcardSegment is the final segment of a wildcard bound ("2.*").
	WildcardSegment = "*"

	// Baseline is the oldest product version this tool knows how to assess.
	// A feature file whose catalog lacks it cannot be used.
	Baseline Version = "1.0.0"

	segmentWidth    = 5
	wildcardOrdinal = "99999"
)

var (
	// ErrInvalidVersion is the sentinel error wrapped by InvalidVersionError.
	ErrInvalidVersion = errors.New("invalid version")

	concretePattern = regexp.MustCompile(`^\d+(\.\d+)*$`)
	wildcardPattern = regexp.MustCompile(`^(\d+\.)*\*$`)
)

type (
	// Version is a dotted product version, optionally ending in a wildcard segment.
	Version string

	// InvalidVersionError is returned when a Version does not match the
	// dotted-numeric grammar. It wraps ErrInvalidVersion for errors.Is().
	InvalidVersionError struct {
		Value Version
	}
)

// Error implements the error interface.
func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid version %q", e.Value)
}

// Unwrap returns ErrInvalidVersion for errors.Is() compatibility.
func (e *InvalidVersionError) Unwrap() error { return ErrInvalidVersion }

// String returns the string representation of the Version.
func (v Version) String() string { return string(v) }

// IsConcrete reports whether v matches \d+(\.\d+)*.
func (v Version) IsConcrete() bool {
	return concretePattern.MatchString(string(v))
}

// IsWildcard reports whether v is a wildcard bound such as "2.*".
func (v Version) IsWildcard() bool {
	return wildcardPattern.MatchString(string(v))
}

// IsValid returns whether v is a syntactically valid concrete version.
// Wildcard bounds are not valid here; use IsWildcard for those.
func (v Version) IsValid() (bool, []error) {
	if !v.IsConcrete() {
		return false, []error{&InvalidVersionError{Value: v}}
	}
	return true, nil
}

// Prefix returns the part of a wildcard bound before the wildcard segment,
// including the trailing dot ("2.3.*" -> "2.3."). For a concrete version it
// returns the version unchanged.
func (v Version) Prefix() string {
	return strings.TrimSuffix(string(v), WildcardSegment)
}

// Normalize returns the comparable form of v: every segment zero-padded to
// five digits and the wildcard segment replaced by 99999.
func (v Version) Normalize() string {
	if v == "" {
		return ""
	}
	segments := strings.Split(string(v), ".")
	for i, seg := range segments {
		if seg == WildcardSegment {
			segments[i] = wildcardOrdinal
			continue
		}
		if len(seg) < segmentWidth {
			segments[i] = strings.Repeat("0", segmentWidth-len(seg)) + seg
		}
	}
	return strings.Join(segments, ".")
}

// Compare orders two versions by their normalized form. It returns -1, 0 or +1.
// Comparing two empty versions is a programming error and panics.
func Compare(a, b Version) int {
	if a == "" && b == "" {
		panic("version: Compare called with two empty versions")
	}
	return strings.Compare(a.Normalize(), b.Normalize())
}

// Lower returns the lower of a and b. An empty argument yields the other one.
func Lower(a, b Version) Version {
	switch {
	case a == "" && b == "":
		panic("version: Lower called with two empty versions")
	case a == "":
		return b
	case b == "":
		return a
	}
	if Compare(a, b) <= 0 {
		return a
	}
	return b
}

// Higher returns the higher of a and b. An empty argument yields the other one.
func Higher(a, b Version) Version {
	switch {
	case a == "" && b == "":
		panic("version: Higher called with two empty versions")
	case a == "":
		return b
	case b == "":
		return a
	}
	if Compare(a, b) >= 0 {
		return a
	}
	return b
}

// IsLower reports whether a sorts strictly before b.
func IsLower(a, b Version) bool { return Compare(a, b) < 0 }

// IsLowerOrEqual reports whether a sorts before or equal to b.
func IsLowerOrEqual(a, b Version) bool { return Compare(a, b) <= 0 }

// IsHigher reports whether a sorts strictly after b.
func IsHigher(a, b Version) bool { return Compare(a, b) > 0 }

// IsEqual reports whether a and b normalize to the same value.
func IsEqual(a, b Version) bool { return Compare(a, b) == 0 }
