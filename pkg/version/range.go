// SPDX-License-Identifier: MPL-2.0

package version

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRange is the sentinel error wrapped by InvalidRangeError.
var ErrInvalidRange = errors.New("invalid version range")

type (
	// Range is the version interval of a SUPPORTED key. A Range without Max
	// is open-ended ("supported from Min onward"); otherwise both ends are
	// inclusive and Max may be a wildcard bound.
	Range struct {
		Min Version
		Max Version
	}

	// InvalidRangeError is returned when a range spec cannot be parsed or
	// its bounds are out of order.
	InvalidRangeError struct {
		Spec   string
		Reason string
	}
)

// Error implements the error interface.
func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid version range %q: %s", e.Spec, e.Reason)
}

// Unwrap returns ErrInvalidRange for errors.Is() compatibility.
func (e *InvalidRangeError) Unwrap() error { return ErrInvalidRange }

// ParseRange parses "v" or "v1-v2". Only the syntax and ordering are checked
// here; membership in a catalog is the caller's concern.
func ParseRange(spec string) (Range, error) {
	lo, hi, isPair := strings.Cut(spec, "-")
	r := Range{Min: Version(strings.TrimSpace(lo))}
	if !r.Min.IsConcrete() {
		return Range{}, &InvalidRangeError{Spec: spec, Reason: fmt.Sprintf("lower bound %q is not a version", r.Min)}
	}
	if !isPair {
		return r, nil
	}
	r.Max = Version(strings.TrimSpace(hi))
	if !r.Max.IsConcrete() && !r.Max.IsWildcard() {
		return Range{}, &InvalidRangeError{Spec: spec, Reason: fmt.Sprintf("upper bound %q is not a version", r.Max)}
	}
	if IsHigher(r.Min, r.Max) {
		return Range{}, &InvalidRangeError{Spec: spec, Reason: "lower bound exceeds upper bound"}
	}
	return r, nil
}

// IsBounded reports whether the range has an upper bound.
func (r Range) IsBounded() bool { return r.Max != "" }

// Contains reports whether v lies inside the range.
func (r Range) Contains(v Version) bool {
	if IsLower(v, r.Min) {
		return false
	}
	return !r.IsBounded() || IsLowerOrEqual(v, r.Max)
}

// String renders the range in feature-file notation.
func (r Range) String() string {
	if !r.IsBounded() {
		return string(r.Min)
	}
	return string(r.Min) + "-" + string(r.Max)
}

// IsSupported reports whether the requested version falls inside spec.
// A malformed spec never matches.
func IsSupported(requested Version, spec string) bool {
	r, err := ParseRange(spec)
	if err != nil {
		return false
	}
	return r.Contains(requested)
}
