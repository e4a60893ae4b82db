// SPDX-License-Identifier: MPL-2.0

package features

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/version"
)

// Key kinds, one per tag family.
const (
	KeyUnknown KeyKind = iota
	KeyValidVersions
	KeyFileFormat
	KeyFileTimestamp
	KeyList
	KeyDefaultClassification
	KeyReportGroup
	KeySupported
	KeyRule
	// KeyWildcard is never read from a file; it marks LIST patterns.
	KeyWildcard
)

const (
	tagValidVersions  = "VALID_VERSIONS"
	tagFileFormat     = "FILE_FORMAT"
	tagFileTimestamp  = "FILE_TIMESTAMP"
	tagList           = "LIST"
	tagClassification = "DEFAULT_CLASSIFICATION"
	tagReportGroup    = "REPORT_GROUP"
	tagSupported      = "SUPPORTED"
	tagRule           = "RULE"
	tagWildcard       = "WILDCARD"

	keySep    = "-"
	argPrefix = "/ARG"
)

var (
	// ErrUnknownKey is returned for keys outside the tag vocabulary.
	ErrUnknownKey = errors.New("unknown key")
	// ErrInvalidArgSlot is returned for a malformed /ARG<n> designator.
	ErrInvalidArgSlot = errors.New("invalid argument designator")
	// ErrEmptyGroup is returned for "REPORT_GROUP-" without a group name.
	ErrEmptyGroup = errors.New("empty report group")
)

type (
	// KeyKind identifies which tag family a key belongs to.
	KeyKind int

	// Key is a parsed section key.
	Key struct {
		Kind KeyKind
		// Raw is the key as written in the file.
		Raw string
		// Status is set for DEFAULT_CLASSIFICATION-<status>.
		Status Status
		// Group is set for REPORT_GROUP-<group> and keeps the original casing.
		Group string
		// Range is set for SUPPORTED keys.
		Range version.Range
		// ArgSlot is the 1-based argument a SUPPORTED key validates; zero when
		// the key applies to the item itself.
		ArgSlot int
	}

	// KeyError describes why a key could not be parsed.
	KeyError struct {
		Key string
		Err error
	}
)

// Error implements the error interface.
func (e *KeyError) Error() string {
	return fmt.Sprintf("key %q: %v", e.Key, e.Err)
}

// Unwrap returns the underlying cause.
func (e *KeyError) Unwrap() error { return e.Err }

// String returns the tag name of the kind.
func (k KeyKind) String() string {
	switch k {
	case KeyValidVersions:
		return tagValidVersions
	case KeyFileFormat:
		return tagFileFormat
	case KeyFileTimestamp:
		return tagFileTimestamp
	case KeyList:
		return tagList
	case KeyDefaultClassification:
		return tagClassification
	case KeyReportGroup:
		return tagReportGroup
	case KeySupported:
		return tagSupported
	case KeyRule:
		return tagRule
	case KeyWildcard:
		return tagWildcard
	default:
		return "UNKNOWN"
	}
}

// ParseKey classifies raw into the tag vocabulary. Tags match
// case-insensitively. An error wrapping ErrUnknownKey means the key belongs
// to no family at all; other errors mean a known family with a bad suffix.
func ParseKey(raw string) (Key, error) {
	raw = strings.TrimSpace(raw)
	upper := strings.ToUpper(raw)
	k := Key{Raw: raw}

	switch upper {
	case tagValidVersions:
		k.Kind = KeyValidVersions
		return k, nil
	case tagFileFormat:
		k.Kind = KeyFileFormat
		return k, nil
	case tagFileTimestamp:
		k.Kind = KeyFileTimestamp
		return k, nil
	case tagList:
		k.Kind = KeyList
		return k, nil
	case tagRule:
		k.Kind = KeyRule
		return k, nil
	case tagClassification:
		k.Kind = KeyDefaultClassification
		return k, nil
	case tagReportGroup:
		k.Kind = KeyReportGroup
		return k, nil
	}

	switch {
	case strings.HasPrefix(upper, tagClassification+keySep):
		k.Kind = KeyDefaultClassification
		st, err := ParseStatus(raw[len(tagClassification+keySep):])
		if err != nil {
			return k, &KeyError{Key: raw, Err: err}
		}
		k.Status = st
		return k, nil

	case strings.HasPrefix(upper, tagReportGroup+keySep):
		k.Kind = KeyReportGroup
		k.Group = strings.TrimSpace(raw[len(tagReportGroup+keySep):])
		if k.Group == "" {
			return k, &KeyError{Key: raw, Err: ErrEmptyGroup}
		}
		return k, nil

	case strings.HasPrefix(upper, tagSupported+keySep):
		k.Kind = KeySupported
		spec := raw[len(tagSupported+keySep):]
		if idx := strings.Index(spec, "/"); idx >= 0 {
			slot, err := parseArgSlot(spec[idx:])
			if err != nil {
				return k, &KeyError{Key: raw, Err: err}
			}
			k.ArgSlot = slot
			spec = spec[:idx]
		}
		r, err := version.ParseRange(spec)
		if err != nil {
			return k, &KeyError{Key: raw, Err: err}
		}
		k.Range = r
		return k, nil
	}

	return k, &KeyError{Key: raw, Err: ErrUnknownKey}
}

func parseArgSlot(s string) (int, error) {
	if len(s) <= len(argPrefix) || !strings.EqualFold(s[:len(argPrefix)], argPrefix) {
		return 0, ErrInvalidArgSlot
	}
	n, err := strconv.Atoi(s[len(argPrefix):])
	if err != nil || n < 1 {
		return 0, ErrInvalidArgSlot
	}
	return n, nil
}

// IsSpecific reports whether the key names a status or group in its suffix.
func (k Key) IsSpecific() bool {
	switch k.Kind {
	case KeyDefaultClassification:
		return k.Status != ""
	case KeyReportGroup:
		return k.Group != ""
	default:
		return false
	}
}

// Bare returns the unsuffixed form of a classification or group key.
func (k Key) Bare() Key {
	return Key{Kind: k.Kind, Raw: k.Kind.String()}
}

// ID returns the normalized identity of the key. Two keys with the same ID
// address the same slot in a section.
func (k Key) ID() string {
	switch k.Kind {
	case KeyDefaultClassification:
		if k.Status != "" {
			return tagClassification + keySep + strings.ToUpper(string(k.Status))
		}
	case KeyReportGroup:
		if k.Group != "" {
			return tagReportGroup + keySep + strings.ToUpper(k.Group)
		}
	case KeySupported:
		id := tagSupported + keySep + k.Range.String()
		if k.ArgSlot > 0 {
			id += argPrefix + strconv.Itoa(k.ArgSlot)
		}
		return id
	case KeyUnknown:
		return strings.ToUpper(k.Raw)
	}
	return k.Kind.String()
}
