// SPDX-License-Identifier: MPL-2.0

package cfgdoc

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingBracket is returned when a section header has no closing ']'.
	ErrMissingBracket = errors.New("section header is missing ']'")
	// ErrEmptySectionName is returned for a "[]" header.
	ErrEmptySectionName = errors.New("section name is empty")
	// ErrDuplicateSection is returned when a section name appears twice.
	ErrDuplicateSection = errors.New("duplicate section")
	// ErrNoSection is returned for a key/value line before any section header.
	ErrNoSection = errors.New("key/value line outside of a section")
	// ErrMissingEquals is returned when a line is neither a header nor key=value.
	ErrMissingEquals = errors.New("expected key=value")
	// ErrEmptyKey is returned when the text before '=' is blank.
	ErrEmptyKey = errors.New("key is empty")
	// ErrEmptyValue is returned when the value holds no list elements.
	ErrEmptyValue = errors.New("value is empty")

	// ErrChecksumMissing is returned when a trusted file has no checksum line.
	ErrChecksumMissing = errors.New("checksum missing")
	// ErrChecksumMalformed is returned when the stored checksum is not 8 characters.
	ErrChecksumMalformed = errors.New("checksum malformed")
	// ErrChecksumMismatch is returned when the stored and computed checksums differ.
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

type (
	// ParseError is a fatal syntax error. Line is 1-based and Text holds the
	// offending line as read.
	ParseError struct {
		File string
		Line int
		Text string
		Err  error
	}

	// ChecksumError reports a failed integrity check of a trusted file.
	// It wraps one of ErrChecksumMissing, ErrChecksumMalformed or ErrChecksumMismatch.
	ChecksumError struct {
		File     string
		Stored   string
		Computed string
		Err      error
	}
)

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: line %d: %v: %q", e.File, e.Line, e.Err, e.Text)
}

// Unwrap returns the underlying syntax error.
func (e *ParseError) Unwrap() error { return e.Err }

// Error implements the error interface.
func (e *ChecksumError) Error() string {
	switch {
	case errors.Is(e.Err, ErrChecksumMissing):
		return fmt.Sprintf("%s: no checksum line found; this file must not be edited by hand", e.File)
	case errors.Is(e.Err, ErrChecksumMalformed):
		return fmt.Sprintf("%s: stored checksum %q is not 8 hex digits; this file must not be edited by hand", e.File, e.Stored)
	default:
		return fmt.Sprintf("%s: checksum %s does not match contents (computed %s); this file must not be edited by hand", e.File, e.Stored, e.Computed)
	}
}

// Unwrap returns the checksum sentinel error.
func (e *ChecksumError) Unwrap() error { return e.Err }
