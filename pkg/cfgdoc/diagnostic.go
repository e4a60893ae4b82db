// SPDX-License-Identifier: MPL-2.0

package cfgdoc

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// CodeUnknownKey marks a key outside the tag vocabulary.
	CodeUnknownKey DiagnosticCode = "unknown_key"
	// CodeUnlistedItem marks an item missing from its section's LIST.
	CodeUnlistedItem DiagnosticCode = "unlisted_item"
	// CodeInvalidVersion marks a version unknown to the catalog or malformed.
	CodeInvalidVersion DiagnosticCode = "invalid_version"
	// CodeInvalidRange marks a version range with out-of-order bounds.
	CodeInvalidRange DiagnosticCode = "invalid_range"
	// CodeInvalidArgSlot marks a malformed /ARG<n> designator.
	CodeInvalidArgSlot DiagnosticCode = "invalid_arg_slot"
	// CodeInvalidClassification marks an unknown classification label.
	CodeInvalidClassification DiagnosticCode = "invalid_classification"
	// CodeInvalidGroup marks an unusable report group.
	CodeInvalidGroup DiagnosticCode = "invalid_group"
	// CodeUnknownSection marks an override section absent from the base file.
	CodeUnknownSection DiagnosticCode = "unknown_section"
	// CodeInvalidOverrideKey marks a key that may not appear in the user file.
	CodeInvalidOverrideKey DiagnosticCode = "invalid_override_key"
)

// ErrInvalidDiagnosticCode is the sentinel error wrapped by InvalidDiagnosticCodeError.
var ErrInvalidDiagnosticCode = errors.New("invalid diagnostic code")

type (
	// DiagnosticCode is a machine-readable identifier for a Diagnostic.
	DiagnosticCode string

	// InvalidDiagnosticCodeError is returned when a DiagnosticCode is not recognized.
	InvalidDiagnosticCodeError struct {
		Value DiagnosticCode
	}

	// Diagnostic is a collected, non-fatal finding. Any diagnostic makes the
	// document it was found in invalid, but interpretation continues so that
	// all findings are reported together.
	Diagnostic struct {
		Code    DiagnosticCode
		File    string
		Section string
		Key     string
		Message string
	}
)

// String returns the string representation of the DiagnosticCode.
func (c DiagnosticCode) String() string { return string(c) }

// IsValid returns whether the DiagnosticCode is one of the defined codes.
func (c DiagnosticCode) IsValid() (bool, []error) {
	switch c {
	case CodeUnknownKey, CodeUnlistedItem, CodeInvalidVersion, CodeInvalidRange,
		CodeInvalidArgSlot, CodeInvalidClassification, CodeInvalidGroup,
		CodeUnknownSection, CodeInvalidOverrideKey:
		return true, nil
	default:
		return false, []error{&InvalidDiagnosticCodeError{Value: c}}
	}
}

// Error implements the error interface.
func (e *InvalidDiagnosticCodeError) Error() string {
	return fmt.Sprintf("invalid diagnostic code %q", e.Value)
}

// Unwrap returns ErrInvalidDiagnosticCode for errors.Is() compatibility.
func (e *InvalidDiagnosticCodeError) Unwrap() error { return ErrInvalidDiagnosticCode }

// String renders the diagnostic as "file: [section] key: message".
func (d Diagnostic) String() string {
	var b strings.Builder
	if d.File != "" {
		b.WriteString(d.File)
		b.WriteString(": ")
	}
	if d.Section != "" {
		b.WriteString("[" + d.Section + "] ")
	}
	if d.Key != "" {
		b.WriteString(d.Key + ": ")
	}
	b.WriteString(d.Message)
	return b.String()
}
