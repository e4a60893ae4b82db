// SPDX-License-Identifier: MPL-2.0

package features

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// StatusSupported marks an item supported in the requested version.
	StatusSupported Status = "Supported"
	// StatusNotSupported marks an item that is not supported.
	StatusNotSupported Status = "NotSupported"
	// StatusReviewSemantics marks an item whose behavior may differ.
	StatusReviewSemantics Status = "ReviewSemantics"
	// StatusReviewPerformance marks an item that may perform differently.
	StatusReviewPerformance Status = "ReviewPerformance"
	// StatusReviewManually marks an item that could not be assessed automatically.
	StatusReviewManually Status = "ReviewManually"
	// StatusIgnored marks an item that is irrelevant for the assessment.
	StatusIgnored Status = "Ignored"
)

// ErrInvalidStatus is the sentinel error wrapped by InvalidStatusError.
var ErrInvalidStatus = errors.New("invalid classification")

// classifications lists the labels allowed in DEFAULT_CLASSIFICATION keys,
// in the priority order used when several specific keys name the same item.
var classifications = []Status{
	StatusReviewSemantics,
	StatusReviewPerformance,
	StatusReviewManually,
	StatusIgnored,
	StatusNotSupported,
}

type (
	// Status is a classification label.
	Status string

	// InvalidStatusError is returned when a label is not a known classification.
	InvalidStatusError struct {
		Value string
	}
)

// Classifications returns the labels accepted in DEFAULT_CLASSIFICATION keys
// in priority order.
func Classifications() []Status {
	out := make([]Status, len(classifications))
	copy(out, classifications)
	return out
}

// ParseStatus matches s case-insensitively against the classification labels
// and returns the canonical spelling.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, st := range classifications {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", &InvalidStatusError{Value: s}
}

// String returns the string representation of the Status.
func (s Status) String() string { return string(s) }

// IsValid returns whether s is Supported or one of the classification labels.
func (s Status) IsValid() (bool, []error) {
	if s == StatusSupported {
		return true, nil
	}
	for _, st := range classifications {
		if s == st {
			return true, nil
		}
	}
	return false, []error{&InvalidStatusError{Value: string(s)}}
}

// Error implements the error interface.
func (e *InvalidStatusError) Error() string {
	labels := make([]string, len(classifications))
	for i, st := range classifications {
		labels[i] = string(st)
	}
	return fmt.Sprintf("invalid classification %q (expected one of %s)", e.Value, strings.Join(labels, ", "))
}

// Unwrap returns ErrInvalidStatus for errors.Is() compatibility.
func (e *InvalidStatusError) Unwrap() error { return ErrInvalidStatus }
