// SPDX-License-Identifier: MPL-2.0

package version

import (
	"errors"
	"testing"
)

func TestParseRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		spec    string
		want    Range
		wantErr bool
	}{
		{"1.0", Range{Min: "1.0"}, false},
		{"1.0-2.0", Range{Min: "1.0", Max: "2.0"}, false},
		{"2.0-3.*", Range{Min: "2.0", Max: "3.*"}, false},
		{"2.0-2.0", Range{Min: "2.0", Max: "2.0"}, false},
		{"3.0-2.0", Range{}, true},
		{"x-2.0", Range{}, true},
		{"1.0-", Range{}, true},
		{"2.*", Range{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			t.Parallel()
			got, err := ParseRange(tt.spec)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRange) {
					t.Fatalf("ParseRange(%q) error = %v, want ErrInvalidRange", tt.spec, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRange(%q) unexpected error: %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("ParseRange(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
			if got.String() != tt.spec {
				t.Errorf("String() = %q, want %q", got.String(), tt.spec)
			}
		})
	}
}

func TestIsSupported(t *testing.T) {
	t.Parallel()

	tests := []struct {
		requested Version
		spec      string
		want      bool
	}{
		{"1.0", "1.0", true},
		{"0.9", "1.0", false},
		{"9.9", "1.0", true},
		{"3.9", "2.0-3.*", true},
		{"3.99.1", "2.0-3.*", true},
		{"2.0", "2.0-3.*", true},
		{"1.9", "2.0-3.*", false},
		{"4.0", "2.0-3.*", false},
		{"9.9", "2.0-3.*", false},
		{"2.5", "2.0-2.5", true},
		{"2.5.1", "2.0-2.5", false},
		{"2.0", "garbage", false},
	}

	for _, tt := range tests {
		if got := IsSupported(tt.requested, tt.spec); got != tt.want {
			t.Errorf("IsSupported(%q, %q) = %v, want %v", tt.requested, tt.spec, got, tt.want)
		}
	}
}
