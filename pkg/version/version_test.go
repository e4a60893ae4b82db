// SPDX-License-Identifier: MPL-2.0

package version

import (
	"errors"
	"testing"
)

func TestVersion_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   Version
		want    bool
		wantErr bool
	}{
		{"1", true, false},
		{"1.0.0", true, false},
		{"2.10.3", true, false},
		{"", false, true},
		{"1.", false, true},
		{".1", false, true},
		{"1.a", false, true},
		{"2.*", false, true},
		{"v1.0", false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			t.Parallel()
			ok, errs := tt.value.IsValid()
			if ok != tt.want {
				t.Errorf("Version(%q).IsValid() = %v, want %v", tt.value, ok, tt.want)
			}
			if tt.wantErr {
				if len(errs) == 0 {
					t.Fatalf("Version(%q).IsValid() returned no errors", tt.value)
				}
				if !errors.Is(errs[0], ErrInvalidVersion) {
					t.Errorf("error should wrap ErrInvalidVersion, got: %v", errs[0])
				}
			} else if len(errs) > 0 {
				t.Errorf("unexpected errors: %v", errs)
			}
		})
	}
}

func TestVersion_IsWildcard(t *testing.T) {
	t.Parallel()

	for v, want := range map[Version]bool{
		"2.*":   true,
		"2.3.*": true,
		"*":     true,
		"2.*.1": false,
		"2.3":   false,
		"2*":    false,
	} {
		if got := v.IsWildcard(); got != want {
			t.Errorf("Version(%q).IsWildcard() = %v, want %v", v, got, want)
		}
	}
}

func TestVersion_Normalize(t *testing.T) {
	t.Parallel()

	tests := map[Version]string{
		"1":        "00001",
		"2.1":      "00002.00001",
		"2.01":     "00002.00001",
		"2.1.0":    "00002.00001.00000",
		"3.*":      "00003.99999",
		"12345.67": "12345.00067",
		"":         "",
	}
	for v, want := range tests {
		if got := v.Normalize(); got != want {
			t.Errorf("Version(%q).Normalize() = %q, want %q", v, got, want)
		}
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b Version
		want int
	}{
		{"1.0", "1.0", 0},
		{"1.0", "2.0", -1},
		{"2.10", "2.9", 1},
		// Zero padding in the input is not significant once normalized.
		{"2.1", "2.01", 0},
		// A shorter sequence sorts before a longer one sharing its prefix.
		{"2.1", "2.1.0", -1},
		{"2.1.0", "2.1", 1},
		{"3.9", "3.*", -1},
		{"4.0", "3.*", 1},
	}

	for _, tt := range tests {
		if got := Compare(tt.a, tt.b); got != tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCompare_BothEmptyPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("Compare(\"\", \"\") did not panic")
		}
	}()
	Compare("", "")
}

func TestLowerHigher(t *testing.T) {
	t.Parallel()

	if got := Lower("2.0", "1.5"); got != "1.5" {
		t.Errorf("Lower = %q, want 1.5", got)
	}
	if got := Higher("2.0", "1.5"); got != "2.0" {
		t.Errorf("Higher = %q, want 2.0", got)
	}
	if got := Lower("", "1.5"); got != "1.5" {
		t.Errorf("Lower with empty = %q, want 1.5", got)
	}
	if got := Higher("3.1", ""); got != "3.1" {
		t.Errorf("Higher with empty = %q, want 3.1", got)
	}
	if !IsLower("1.0", "1.1") || IsLower("1.1", "1.1") {
		t.Error("IsLower ordering is wrong")
	}
	if !IsLowerOrEqual("1.1", "1.1") || IsLowerOrEqual("1.2", "1.1") {
		t.Error("IsLowerOrEqual ordering is wrong")
	}
	if !IsHigher("1.10", "1.9") {
		t.Error("IsHigher(1.10, 1.9) = false")
	}
	if !IsEqual("1.002", "1.2") {
		t.Error("IsEqual(1.002, 1.2) = false")
	}
}
