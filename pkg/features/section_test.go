// SPDX-License-Identifier: MPL-2.0

package features

import (
	"testing"

	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/internal/testutil/cfgtest"
)

func section(t *testing.T, name string, lines ...string) *Section {
	t.Helper()
	reg := mustValid(t, cfgtest.WithSection(name, lines...))
	s, ok := reg.Section(name)
	if !ok {
		t.Fatalf("section %q not found", name)
	}
	return s
}

func TestSection_MostSpecificClassificationWins(t *testing.T) {
	t.Parallel()

	s := section(t, "FOO",
		"LIST=A,B",
		"DEFAULT_CLASSIFICATION=ReviewSemantics",
		"DEFAULT_CLASSIFICATION-Ignored=B",
	)

	tests := map[string]Status{
		"":  StatusReviewSemantics,
		"A": StatusReviewSemantics,
		"b": StatusIgnored,
	}
	for name, want := range tests {
		if got, ok := s.Status(name); !ok || got != want {
			t.Errorf("Status(%q) = %q, %v; want %q", name, got, ok, want)
		}
	}
}

func TestSection_ClassificationPriorityBeatsFileOrder(t *testing.T) {
	t.Parallel()

	s := section(t, "FOO",
		"LIST=A",
		"DEFAULT_CLASSIFICATION-Ignored=A",
		"DEFAULT_CLASSIFICATION-ReviewManually=A",
	)
	if got, _ := s.Status("A"); got != StatusReviewManually {
		t.Errorf("Status(A) = %q, want %q", got, StatusReviewManually)
	}
}

func TestSection_NoClassification(t *testing.T) {
	t.Parallel()

	s := section(t, "FOO", "LIST=A")
	if got, ok := s.Status("A"); ok {
		t.Errorf("Status(A) = %q, want none", got)
	}
}

func TestSection_StarShorthand(t *testing.T) {
	t.Parallel()

	s := section(t, "FOO",
		"LIST=A",
		"DEFAULT_CLASSIFICATION-reviewmanually=*",
		"REPORT_GROUP-Cursor Options=*",
	)
	if got, _ := s.Status(""); got != StatusReviewManually {
		t.Errorf("Status() = %q, want %q", got, StatusReviewManually)
	}
	if got, _ := s.Status("A"); got != StatusReviewManually {
		t.Errorf("Status(A) = %q, want %q", got, StatusReviewManually)
	}
	if got, _ := s.Group(""); got != "Cursor Options" {
		t.Errorf("Group() = %q, want %q", got, "Cursor Options")
	}
}

func TestSection_Group(t *testing.T) {
	t.Parallel()

	s := section(t, "FOO",
		"LIST=A,B,C",
		"REPORT_GROUP=Misc",
		"REPORT_GROUP-MixedCase=b",
		"REPORT_GROUP-Other=B,C",
	)

	tests := map[string]string{
		"":  "Misc",
		"A": "Misc",
		"B": "MixedCase",
		"c": "Other",
	}
	for name, want := range tests {
		if got, _ := s.Group(name); got != want {
			t.Errorf("Group(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestSection_WildcardList(t *testing.T) {
	t.Parallel()

	s := section(t, "FOO",
		"LIST=PLAIN,FOO%BAR",
		"DEFAULT_CLASSIFICATION-Ignored=FOO%BAR",
	)

	if !s.HasWildcard() {
		t.Fatal("HasWildcard() = false")
	}
	tests := map[string]bool{
		"PLAIN":      true,
		"FOOxyzBAR":  true,
		"fooBAR":     true,
		"FOOxyzBAZ":  false,
		"xFOOyBAR":   false,
		"FOOBARbaz":  false,
		"":           false,
		"FOO.*BAR":   true,
		"NOT LISTED": false,
	}
	for name, want := range tests {
		if got := s.Has(name); got != want {
			t.Errorf("Has(%q) = %v, want %v", name, got, want)
		}
	}

	if got, _ := s.Status("FOOmiddleBAR"); got != StatusIgnored {
		t.Errorf("Status(FOOmiddleBAR) = %q, want Ignored", got)
	}

	var marker bool
	for _, e := range s.Entries() {
		if e.Key.Kind == KeyWildcard && len(e.Values) == 1 && e.Values[0] == "FOO%BAR" {
			marker = true
		}
	}
	if !marker {
		t.Error("missing WILDCARD entry")
	}
}

func TestSection_RegexMetaInPattern(t *testing.T) {
	t.Parallel()

	s := section(t, "FOO", "LIST=A.B%")
	if !s.Has("A.Bxyz") {
		t.Error("Has(A.Bxyz) = false")
	}
	if s.Has("AxBxyz") {
		t.Error("'.' in a LIST item must match literally")
	}
}

func TestSection_SupportsAndMinimumVersion(t *testing.T) {
	t.Parallel()

	orders := map[string][]string{
		"ascending":  {"LIST=X,Y", "SUPPORTED-1.0.0=X", "SUPPORTED-2.0.0=X", "SUPPORTED-1.1.0-1.2.0=Y"},
		"descending": {"LIST=X,Y", "SUPPORTED-2.0.0=X", "SUPPORTED-1.0.0=X", "SUPPORTED-1.1.0-1.2.0=Y"},
	}

	for name, lines := range orders {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s := section(t, "FOO", lines...)

			if v, ok := s.MinimumVersion("x", false); !ok || v != "1.0.0" {
				t.Errorf("MinimumVersion(X) = %q, %v; want 1.0.0", v, ok)
			}
			if v, ok := s.MinimumVersion("Y", false); !ok || v != "1.1.0" {
				t.Errorf("MinimumVersion(Y) = %q, %v; want 1.1.0", v, ok)
			}
			if _, ok := s.MinimumVersion("Z", false); ok {
				t.Error("MinimumVersion(Z) found a version")
			}

			supports := []struct {
				v    string
				item string
				want bool
			}{
				{"1.1.0", "X", true},
				{"3.1.0", "X", true},
				{"0.9", "X", false},
				{"1.0.0", "Y", false},
				{"1.2.0", "Y", true},
				{"2.0.0", "Y", false},
			}
			for _, tt := range supports {
				if got := s.Supports(versionOf(tt.v), tt.item, false); got != tt.want {
					t.Errorf("Supports(%s, %s) = %v, want %v", tt.v, tt.item, got, tt.want)
				}
			}
		})
	}
}

func TestSection_SectionLevelSupport(t *testing.T) {
	t.Parallel()

	s := section(t, "FOO", "SUPPORTED-2.0.0-2.*=*", "SUPPORTED-3.1.0=*")

	if v, ok := s.MinimumVersion("", false); !ok || v != "2.0.0" {
		t.Errorf("MinimumVersion() = %q, %v; want 2.0.0", v, ok)
	}
	tests := map[string]bool{
		"1.2.0": false,
		"2.0.0": true,
		"2.1.0": true,
		"3.0.0": false,
		"3.1.0": true,
	}
	for v, want := range tests {
		if got := s.Supports(versionOf(v), "", false); got != want {
			t.Errorf("Supports(%s) = %v, want %v", v, got, want)
		}
	}
	// A named item is covered by the '*' keys too.
	if !s.Supports("2.0.0", "ANYTHING", false) {
		t.Error("Supports(2.0.0, ANYTHING) = false")
	}
}
