// SPDX-License-Identifier: MPL-2.0

package cfgdoc

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestEncode_RoundTrip(t *testing.T) {
	t.Parallel()

	src := "[Product]\nVALID_VERSIONS=1.0.0\n[Feature]\nRULE=a##b\nLIST= x , y\n"
	doc, err := Parse(strings.NewReader(src), ParseOptions{Name: "src"})
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	again, err := Parse(bytes.NewReader(buf.Bytes()), ParseOptions{Name: "out", VerifyChecksum: true})
	if err != nil {
		t.Fatalf("re-Parse() error: %v\n%s", err, buf.String())
	}
	if !slices.Equal(again.SectionNames(), doc.SectionNames()) {
		t.Errorf("sections = %v, want %v", again.SectionNames(), doc.SectionNames())
	}
	s, _ := again.Section("Feature")
	if v, _ := s.Value("RULE"); v != "a#b" {
		t.Errorf("RULE = %q, want a#b", v)
	}
	if again.Checksum() != doc.Checksum() {
		t.Errorf("checksum changed across round trip")
	}
}

func TestDocument_Build(t *testing.T) {
	t.Parallel()

	doc := NewDocument("built")
	s, err := doc.AddSection("A")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set("K", " 1,,2 "); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Value("K"); v != "1,2" {
		t.Errorf("Value(K) = %q", v)
	}
	if _, err := doc.AddSection("a"); !errors.Is(err, ErrDuplicateSection) {
		t.Errorf("AddSection(a) error = %v, want ErrDuplicateSection", err)
	}
	if err := s.Set("K2", ","); !errors.Is(err, ErrEmptyValue) {
		t.Errorf("Set(K2) error = %v, want ErrEmptyValue", err)
	}
	if declared, _, ok := s.Lookup("k"); !ok || declared != "K" {
		t.Errorf("Lookup(k) = %q, %v", declared, ok)
	}
}

func TestUpdateChecksum(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	body := "[S]\nk=1\n"

	t.Run("inserts when absent", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(dir, "insert.cfg")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		res, err := UpdateChecksum(path)
		if err != nil {
			t.Fatalf("UpdateChecksum() error: %v", err)
		}
		if !res.Inserted || !res.Changed() {
			t.Errorf("result = %+v, want inserted", res)
		}
		if _, err := ParseFile(path, true); err != nil {
			t.Errorf("ParseFile() after update: %v", err)
		}
	})

	t.Run("replaces stale value in place", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(dir, "replace.cfg")
		stale := ChecksumPrefix + "deadbeef\n" + body + "# tail\n"
		if err := os.WriteFile(path, []byte(stale), 0o600); err != nil {
			t.Fatal(err)
		}
		res, err := UpdateChecksum(path)
		if err != nil {
			t.Fatalf("UpdateChecksum() error: %v", err)
		}
		if res.Inserted || res.Previous != "deadbeef" {
			t.Errorf("result = %+v", res)
		}
		data, _ := os.ReadFile(path)
		if !strings.HasPrefix(string(data), ChecksumPrefix+res.Current+"\n") {
			t.Errorf("checksum line not replaced in place:\n%s", data)
		}
		if !strings.HasSuffix(string(data), "# tail\n") {
			t.Errorf("trailing content lost:\n%s", data)
		}
		info, _ := os.Stat(path)
		if info.Mode().Perm() != 0o600 {
			t.Errorf("mode = %v, want 0600", info.Mode().Perm())
		}
	})

	t.Run("syntax errors abort", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(dir, "broken.cfg")
		if err := os.WriteFile(path, []byte("[S\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := UpdateChecksum(path); !errors.Is(err, ErrMissingBracket) {
			t.Errorf("UpdateChecksum() error = %v, want ErrMissingBracket", err)
		}
	})
}

func TestDiagnostic_String(t *testing.T) {
	t.Parallel()

	d := Diagnostic{Code: CodeUnknownKey, File: "f.cfg", Section: "S", Key: "BOGUS", Message: "unknown key"}
	if got, want := d.String(), "f.cfg: [S] BOGUS: unknown key"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if ok, _ := DiagnosticCode("nope").IsValid(); ok {
		t.Error("DiagnosticCode(nope).IsValid() = true")
	}
	if ok, _ := CodeUnlistedItem.IsValid(); !ok {
		t.Error("CodeUnlistedItem.IsValid() = false")
	}
}
