// SPDX-License-Identifier: MPL-2.0

package overrides

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/cfgdoc"
)

func TestSync_CreatesSkeleton(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	path := filepath.Join(t.TempDir(), "nested", "user.cfg")

	res, err := Sync(path, reg, SyncOptions{})
	if err != nil {
		t.Fatalf("Sync() error: %v", err)
	}
	if !res.Created || !res.Valid() {
		t.Fatalf("Sync() = %+v, want a created, valid file", res)
	}

	doc, err := cfgdoc.ParseFile(path, false)
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	got := doc.SectionNames()
	if !slices.Equal(got, reg.SectionNames()) {
		t.Errorf("skeleton sections = %v, want %v", got, reg.SectionNames())
	}
	if got[0] != "FOO" || got[1] != "BAR" {
		t.Errorf("skeleton should follow registry order, got %v", got[:2])
	}
	if slices.Contains(got, reg.Product()) {
		t.Error("skeleton must not contain the product section")
	}
	for _, s := range doc.Sections() {
		if s.Len() != 0 {
			t.Errorf("section [%s] has %d keys, want none", s.Name, s.Len())
		}
	}
}

func TestSkeleton_Layout(t *testing.T) {
	t.Parallel()

	text := string(Skeleton(testRegistry(t)))
	if !strings.Contains(text, "\n[FOO]\n\n[BAR]\n") {
		t.Errorf("headers should be blank-separated:\n%s", text)
	}
}

func TestSync_AppendsMissingSections(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	path := filepath.Join(t.TempDir(), "user.cfg")
	original := "# mine\n[bar]\nREPORT_GROUP=Mine"
	if err := os.WriteFile(path, []byte(original), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := Sync(path, reg, SyncOptions{})
	if err != nil {
		t.Fatalf("Sync() error: %v", err)
	}
	if res.Created {
		t.Error("Created = true for an existing file")
	}
	if !res.Valid() {
		t.Errorf("diagnostics: %v", res.Diagnostics)
	}
	if slices.Contains(res.Added, "BAR") || res.Added[0] != "FOO" {
		t.Errorf("Added = %v", res.Added)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), original+"\n") {
		t.Errorf("existing content must be preserved, got:\n%s", data)
	}
	doc, err := cfgdoc.ParseFile(path, false)
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	if names := doc.SectionNames(); names[0] != "bar" || names[1] != "FOO" || len(names) != len(reg.SectionNames()) {
		t.Errorf("sections = %v", names)
	}

	// A second run has nothing left to add.
	again, err := Sync(path, reg, SyncOptions{})
	if err != nil {
		t.Fatalf("second Sync() error: %v", err)
	}
	if len(again.Added) != 0 {
		t.Errorf("second Sync() added %v", again.Added)
	}
	after, _ := os.ReadFile(path)
	if string(after) != string(data) {
		t.Error("second Sync() rewrote the file")
	}
}

func TestSync_InvalidFileStillExtended(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	path := filepath.Join(t.TempDir(), "user.cfg")
	if err := os.WriteFile(path, []byte("[Unknown]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := Sync(path, reg, SyncOptions{})
	if err != nil {
		t.Fatalf("Sync() error: %v", err)
	}
	if res.Valid() {
		t.Error("Valid() = true for a file with an unknown section")
	}
	if len(res.Added) != len(reg.SectionNames()) {
		t.Errorf("Added %d sections, want %d", len(res.Added), len(reg.SectionNames()))
	}
}

func TestSync_DryRun(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	path := filepath.Join(t.TempDir(), "user.cfg")

	res, err := Sync(path, reg, SyncOptions{DryRun: true})
	if err != nil {
		t.Fatalf("Sync() error: %v", err)
	}
	if !res.Created {
		t.Error("Created = false")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("dry run wrote %s", path)
	}
}

func TestSync_SyntaxErrorIsFatal(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	path := filepath.Join(t.TempDir(), "user.cfg")
	if err := os.WriteFile(path, []byte("[FOO\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Sync(path, reg, SyncOptions{}); err == nil {
		t.Fatal("Sync() should fail on a malformed file")
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	dir := t.TempDir()

	res, err := Load(filepath.Join(dir, "absent.cfg"), reg)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !res.Valid() || res.Layer.Len() != 0 {
		t.Errorf("Load() of a missing file = %+v", res)
	}

	path := filepath.Join(dir, "user.cfg")
	if err := os.WriteFile(path, []byte("[FOO]\nDEFAULT_CLASSIFICATION=Ignored\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err = Load(path, reg)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if res.Layer.Len() != 1 || res.Layer.File() != path {
		t.Errorf("Load() layer = %d entries from %q", res.Layer.Len(), res.Layer.File())
	}
}
