// SPDX-License-Identifier: MPL-2.0

// Package cfgtest builds feature files for tests.
package cfgtest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/cfgdoc"
)

const (
	// Product is the product section name expected by the feature registry.
	Product = "Babelfish for T-SQL"

	minSections = 25
)

type (
	// Option configures a test feature file.
	Option func(*File)

	// File is a feature file under construction.
	File struct {
		header   []line
		sections []section
		padding  bool
		product  string
	}

	line struct {
		key, value string
	}

	section struct {
		name  string
		lines []string
	}
)

// NewFile creates a feature file with a valid product section
// (versions 1.0.0 through 3.1.0, FILE_FORMAT=1, FILE_TIMESTAMP=1-Jan-2024) and
// padding sections that keep it above the registry's sanity threshold.
//
// Usage:
//
//	f := cfgtest.NewFile(
//	    cfgtest.WithSection("FOO", "LIST=A,B", "DEFAULT_CLASSIFICATION=ReviewSemantics"),
//	)
//	doc := f.Document(t)
func NewFile(opts ...Option) *File {
	f := &File{
		product: Product,
		padding: true,
		header: []line{
			{"VALID_VERSIONS", "1.0.0,1.1.0,1.2.0,2.0.0,2.1.0,3.0.0,3.1.0"},
			{"FILE_FORMAT", "1"},
			{"FILE_TIMESTAMP", "1-Jan-2024"},
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// WithSection appends a feature section with raw "key=value" lines.
func WithSection(name string, lines ...string) Option {
	return func(f *File) {
		f.sections = append(f.sections, section{name: name, lines: lines})
	}
}

// WithHeader sets a product section key, replacing the default value. An
// empty value removes the key.
func WithHeader(key, value string) Option {
	return func(f *File) {
		for i, l := range f.header {
			if l.key == key {
				if value == "" {
					f.header = append(f.header[:i], f.header[i+1:]...)
				} else {
					f.header[i].value = value
				}
				return
			}
		}
		if value != "" {
			f.header = append(f.header, line{key, value})
		}
	}
}

// WithProduct renames the product section.
func WithProduct(name string) Option {
	return func(f *File) { f.product = name }
}

// WithoutPadding disables the filler sections.
func WithoutPadding() Option {
	return func(f *File) { f.padding = false }
}

// PaddingName returns the name of the i-th filler section (1-based).
func PaddingName(i int) string {
	return fmt.Sprintf("Padding Feature %02d", i)
}

// Text renders the file without a checksum line.
func (f *File) Text() string {
	var b strings.Builder
	b.WriteString("[" + f.product + "]\n")
	for _, l := range f.header {
		b.WriteString(l.key + "=" + l.value + "\n")
	}
	for _, s := range f.sections {
		b.WriteString("\n[" + s.name + "]\n")
		for _, l := range s.lines {
			b.WriteString(l + "\n")
		}
	}
	if f.padding {
		for i := 1; i <= minSections-1-len(f.sections); i++ {
			b.WriteString("\n[" + PaddingName(i) + "]\nSUPPORTED-1.0.0=*\n")
		}
	}
	return b.String()
}

// Sealed renders the file followed by a correct checksum line.
func (f *File) Sealed(t testing.TB) string {
	t.Helper()
	text := f.Text()
	sum, err := cfgdoc.ComputeChecksum(strings.NewReader(text), "cfgtest")
	if err != nil {
		t.Fatalf("failed to compute checksum: %v", err)
	}
	return text + "\n" + cfgdoc.ChecksumPrefix + sum + "\n"
}

// Write stores the sealed file in dir and returns its path.
func (f *File) Write(t testing.TB, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(f.Sealed(t)), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// Document parses the sealed file with checksum verification.
func (f *File) Document(t testing.TB) *cfgdoc.Document {
	t.Helper()
	doc, err := cfgdoc.Parse(strings.NewReader(f.Sealed(t)), cfgdoc.ParseOptions{Name: "features.cfg", VerifyChecksum: true})
	if err != nil {
		t.Fatalf("failed to parse test feature file: %v", err)
	}
	return doc
}
