// SPDX-License-Identifier: MPL-2.0

package cfgdoc

import (
	"fmt"
	"hash/crc32"
	"slices"
	"strings"
)

type (
	// Document is an ordered section -> key -> value mapping. Sections and
	// keys keep their first-seen order.
	Document struct {
		// Name labels the document in errors and diagnostics (usually the file path).
		Name string
		// StoredChecksum is the value of the checksum line, if one was read.
		StoredChecksum string

		sections []*Section
		byName   map[string]*Section
	}

	// Section is a named, ordered set of key/value pairs.
	Section struct {
		// Name is the section name as declared.
		Name string
		// Line is the 1-based line of the header, zero for built documents.
		Line int

		keys   []string
		values map[string]string
	}
)

// NewDocument returns an empty document.
func NewDocument(name string) *Document {
	return &Document{Name: name, byName: make(map[string]*Section)}
}

// AddSection appends a new section. Names are compared case-insensitively.
func (d *Document) AddSection(name string) (*Section, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptySectionName
	}
	fold := strings.ToUpper(name)
	if _, exists := d.byName[fold]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateSection, name)
	}
	s := &Section{Name: name, values: make(map[string]string)}
	d.sections = append(d.sections, s)
	d.byName[fold] = s
	return s, nil
}

// Sections returns the sections in declaration order.
func (d *Document) Sections() []*Section {
	return slices.Clone(d.sections)
}

// SectionNames returns the declared section names in order.
func (d *Document) SectionNames() []string {
	names := make([]string, len(d.sections))
	for i, s := range d.sections {
		names[i] = s.Name
	}
	return names
}

// Section looks up a section by name, ignoring case.
func (d *Document) Section(name string) (*Section, bool) {
	s, ok := d.byName[strings.ToUpper(strings.TrimSpace(name))]
	return s, ok
}

// Len returns the number of sections.
func (d *Document) Len() int { return len(d.sections) }

// Checksum computes the CRC-32 of the document contents as 8 lowercase hex digits.
func (d *Document) Checksum() string {
	h := crc32.NewIEEE()
	for _, s := range d.sections {
		h.Write([]byte(s.Name))
		for _, k := range s.keys {
			h.Write([]byte(k))
			h.Write([]byte(s.values[k]))
		}
	}
	return formatChecksum(h.Sum32())
}

// Set stores key=value after normalizing the value list. A repeated key
// keeps its original position and takes the new value.
func (s *Section) Set(key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyKey
	}
	value = NormalizeList(value)
	if value == "" {
		return ErrEmptyValue
	}
	if _, exists := s.values[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
	return nil
}

// Keys returns the raw keys in declaration order.
func (s *Section) Keys() []string {
	return slices.Clone(s.keys)
}

// Value returns the normalized value of key.
func (s *Section) Value(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Lookup finds a key ignoring case and returns the key as declared.
func (s *Section) Lookup(key string) (declared, value string, ok bool) {
	for _, k := range s.keys {
		if strings.EqualFold(k, key) {
			return k, s.values[k], true
		}
	}
	return "", "", false
}

// Len returns the number of keys in the section.
func (s *Section) Len() int { return len(s.keys) }

// NormalizeList splits value on ',', trims and drops blank elements, and
// rejoins the rest with ','.
func NormalizeList(value string) string {
	return strings.Join(SplitList(value), ",")
}

// SplitList splits a comma-separated value into its trimmed, non-blank elements.
func SplitList(value string) []string {
	parts := strings.Split(value, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func formatChecksum(sum uint32) string {
	return fmt.Sprintf("%08x", sum)
}
