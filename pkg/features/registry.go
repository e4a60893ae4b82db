// SPDX-License-Identifier: MPL-2.0

package features

import (
	"slices"
	"strings"

	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/version"
)

// Registry is the interpreted feature file. It is immutable once built.
type Registry struct {
	file       string
	product    string
	catalog    *version.Catalog
	fileFormat int
	timestamp  string
	sections   []*Section
	index      map[string]*Section
}

// File returns the name of the document the registry was built from.
func (r *Registry) File() string { return r.file }

// Product returns the name of the mandatory first section.
func (r *Registry) Product() string { return r.product }

// Catalog returns the valid product versions.
func (r *Registry) Catalog() *version.Catalog { return r.catalog }

// FileFormat returns the FILE_FORMAT number.
func (r *Registry) FileFormat() int { return r.fileFormat }

// Timestamp returns the FILE_TIMESTAMP value.
func (r *Registry) Timestamp() string { return r.timestamp }

// Sections returns the feature sections in file order, excluding the
// product section.
func (r *Registry) Sections() []*Section { return slices.Clone(r.sections) }

// SectionNames returns the feature section names in file order.
func (r *Registry) SectionNames() []string {
	names := make([]string, len(r.sections))
	for i, s := range r.sections {
		names[i] = s.name
	}
	return names
}

// Section looks up a feature section, ignoring case.
func (r *Registry) Section(name string) (*Section, bool) {
	s, ok := r.index[strings.ToUpper(strings.TrimSpace(name))]
	return s, ok
}

// Exists reports whether the feature section is known.
func (r *Registry) Exists(section string) bool {
	_, ok := r.Section(section)
	return ok
}

// ItemExists reports whether name is an item of section.
func (r *Registry) ItemExists(section, name string) bool {
	s, ok := r.Section(section)
	return ok && s.Has(name)
}

// ValueList returns the LIST items of section, or nil.
func (r *Registry) ValueList(section string) []string {
	if s, ok := r.Section(section); ok {
		return s.List()
	}
	return nil
}
