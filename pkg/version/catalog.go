// SPDX-License-Identifier: MPL-2.0

package version

import (
	"slices"
	"strings"
)

// Catalog is the ordered set of concrete versions a feature file declares.
// The zero value is an empty catalog.
type Catalog struct {
	versions []Version
}

// Load builds a Catalog from the comma-separated VALID_VERSIONS value.
// Invalid entries are reported but do not stop enumeration; they are left
// out of the catalog.
func Load(raw string) (*Catalog, []error) {
	var errs []error
	c := &Catalog{}
	for _, part := range strings.Split(raw, ",") {
		v := Version(strings.TrimSpace(part))
		if v == "" {
			continue
		}
		if ok, verrs := v.IsValid(); !ok {
			errs = append(errs, verrs...)
			continue
		}
		c.versions = append(c.versions, v)
	}
	return c, errs
}

// Versions returns a copy of the catalog in declaration order.
func (c *Catalog) Versions() []Version {
	return slices.Clone(c.versions)
}

// Len returns the number of versions in the catalog.
func (c *Catalog) Len() int { return len(c.versions) }

// Contains reports whether v is literally declared in the catalog.
func (c *Catalog) Contains(v Version) bool {
	return slices.Contains(c.versions, v)
}

// IsValid reports whether v can be used against this catalog. A concrete
// version must be declared. A wildcard bound is accepted only when
// allowWildcard is set and some declared version shares its prefix.
func (c *Catalog) IsValid(v Version, allowWildcard bool) bool {
	if v.IsConcrete() {
		return c.Contains(v)
	}
	if !allowWildcard || !v.IsWildcard() {
		return false
	}
	prefix := v.Prefix()
	return slices.ContainsFunc(c.versions, func(known Version) bool {
		return strings.HasPrefix(string(known), prefix)
	})
}

// Latest returns the highest declared version, never lower than Baseline.
func (c *Catalog) Latest() Version {
	latest := Baseline
	for _, v := range c.versions {
		latest = Higher(latest, v)
	}
	return latest
}
