// SPDX-License-Identifier: MPL-2.0

package features

import (
	"regexp"
	"slices"
	"strings"

	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/version"
)

// Section holds the interpreted keys of one feature section.
type Section struct {
	name     string
	entries  []Entry
	hasList  bool
	list     []string
	listSet  map[string]struct{}
	patterns []*regexp.Regexp
	argSlot  int
}

func newSection(name string) *Section {
	return &Section{name: name, listSet: make(map[string]struct{})}
}

// Name returns the section name as declared.
func (s *Section) Name() string { return s.name }

// Entries returns the interpreted keys in file order.
func (s *Section) Entries() []Entry { return slices.Clone(s.entries) }

// List returns the LIST items, or nil when the section has no LIST key.
func (s *Section) List() []string {
	if !s.hasList {
		return nil
	}
	return slices.Clone(s.list)
}

// HasWildcard reports whether any LIST item contains the wildcard character.
func (s *Section) HasWildcard() bool { return len(s.patterns) > 0 }

// ArgSlot returns the first /ARG<n> designator seen in the section, or zero.
func (s *Section) ArgSlot() int { return s.argSlot }

// Rules returns the opaque RULE values of the section.
func (s *Section) Rules() []string {
	var rules []string
	for _, e := range s.entries {
		if e.Key.Kind == KeyRule {
			rules = append(rules, e.Values...)
		}
	}
	return rules
}

// Has reports whether name is a LIST item, literally or through a wildcard
// LIST item.
func (s *Section) Has(name string) bool {
	name = FoldName(name)
	if name == "" {
		return false
	}
	if _, ok := s.listSet[name]; ok {
		return true
	}
	for _, re := range s.patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// Status returns the base classification for the section or one of its items.
func (s *Section) Status(name string) (Status, bool) {
	return ResolveStatus(s.entries, name)
}

// Group returns the base report group for the section or one of its items.
func (s *Section) Group(name string) (string, bool) {
	return ResolveGroup(s.entries, name)
}

// Supports scans the SUPPORTED keys in file order and reports whether one of
// them covers item at the requested version. With byArg set only /ARG<n>
// keys are considered and item is a call argument value; otherwise only
// plain keys are. An empty item matches keys that apply to all items.
func (s *Section) Supports(requested version.Version, item string, byArg bool) bool {
	item = foldItem(item, byArg)
	for _, e := range s.entries {
		if e.Key.Kind != KeySupported || (e.Key.ArgSlot > 0) != byArg {
			continue
		}
		if e.supports(requested, item) {
			return true
		}
	}
	return false
}

// MinimumVersion folds the lowest range start over every SUPPORTED key that
// lists item (or, for an empty item, that applies to all items).
func (s *Section) MinimumVersion(item string, byArg bool) (version.Version, bool) {
	item = foldItem(item, byArg)
	var lowest version.Version
	for _, e := range s.entries {
		if e.Key.Kind != KeySupported || (e.Key.ArgSlot > 0) != byArg {
			continue
		}
		matched := e.Contains(item)
		if item == "" {
			matched = e.ContainsAll()
		}
		if matched {
			lowest = version.Lower(lowest, e.Key.Range.Min)
		}
	}
	return lowest, lowest != ""
}

func (s *Section) addListItem(item string) {
	if _, ok := s.listSet[item]; ok {
		return
	}
	s.list = append(s.list, item)
	s.listSet[item] = struct{}{}
	if strings.Contains(item, WildcardChar) {
		s.patterns = append(s.patterns, CompileWildcard(item))
	}
}

// set stores e, replacing an earlier entry with the same key identity in place.
func (s *Section) set(e Entry) {
	id := e.Key.ID()
	for i := range s.entries {
		if s.entries[i].Key.ID() == id {
			s.entries[i] = e
			return
		}
	}
	s.entries = append(s.entries, e)
}

func (s *Section) wildcardItems() []string {
	var out []string
	for _, item := range s.list {
		if strings.Contains(item, WildcardChar) {
			out = append(out, item)
		}
	}
	return out
}

func foldItem(item string, byArg bool) string {
	if byArg {
		return FoldArg(item)
	}
	return FoldName(item)
}
