// SPDX-License-Identifier: MPL-2.0

package features

import (
	"regexp"
	"slices"
	"strings"

	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/version"
)

const (
	// WildcardChar stands for any run of characters inside a LIST item.
	WildcardChar = "%"
	// AllItems in a SUPPORTED value applies the key to every item.
	AllItems = "*"
)

// Entry is one key of a section together with its value list. Item names
// are stored uppercased; bare classification and group values keep their
// original spelling.
type Entry struct {
	Key    Key
	Values []string

	patterns []*regexp.Regexp
}

// NewEntry builds an entry and compiles any wildcard items in values.
func NewEntry(key Key, values []string) Entry {
	e := Entry{Key: key, Values: values}
	for _, v := range values {
		if strings.Contains(v, WildcardChar) {
			e.patterns = append(e.patterns, CompileWildcard(v))
		}
	}
	return e
}

// CompileWildcard turns a LIST pattern such as "FOO%BAR" into an anchored,
// case-insensitive regular expression where '%' matches any run of characters.
func CompileWildcard(pattern string) *regexp.Regexp {
	parts := strings.Split(pattern, WildcardChar)
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(`(?is)^` + strings.Join(parts, ".*") + `$`)
}

// Contains reports whether name appears in the value list, either literally
// or through a wildcard item. name must already be uppercased.
func (e Entry) Contains(name string) bool {
	if name == "" {
		return false
	}
	if slices.Contains(e.Values, name) {
		return true
	}
	for _, re := range e.patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// ContainsAll reports whether the value list holds the AllItems marker.
func (e Entry) ContainsAll() bool {
	return slices.Contains(e.Values, AllItems)
}

// ResolveStatus runs one classification pass over entries. A specific
// DEFAULT_CLASSIFICATION-<status> key listing name wins immediately; ties
// between specific keys follow the classification priority order. Otherwise
// the bare key, if any, provides the result. An empty name only consults the
// bare key.
func ResolveStatus(entries []Entry, name string) (Status, bool) {
	name = FoldName(name)
	if name != "" {
		for _, st := range classifications {
			for _, e := range entries {
				if e.Key.Kind == KeyDefaultClassification && e.Key.Status == st && e.Contains(name) {
					return st, true
				}
			}
		}
	}
	for _, e := range entries {
		if e.Key.Kind == KeyDefaultClassification && !e.Key.IsSpecific() && len(e.Values) > 0 {
			return Status(e.Values[0]), true
		}
	}
	return "", false
}

// ResolveGroup runs one report-group pass over entries. The first specific
// REPORT_GROUP-<group> key listing name wins; otherwise the bare key, if any,
// provides the group. The returned group keeps the casing of the key.
func ResolveGroup(entries []Entry, name string) (string, bool) {
	name = FoldName(name)
	if name != "" {
		for _, e := range entries {
			if e.Key.Kind == KeyReportGroup && e.Key.IsSpecific() && e.Contains(name) {
				return e.Key.Group, true
			}
		}
	}
	for _, e := range entries {
		if e.Key.Kind == KeyReportGroup && !e.Key.IsSpecific() && len(e.Values) > 0 {
			return e.Values[0], true
		}
	}
	return "", false
}

// FoldName normalizes an item name for lookups.
func FoldName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// FoldArg normalizes a call argument value: surrounding quotes are removed
// and the result uppercased.
func FoldArg(arg string) string {
	arg = strings.TrimSpace(arg)
	if len(arg) >= 2 {
		first, last := arg[0], arg[len(arg)-1]
		if (first == '\'' || first == '"') && first == last {
			arg = arg[1 : len(arg)-1]
		}
	}
	return strings.ToUpper(arg)
}

// supports reports whether e is a SUPPORTED key covering item at requested.
// An empty item matches only keys that apply to all items.
func (e Entry) supports(requested version.Version, item string) bool {
	if !e.ContainsAll() && !e.Contains(item) {
		return false
	}
	return e.Key.Range.Contains(requested)
}
