// SPDX-License-Identifier: MPL-2.0

package overrides

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/cfgdoc"
	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/features"
)

type (
	// Layer is the interpreted user file. It is immutable once built; a nil
	// *Layer behaves as an empty one.
	Layer struct {
		file     string
		sections []*Section
		index    map[string]*Section
	}

	// Section holds the override keys for one feature section.
	Section struct {
		name    string
		entries []features.Entry
	}

	// Result carries the layer and every collected diagnostic.
	Result struct {
		Layer       *Layer
		Diagnostics []cfgdoc.Diagnostic
	}
)

// Valid reports whether the layer was built without diagnostics.
func (r Result) Valid() bool {
	return r.Layer != nil && len(r.Diagnostics) == 0
}

// Build interprets a parsed user file against reg. Every problem is collected;
// the caller must not run an assessment when the result is not valid.
func Build(doc *cfgdoc.Document, reg *features.Registry) Result {
	l := &Layer{file: doc.Name, index: make(map[string]*Section)}
	var diags []cfgdoc.Diagnostic
	diag := func(code cfgdoc.DiagnosticCode, section, key, msg string) {
		diags = append(diags, cfgdoc.Diagnostic{Code: code, File: doc.Name, Section: section, Key: key, Message: msg})
	}

	for _, src := range doc.Sections() {
		base, ok := reg.Section(src.Name)
		if !ok {
			diag(cfgdoc.CodeUnknownSection, src.Name, "", "section does not exist in "+reg.File())
			continue
		}

		sec := &Section{name: base.Name()}
		for _, raw := range src.Keys() {
			value, _ := src.Value(raw)
			check := func(item string) {
				if item != features.AllItems && !base.Has(item) {
					diag(cfgdoc.CodeUnlistedItem, src.Name, raw, fmt.Sprintf("item %q is not in LIST of [%s]", item, base.Name()))
				}
			}

			key, err := features.ParseKey(raw)
			switch {
			case errors.Is(err, features.ErrUnknownKey):
				diag(cfgdoc.CodeInvalidOverrideKey, src.Name, raw, "only DEFAULT_CLASSIFICATION and REPORT_GROUP keys may be overridden")
				continue
			case err != nil:
				diag(features.CodeFor(err), src.Name, raw, err.Error())
				continue
			}

			switch key.Kind {
			case features.KeyDefaultClassification:
				entry, ok := features.ClassificationEntry(key, value, check)
				if !ok {
					diag(cfgdoc.CodeInvalidClassification, src.Name, raw, (&features.InvalidStatusError{Value: value}).Error())
					continue
				}
				sec.set(entry)
			case features.KeyReportGroup:
				sec.set(features.GroupEntry(key, value, check))
			default:
				diag(cfgdoc.CodeInvalidOverrideKey, src.Name, raw, "only DEFAULT_CLASSIFICATION and REPORT_GROUP keys may be overridden")
			}
		}

		l.sections = append(l.sections, sec)
		l.index[strings.ToUpper(sec.name)] = sec
	}

	return Result{Layer: l, Diagnostics: diags}
}

// Empty returns a layer without overrides.
func Empty() *Layer {
	return &Layer{index: make(map[string]*Section)}
}

// File returns the name of the user file the layer was built from.
func (l *Layer) File() string {
	if l == nil {
		return ""
	}
	return l.file
}

// Section looks up the overrides of a feature section, ignoring case.
func (l *Layer) Section(name string) (*Section, bool) {
	if l == nil {
		return nil, false
	}
	s, ok := l.index[strings.ToUpper(strings.TrimSpace(name))]
	return s, ok
}

// Sections returns the override sections in file order.
func (l *Layer) Sections() []*Section {
	if l == nil {
		return nil
	}
	return slices.Clone(l.sections)
}

// Len returns the number of override keys in force.
func (l *Layer) Len() int {
	if l == nil {
		return 0
	}
	n := 0
	for _, s := range l.sections {
		n += len(s.entries)
	}
	return n
}

// Name returns the section name as declared in the feature file.
func (s *Section) Name() string { return s.name }

// Entries returns the override keys in file order.
func (s *Section) Entries() []features.Entry { return slices.Clone(s.entries) }

// Status runs the classification pass over the override keys.
func (s *Section) Status(name string) (features.Status, bool) {
	return features.ResolveStatus(s.entries, name)
}

// Group runs the report-group pass over the override keys.
func (s *Section) Group(name string) (string, bool) {
	return features.ResolveGroup(s.entries, name)
}

func (s *Section) set(e features.Entry) {
	id := e.Key.ID()
	for i := range s.entries {
		if s.entries[i].Key.ID() == id {
			s.entries[i] = e
			return
		}
	}
	s.entries = append(s.entries, e)
}
