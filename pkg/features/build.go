// SPDX-License-Identifier: MPL-2.0

package features

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/cfgdoc"
	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/version"

	"github.com/charmbracelet/log"
)

const (
	// ProductSection is the name the first section of the feature file must carry.
	ProductSection = "Babelfish for T-SQL"

	// MinSections guards against truncated or corrupted feature files.
	MinSections = 25
)

var (
	// ErrTooFewSections is returned for documents below MinSections.
	ErrTooFewSections = errors.New("too few sections")
	// ErrMissingProductSection is returned when the first section is not the product section.
	ErrMissingProductSection = errors.New("first section must be the product section")
	// ErrMissingHeaderKey is returned when the product section lacks a required key.
	ErrMissingHeaderKey = errors.New("required key missing")
	// ErrInvalidFileFormat is returned when FILE_FORMAT is not a positive integer.
	ErrInvalidFileFormat = errors.New("FILE_FORMAT must be a positive integer")
	// ErrInvalidTimestamp is returned when FILE_TIMESTAMP does not look like [D-]Mon-20YY.
	ErrInvalidTimestamp = errors.New("FILE_TIMESTAMP must look like [D-]Mon-20YY")
	// ErrBaselineMissing is returned when the baseline version is absent from VALID_VERSIONS.
	ErrBaselineMissing = errors.New("baseline version missing from VALID_VERSIONS")

	timestampPattern = regexp.MustCompile(`^(\d+-)?(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)-20\d\d$`)
)

type (
	// BuildOptions tunes Build. The zero value uses ProductSection and version.Baseline.
	BuildOptions struct {
		// Product overrides the expected name of the first section.
		Product string
		// Baseline overrides the version that must appear in VALID_VERSIONS.
		Baseline version.Version
		// Logger receives debug output; nil discards it.
		Logger *log.Logger
	}

	// BuildResult carries the registry and every collected diagnostic.
	BuildResult struct {
		Registry    *Registry
		Diagnostics []cfgdoc.Diagnostic
	}

	// HeaderError is a fatal problem with the document as a whole.
	HeaderError struct {
		File  string
		Key   string
		Value string
		Err   error
	}

	builder struct {
		doc   *cfgdoc.Document
		opts  BuildOptions
		reg   *Registry
		diags []cfgdoc.Diagnostic
	}
)

// Error implements the error interface.
func (e *HeaderError) Error() string {
	var b strings.Builder
	b.WriteString(e.File)
	b.WriteString(": ")
	if e.Key != "" {
		b.WriteString(e.Key)
		if e.Value != "" {
			fmt.Fprintf(&b, "=%q", e.Value)
		}
		b.WriteString(": ")
	}
	b.WriteString(e.Err.Error())
	return b.String()
}

// Unwrap returns the underlying sentinel error.
func (e *HeaderError) Unwrap() error { return e.Err }

// Valid reports whether the registry was built without diagnostics.
func (r BuildResult) Valid() bool {
	return r.Registry != nil && len(r.Diagnostics) == 0
}

// Build interprets a parsed feature file. Fatal problems are returned as an
// error (a *HeaderError); everything else is collected in the result so all
// findings can be reported at once. The returned registry is usable for
// lookups even when diagnostics were collected, but callers must not run an
// assessment against an invalid registry.
func Build(doc *cfgdoc.Document, opts BuildOptions) (BuildResult, error) {
	if opts.Product == "" {
		opts.Product = ProductSection
	}
	if opts.Baseline == "" {
		opts.Baseline = version.Baseline
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	b := &builder{
		doc:  doc,
		opts: opts,
		reg: &Registry{
			file:    doc.Name,
			product: opts.Product,
			index:   make(map[string]*Section),
		},
	}

	sections := doc.Sections()
	if len(sections) < MinSections {
		return BuildResult{}, &HeaderError{
			File: doc.Name,
			Err:  fmt.Errorf("%w: found %d, need at least %d", ErrTooFewSections, len(sections), MinSections),
		}
	}
	if sections[0].Name != opts.Product {
		return BuildResult{}, &HeaderError{
			File: doc.Name,
			Err:  fmt.Errorf("%w: expected [%s], found [%s]", ErrMissingProductSection, opts.Product, sections[0].Name),
		}
	}
	if err := b.header(sections[0]); err != nil {
		return BuildResult{Diagnostics: b.diags}, err
	}
	if !b.reg.catalog.Contains(opts.Baseline) {
		return BuildResult{Diagnostics: b.diags}, &HeaderError{
			File: doc.Name,
			Key:  tagValidVersions,
			Err:  fmt.Errorf("%w: %s", ErrBaselineMissing, opts.Baseline),
		}
	}

	for _, s := range sections[1:] {
		b.section(s)
	}

	opts.Logger.Debug("feature file interpreted",
		"file", doc.Name,
		"sections", len(b.reg.sections),
		"versions", b.reg.catalog.Len(),
		"diagnostics", len(b.diags))

	return BuildResult{Registry: b.reg, Diagnostics: b.diags}, nil
}

func (b *builder) header(s *cfgdoc.Section) error {
	_, raw, ok := s.Lookup(tagValidVersions)
	if !ok {
		return b.headerErr(tagValidVersions, "", ErrMissingHeaderKey)
	}
	catalog, errs := version.Load(raw)
	for _, err := range errs {
		b.diag(cfgdoc.CodeInvalidVersion, s.Name, tagValidVersions, err.Error())
	}
	b.reg.catalog = catalog

	_, format, ok := s.Lookup(tagFileFormat)
	if !ok {
		return b.headerErr(tagFileFormat, "", ErrMissingHeaderKey)
	}
	n, err := strconv.Atoi(format)
	if err != nil || n < 1 {
		return b.headerErr(tagFileFormat, format, ErrInvalidFileFormat)
	}
	b.reg.fileFormat = n

	_, stamp, ok := s.Lookup(tagFileTimestamp)
	if !ok {
		return b.headerErr(tagFileTimestamp, "", ErrMissingHeaderKey)
	}
	if !timestampPattern.MatchString(stamp) {
		return b.headerErr(tagFileTimestamp, stamp, ErrInvalidTimestamp)
	}
	b.reg.timestamp = stamp

	for _, raw := range s.Keys() {
		key, _ := ParseKey(raw)
		switch key.Kind {
		case KeyValidVersions, KeyFileFormat, KeyFileTimestamp:
		default:
			b.diag(cfgdoc.CodeUnknownKey, s.Name, raw, "key not allowed in the product section")
		}
	}
	return nil
}

func (b *builder) headerErr(key, value string, err error) error {
	if errors.Is(err, ErrMissingHeaderKey) {
		err = fmt.Errorf("%w in [%s]", err, b.opts.Product)
	}
	return &HeaderError{File: b.doc.Name, Key: key, Value: value, Err: err}
}

func (b *builder) section(src *cfgdoc.Section) {
	sec := newSection(src.Name)

	// LIST first, so cross-checks see it regardless of key order.
	for _, raw := range src.Keys() {
		if strings.EqualFold(raw, tagList) {
			value, _ := src.Value(raw)
			sec.hasList = true
			for _, item := range cfgdoc.SplitList(value) {
				sec.addListItem(FoldName(item))
			}
		}
	}

	for _, raw := range src.Keys() {
		value, _ := src.Value(raw)
		key, err := ParseKey(raw)
		if errors.Is(err, ErrUnknownKey) {
			b.diag(cfgdoc.CodeUnknownKey, src.Name, raw, "unknown key; remaining keys of this section are skipped")
			break
		}
		if err != nil {
			b.diag(CodeFor(err), src.Name, raw, err.Error())
			continue
		}

		switch key.Kind {
		case KeyList:
			sec.set(NewEntry(key, sec.List()))
		case KeyRule:
			sec.set(NewEntry(key, []string{value}))
		case KeySupported:
			b.supported(sec, key, value)
		case KeyDefaultClassification:
			if entry, ok := ClassificationEntry(key, value, b.checker(sec, raw)); ok {
				sec.set(entry)
			} else {
				b.diag(cfgdoc.CodeInvalidClassification, src.Name, raw, (&InvalidStatusError{Value: value}).Error())
			}
		case KeyReportGroup:
			sec.set(GroupEntry(key, value, b.checker(sec, raw)))
		default:
			b.diag(cfgdoc.CodeUnknownKey, src.Name, raw, fmt.Sprintf("%s is only allowed in [%s]", key.Kind, b.opts.Product))
		}
	}

	if wild := sec.wildcardItems(); len(wild) > 0 {
		sec.set(NewEntry(Key{Kind: KeyWildcard, Raw: tagWildcard}, wild))
	}

	b.reg.sections = append(b.reg.sections, sec)
	b.reg.index[strings.ToUpper(sec.name)] = sec
}

func (b *builder) supported(sec *Section, key Key, value string) {
	catalog := b.reg.catalog
	valid := true
	if !catalog.IsValid(key.Range.Min, false) {
		b.diag(cfgdoc.CodeInvalidVersion, sec.name, key.Raw, fmt.Sprintf("version %s is not in %s", key.Range.Min, tagValidVersions))
		valid = false
	}
	if key.Range.IsBounded() && !catalog.IsValid(key.Range.Max, true) {
		b.diag(cfgdoc.CodeInvalidVersion, sec.name, key.Raw, fmt.Sprintf("version %s is not in %s", key.Range.Max, tagValidVersions))
		valid = false
	}
	if !valid {
		return
	}

	var items []string
	if key.ArgSlot > 0 {
		if sec.argSlot == 0 {
			sec.argSlot = key.ArgSlot
		}
		for _, v := range cfgdoc.SplitList(value) {
			items = append(items, FoldArg(v))
		}
	} else {
		items = FoldItems(value, b.checker(sec, key.Raw))
	}
	sec.set(NewEntry(key, items))
}

// checker returns the LIST cross-check for one key of sec. Unlisted items
// are reported and then added to the LIST so later lookups still find them.
func (b *builder) checker(sec *Section, raw string) func(string) {
	return func(item string) {
		if item == AllItems || sec.Has(item) {
			return
		}
		b.diag(cfgdoc.CodeUnlistedItem, sec.name, raw, fmt.Sprintf("item %q is not in LIST", item))
		sec.addListItem(item)
	}
}

func (b *builder) diag(code cfgdoc.DiagnosticCode, section, key, msg string) {
	b.diags = append(b.diags, cfgdoc.Diagnostic{
		Code:    code,
		File:    b.doc.Name,
		Section: section,
		Key:     key,
		Message: msg,
	})
}

// ClassificationEntry interprets a DEFAULT_CLASSIFICATION key. The bare key
// must carry a single classification label. A specific key whose value is
// AllItems is rewritten to the bare key with its status as the value;
// otherwise its items are folded and passed to check. ok is false when the
// bare value is not a classification label.
func ClassificationEntry(key Key, value string, check func(string)) (entry Entry, ok bool) {
	if key.IsSpecific() {
		if strings.TrimSpace(value) == AllItems {
			return NewEntry(key.Bare(), []string{string(key.Status)}), true
		}
		return NewEntry(key, FoldItems(value, check)), true
	}
	values := cfgdoc.SplitList(value)
	if len(values) != 1 {
		return Entry{}, false
	}
	st, err := ParseStatus(values[0])
	if err != nil {
		return Entry{}, false
	}
	return NewEntry(key, []string{string(st)}), true
}

// GroupEntry interprets a REPORT_GROUP key. A specific key whose value is
// AllItems is rewritten to the bare key with the group as the value. Bare
// values are kept verbatim.
func GroupEntry(key Key, value string, check func(string)) Entry {
	if key.IsSpecific() {
		if strings.TrimSpace(value) == AllItems {
			return NewEntry(key.Bare(), []string{key.Group})
		}
		return NewEntry(key, FoldItems(value, check))
	}
	return NewEntry(key, cfgdoc.SplitList(value))
}

// FoldItems splits value into uppercased item names, passing each to check
// when it is non-nil.
func FoldItems(value string, check func(string)) []string {
	parts := cfgdoc.SplitList(value)
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		item := FoldName(p)
		if check != nil {
			check(item)
		}
		items = append(items, item)
	}
	return items
}

// CodeFor maps a ParseKey error to the diagnostic code reported for it.
func CodeFor(err error) cfgdoc.DiagnosticCode {
	switch {
	case errors.Is(err, ErrInvalidStatus):
		return cfgdoc.CodeInvalidClassification
	case errors.Is(err, ErrEmptyGroup):
		return cfgdoc.CodeInvalidGroup
	case errors.Is(err, ErrInvalidArgSlot):
		return cfgdoc.CodeInvalidArgSlot
	case errors.Is(err, version.ErrInvalidRange):
		return cfgdoc.CodeInvalidRange
	default:
		return cfgdoc.CodeUnknownKey
	}
}
