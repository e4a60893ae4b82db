// SPDX-License-Identifier: MPL-2.0

package compat

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/features"
	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/overrides"
	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/version"

	"github.com/charmbracelet/log"
)

var (
	// ErrUnknownSection is returned for queries naming a section the
	// registry does not contain.
	ErrUnknownSection = errors.New("unknown section")
	// ErrNilRegistry is returned by New without a registry.
	ErrNilRegistry = errors.New("registry is required")
)

// Prefixes of call arguments whose value cannot be known statically.
const (
	variablePrefix   = "@"
	expressionPrefix = "("
)

type (
	// Options configures a Resolver.
	Options struct {
		// Logger receives override notices; nil discards them.
		Logger *log.Logger
	}

	// Query names what to look up. Name and Arg are optional; Arg is the
	// value of the section's argument slot in a call.
	Query struct {
		Section string
		Name    string
		Arg     string
	}

	// Resolver answers compatibility queries. It is safe for concurrent use
	// since neither the registry nor the layer change after construction.
	Resolver struct {
		reg    *features.Registry
		layer  *overrides.Layer
		logger *log.Logger
	}

	// SectionError is returned for a query against an unknown section.
	SectionError struct {
		Section string
	}
)

// Error implements the error interface.
func (e *SectionError) Error() string {
	return fmt.Sprintf("section [%s] does not exist", e.Section)
}

// Unwrap returns ErrUnknownSection for errors.Is() compatibility.
func (e *SectionError) Unwrap() error { return ErrUnknownSection }

// New creates a resolver. layer may be nil when no user file is in use.
func New(reg *features.Registry, layer *overrides.Layer, opts Options) (*Resolver, error) {
	if reg == nil {
		return nil, ErrNilRegistry
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Resolver{reg: reg, layer: layer, logger: opts.Logger}, nil
}

// Registry returns the base registry.
func (r *Resolver) Registry() *features.Registry { return r.reg }

// OverrideCount returns the number of override keys in force.
func (r *Resolver) OverrideCount() int { return r.layer.Len() }

// Exists reports whether the section is known.
func (r *Resolver) Exists(section string) bool { return r.reg.Exists(section) }

// ItemExists reports whether name is an item of section.
func (r *Resolver) ItemExists(section, name string) bool {
	return r.reg.ItemExists(section, name)
}

// ArgSlot returns the argument slot the section validates, if any.
func (r *Resolver) ArgSlot(section string) (int, bool) {
	s, ok := r.reg.Section(section)
	if !ok || s.ArgSlot() == 0 {
		return 0, false
	}
	return s.ArgSlot(), true
}

// ValueList returns the LIST items of section, or nil.
func (r *Resolver) ValueList(section string) []string {
	return r.reg.ValueList(section)
}

// Status returns the classification of a section (empty name) or of one of
// its items. Without any matching key the result is NotSupported.
func (r *Resolver) Status(section, name string) (features.Status, error) {
	s, err := r.section(section)
	if err != nil {
		return "", err
	}
	status, ok := s.Status(name)
	if !ok {
		status = features.StatusNotSupported
	}

	if o, found := r.layer.Section(section); found {
		if st, ok := o.Status(name); ok {
			if st != status {
				r.logger.Info("classification overridden",
					"section", s.Name(), "name", name, "from", status, "to", st)
			}
			status = st
		}
	}
	return status, nil
}

// Group returns the report group of a section (empty name) or of one of its
// items. The result is empty when no key assigns a group.
func (r *Resolver) Group(section, name string) (string, error) {
	s, err := r.section(section)
	if err != nil {
		return "", err
	}
	group, _ := s.Group(name)

	if o, found := r.layer.Section(section); found {
		if g, ok := o.Group(name); ok {
			if g != group {
				r.logger.Info("report group overridden",
					"section", s.Name(), "name", name, "from", group, "to", g)
			}
			group = g
		}
	}
	return group, nil
}

// Supported returns Supported when a SUPPORTED key covers the query at the
// requested version and the classification otherwise. With q.Arg set, the
// argument value is matched against the section's argument keys; a value
// that is a variable reference or an expression needs manual review.
func (r *Resolver) Supported(requested version.Version, q Query) (features.Status, error) {
	if ok, errs := requested.IsValid(); !ok {
		return "", errors.Join(errs...)
	}
	s, err := r.section(q.Section)
	if err != nil {
		return "", err
	}

	if q.Arg != "" {
		arg := strings.TrimSpace(q.Arg)
		if strings.HasPrefix(arg, variablePrefix) || strings.HasPrefix(arg, expressionPrefix) {
			return features.StatusReviewManually, nil
		}
		if s.Supports(requested, arg, true) {
			return features.StatusSupported, nil
		}
	} else if s.Supports(requested, q.Name, false) {
		return features.StatusSupported, nil
	}

	return r.Status(q.Section, q.Name)
}

// MinimumVersion returns the lowest version from which the query is
// supported. ok is false when no SUPPORTED key matches.
func (r *Resolver) MinimumVersion(q Query) (v version.Version, ok bool, err error) {
	s, err := r.section(q.Section)
	if err != nil {
		return "", false, err
	}
	if q.Arg != "" {
		v, ok = s.MinimumVersion(q.Arg, true)
	} else {
		v, ok = s.MinimumVersion(q.Name, false)
	}
	return v, ok, nil
}

func (r *Resolver) section(name string) (*features.Section, error) {
	s, ok := r.reg.Section(name)
	if !ok {
		return nil, &SectionError{Section: name}
	}
	return s, nil
}
