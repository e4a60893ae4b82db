// SPDX-License-Identifier: MPL-2.0

package overrides

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/cfgdoc"
	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/features"

	"github.com/charmbracelet/log"
)

const userFilePerm = 0o644

// skeletonHeader opens a freshly created user file.
const skeletonHeader = `# User overrides for the feature file.
# Add DEFAULT_CLASSIFICATION[-<status>] or REPORT_GROUP[-<group>] keys
# below a section header to replace the shipped values.
`

type (
	// SyncOptions tunes Sync.
	SyncOptions struct {
		// Logger receives progress output; nil discards it.
		Logger *log.Logger
		// DryRun reports what would change without writing the file.
		DryRun bool
	}

	// SyncResult describes the user file after Sync.
	SyncResult struct {
		Result
		// Path is the user file location.
		Path string
		// Created is set when the file did not exist before.
		Created bool
		// Added lists the section headers appended to the file.
		Added []string
	}
)

// Load reads the user file at path without modifying it. A missing file
// yields an empty, valid layer. Syntax errors are fatal.
func Load(path string, reg *features.Registry) (Result, error) {
	doc, err := cfgdoc.ParseFile(path, false)
	if errors.Is(err, fs.ErrNotExist) {
		return Result{Layer: Empty()}, nil
	}
	if err != nil {
		return Result{}, err
	}
	return Build(doc, reg), nil
}

// Sync brings the user file at path in step with reg. A missing file is
// created with one empty header per feature section. An existing file is
// validated, and headers for the sections it lacks are appended with the
// existing content left untouched. Validity does not stop the append.
func Sync(path string, reg *features.Registry, opts SyncOptions) (SyncResult, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	res := SyncResult{Path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		res.Result = Result{Layer: Empty()}
		res.Created = true
		res.Added = reg.SectionNames()
		if !opts.DryRun {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return res, fmt.Errorf("failed to create directory for %s: %w", path, err)
			}
			if err := cfgdoc.WriteFileAtomic(path, Skeleton(reg), userFilePerm); err != nil {
				return res, err
			}
		}
		opts.Logger.Info("created user file", "path", path, "sections", len(res.Added))
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := cfgdoc.Parse(bytes.NewReader(data), cfgdoc.ParseOptions{Name: path})
	if err != nil {
		return res, err
	}
	res.Result = Build(doc, reg)
	res.Added = Missing(doc, reg)
	if len(res.Added) == 0 {
		return res, nil
	}

	if !opts.DryRun {
		if err := cfgdoc.WriteFileAtomic(path, appendHeaders(data, res.Added), userFilePerm); err != nil {
			return res, err
		}
	}
	opts.Logger.Info("added sections to user file", "path", path, "sections", len(res.Added))
	return res, nil
}

// Skeleton renders a user file with an empty header for every feature
// section of reg, in registry order.
func Skeleton(reg *features.Registry) []byte {
	var b strings.Builder
	b.WriteString(skeletonHeader)
	for _, name := range reg.SectionNames() {
		b.WriteString("\n[" + cfgdoc.EscapeComment(name) + "]\n")
	}
	return []byte(b.String())
}

// Missing returns the feature sections of reg that doc does not mention,
// in registry order.
func Missing(doc *cfgdoc.Document, reg *features.Registry) []string {
	var missing []string
	for _, name := range reg.SectionNames() {
		if _, ok := doc.Section(name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

func appendHeaders(data []byte, names []string) []byte {
	var b bytes.Buffer
	b.Write(data)
	if len(data) > 0 && !bytes.HasSuffix(data, []byte("\n")) {
		b.WriteByte('\n')
	}
	for _, name := range names {
		b.WriteString("\n[" + cfgdoc.EscapeComment(name) + "]\n")
	}
	return b.Bytes()
}
