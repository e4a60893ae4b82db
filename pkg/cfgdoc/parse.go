// SPDX-License-Identifier: MPL-2.0

package cfgdoc

import (
	"bufio"
	"bytes"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"strings"
)

const (
	// ChecksumPrefix starts the comment line that carries the file checksum.
	ChecksumPrefix = "#file checksum="

	checksumLen = 8
	maxLineSize = 1024 * 1024
)

// ParseOptions controls how a document is read.
type ParseOptions struct {
	// Name labels the document in errors (usually the file path).
	Name string
	// VerifyChecksum requires a checksum line matching the contents.
	// Set it for the trusted base file only.
	VerifyChecksum bool
}

type parser struct {
	opts    ParseOptions
	doc     *Document
	current *Section
	crc     uint32
	lineNo  int
	stored  string
	sawSum  bool
}

// ParseFile reads and parses the file at path.
func ParseFile(path string, verifyChecksum bool) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(bytes.NewReader(data), ParseOptions{Name: path, VerifyChecksum: verifyChecksum})
}

// Parse reads a document from r. Syntax errors are fatal and returned as
// *ParseError; integrity failures of a verified document as *ChecksumError.
func Parse(r io.Reader, opts ParseOptions) (*Document, error) {
	p := &parser{opts: opts, doc: NewDocument(opts.Name)}
	if err := p.run(r); err != nil {
		return nil, err
	}

	p.doc.StoredChecksum = p.stored
	if opts.VerifyChecksum {
		if err := p.verify(); err != nil {
			return nil, err
		}
	}
	return p.doc, nil
}

// ComputeChecksum parses r without verifying it and returns the checksum
// computed over its contents.
func ComputeChecksum(r io.Reader, name string) (string, error) {
	p := &parser{opts: ParseOptions{Name: name}, doc: NewDocument(name)}
	if err := p.run(r); err != nil {
		return "", err
	}
	return formatChecksum(p.crc), nil
}

func (p *parser) run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		p.lineNo++
		if err := p.line(strings.TrimSuffix(scanner.Text(), "\r")); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", p.opts.Name, err)
	}
	return nil
}

func (p *parser) line(raw string) error {
	if strings.HasPrefix(raw, ChecksumPrefix) {
		if !p.sawSum {
			p.stored = strings.TrimSpace(raw[len(ChecksumPrefix):])
			p.sawSum = true
		}
		return nil
	}

	text := strings.TrimSpace(StripComment(raw))
	if text == "" {
		return nil
	}

	if strings.HasPrefix(text, "[") {
		end := strings.Index(text, "]")
		if end < 0 {
			return p.fail(raw, ErrMissingBracket)
		}
		name := strings.TrimSpace(text[1:end])
		s, err := p.doc.AddSection(name)
		if err != nil {
			return p.fail(raw, err)
		}
		s.Line = p.lineNo
		p.current = s
		p.feed(name)
		return nil
	}

	if p.current == nil {
		return p.fail(raw, ErrNoSection)
	}
	key, value, found := strings.Cut(text, "=")
	if !found {
		return p.fail(raw, ErrMissingEquals)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return p.fail(raw, ErrEmptyKey)
	}
	value = NormalizeList(value)
	if value == "" {
		return p.fail(raw, ErrEmptyValue)
	}
	if err := p.current.Set(key, value); err != nil {
		return p.fail(raw, err)
	}
	p.feed(key)
	p.feed(value)
	return nil
}

func (p *parser) feed(s string) {
	p.crc = crc32.Update(p.crc, crc32.IEEETable, []byte(s))
}

func (p *parser) fail(raw string, err error) error {
	return &ParseError{File: p.opts.Name, Line: p.lineNo, Text: raw, Err: err}
}

func (p *parser) verify() error {
	computed := formatChecksum(p.crc)
	switch {
	case !p.sawSum:
		return &ChecksumError{File: p.opts.Name, Computed: computed, Err: ErrChecksumMissing}
	case len(p.stored) != checksumLen:
		return &ChecksumError{File: p.opts.Name, Stored: p.stored, Computed: computed, Err: ErrChecksumMalformed}
	case p.stored != computed:
		return &ChecksumError{File: p.opts.Name, Stored: p.stored, Computed: computed, Err: ErrChecksumMismatch}
	}
	return nil
}

// StripComment removes a trailing comment from line. A doubled comment
// character is a literal and is collapsed to a single character.
func StripComment(line string) string {
	if !strings.ContainsAny(line, "#;") {
		return line
	}
	var b strings.Builder
	b.Grow(len(line))
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == '#' || c == ';' {
			if i+1 < len(line) && line[i+1] == c {
				b.WriteByte(c)
				i++
				continue
			}
			break
		}
		b.WriteByte(c)
	}
	return b.String()
}

// EscapeComment doubles every comment character so that StripComment
// returns s unchanged.
func EscapeComment(s string) string {
	return strings.NewReplacer("#", "##", ";", ";;").Replace(s)
}
