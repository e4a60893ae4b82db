// SPDX-License-Identifier: MPL-2.0

package cfgdoc

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ChecksumUpdate describes the outcome of UpdateChecksum.
type ChecksumUpdate struct {
	Path     string
	Previous string
	Current  string
	// Inserted is set when the file had no checksum line before.
	Inserted bool
}

// Changed reports whether the file contents were modified.
func (u ChecksumUpdate) Changed() bool {
	return u.Inserted || u.Previous != u.Current
}

// UpdateChecksum recomputes the checksum of the file at path and writes it
// back, replacing the existing checksum line or appending one. The file must
// still be syntactically valid.
func UpdateChecksum(path string) (ChecksumUpdate, error) {
	info, err := os.Stat(path)
	if err != nil {
		return ChecksumUpdate{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ChecksumUpdate{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	sum, err := ComputeChecksum(bytes.NewReader(data), path)
	if err != nil {
		return ChecksumUpdate{}, err
	}

	result := ChecksumUpdate{Path: path, Current: sum, Inserted: true}
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, ChecksumPrefix) {
			result.Previous = strings.TrimSpace(line[len(ChecksumPrefix):])
			result.Inserted = false
			lines[i] = ChecksumPrefix + sum
			break
		}
	}
	if result.Inserted {
		if n := len(lines); n > 0 && lines[n-1] == "" {
			lines = lines[:n-1]
		}
		lines = append(lines, ChecksumPrefix+sum, "")
	}
	if !result.Changed() {
		return result, nil
	}

	if err := WriteFileAtomic(path, []byte(strings.Join(lines, "\n")), info.Mode().Perm()); err != nil {
		return ChecksumUpdate{}, err
	}
	return result, nil
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers never observe a partially written file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name()) // Best-effort cleanup of the temp file
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
