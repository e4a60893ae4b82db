// SPDX-License-Identifier: MPL-2.0

// Package version models product versions as they appear in the feature file.
//
// A version is a dot-separated sequence of non-negative integers ("2.3.0").
// Upper bounds of a version range may end in a wildcard segment ("2.*").
// Versions are ordered by normalizing every segment to a five-digit,
// zero-padded string (the wildcard becomes "99999") and comparing the joined
// result lexicographically. As a consequence "2.1" sorts before "2.1.0".
//
// A Catalog holds the ordered list of concrete versions declared by the
// feature file's VALID_VERSIONS key and is immutable once loaded.
package version
