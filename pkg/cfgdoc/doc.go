// SPDX-License-Identifier: MPL-2.0

// Package cfgdoc reads and writes the line-oriented feature file dialect.
//
// The dialect looks like an INI file with a few twists:
//
//   - '#' and ';' start a comment unless doubled ("##" and ";;" stand for a
//     literal '#' and ';')
//   - a "[Name]" line opens a section; names must be unique
//   - "key=v1,v2" lines belong to the open section; blank list elements are
//     dropped and the rest rejoined with ','
//   - the trusted base file ends in "#file checksum=<crc32>", a CRC-32 over
//     every section name, key and value in file order
//
// Parse produces an ordered Document. Encode writes one back out with a fresh
// checksum, and UpdateChecksum patches the checksum line of an existing file
// in place. Diagnostic is the collected, non-fatal finding type shared by the
// packages that interpret a Document.
package cfgdoc
