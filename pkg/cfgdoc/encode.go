// SPDX-License-Identifier: MPL-2.0

package cfgdoc

import (
	"bufio"
	"io"
)

// Encode writes d in canonical form followed by a checksum line computed
// from its contents. The output parses back with VerifyChecksum set.
func Encode(w io.Writer, d *Document) error {
	bw := bufio.NewWriter(w)
	for i, s := range d.sections {
		if i > 0 {
			bw.WriteString("\n")
		}
		bw.WriteString("[" + EscapeComment(s.Name) + "]\n")
		for _, k := range s.keys {
			bw.WriteString(EscapeComment(k) + "=" + EscapeComment(s.values[k]) + "\n")
		}
	}
	bw.WriteString("\n" + ChecksumPrefix + d.Checksum() + "\n")
	return bw.Flush()
}
