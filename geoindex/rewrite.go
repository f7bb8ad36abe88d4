package geoindex

import (
	"io"

	"github.com/grailbio/base/errors"
)

// RewriteTable walks idx.Nodes in array order and, for every leaf, copies
// the record bytes it currently addresses (offset/length into source) to
// w, then updates the leaf's offset (V1) to its new position in the
// packed stream; the length (V2) is unchanged. After this pass leaves
// address the packed table, not the original source buffer, and source
// is no longer needed at query time. It must run once, directly after
// Build, before the index is serialized.
func (idx *Index) RewriteTable(source []byte, w io.Writer) error {
	var packedOffset uint64
	for i := range idx.Nodes {
		n := &idx.Nodes[i]
		if !n.IsLeaf {
			continue
		}
		start, length := n.V1, n.V2
		if start > uint64(len(source)) || start+length > uint64(len(source)) {
			return errors.Errorf("geoindex.RewriteTable: leaf range [%d,%d) out of bounds for source of length %d", start, start+length, len(source))
		}
		record := source[start : start+length]
		written, err := w.Write(record)
		if err != nil {
			return errors.E(err, "geoindex.RewriteTable: write packed record")
		}
		if uint64(written) != length {
			return errors.Errorf("geoindex.RewriteTable: short write: wrote %d of %d bytes", written, length)
		}
		n.V1 = packedOffset
		packedOffset += length
	}
	return nil
}
