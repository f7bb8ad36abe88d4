// Package geoindex implements the flat-array bulk-loaded spatial index:
// median-split construction, next-pointer threading, paginated bbox
// queries, and the binary sidecar format the index round-trips through.
package geoindex

import "github.com/geospan/geospan/bbox"

// Node is a single record of the node array. It is either an internal
// node (V1/V2 index its left/right children) or a leaf (V1/V2 address a
// byte range in the packed table). Next threads the array so a query can
// resume traversal without a parent stack; Next == 0 at the root means
// "end of traversal," since index 0 is the root and nothing threads back
// to it.
type Node struct {
	BBox   bbox.BBox
	IsLeaf bool
	V1, V2 uint64
	Next   uint64
}

// Leaf returns a new leaf node referencing table[offset : offset+length].
func Leaf(box bbox.BBox, offset, length uint64) Node {
	return Node{BBox: box, IsLeaf: true, V1: offset, V2: length}
}

// Internal returns a new internal node with no children wired yet; the
// caller fills V1/V2 once both subtrees have been built.
func Internal(box bbox.BBox) Node {
	return Node{BBox: box, IsLeaf: false}
}

// Entry is a transient (bbox, source byte range) pair produced by an
// InputReader and consumed by Build; it does not survive past index
// construction.
type Entry struct {
	BBox   bbox.BBox
	Offset uint64
	Length uint64
}
