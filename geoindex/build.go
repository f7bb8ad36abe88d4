package geoindex

import (
	"sort"

	"github.com/geospan/geospan/bbox"
	"github.com/grailbio/base/errors"
)

// Index owns a built or loaded NodeArray and serves queries against it.
type Index struct {
	Nodes []Node
}

// Build bulk-loads entries into a new Index via recursive median split,
// choosing the split axis per subtree by the orientation of its covering
// bbox, then threads the resulting array's Next pointers. entries must be
// non-empty; an empty input returns an error. The database façade never
// reaches that case, since reader.Read already fails with "no records".
func Build(entries []Entry) (*Index, error) {
	if len(entries) == 0 {
		return nil, errors.E("geoindex.Build: no entries")
	}
	b := &builder{nodes: make([]Node, 0, 2*len(entries)-1)}
	root := b.build(entries)
	if root != 0 {
		return nil, errors.Errorf("geoindex.Build: expected root at index 0, got %d", root)
	}
	idx := &Index{Nodes: b.nodes}
	idx.thread()
	return idx, nil
}

type builder struct {
	nodes []Node
}

// build emits entries' covering subtree in pre-order (parent, then the
// entire left subtree, then the entire right subtree) and returns the
// index of the node it just emitted for this slice.
func (b *builder) build(entries []Entry) uint64 {
	if len(entries) == 1 {
		e := entries[0]
		idx := uint64(len(b.nodes))
		b.nodes = append(b.nodes, Leaf(e.BBox, e.Offset, e.Length))
		return idx
	}

	union := bbox.Empty()
	for _, e := range entries {
		union.IncludeBBox(e.BBox)
	}

	if union.IsHorizontal() {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].BBox.SumX() < entries[j].BBox.SumX()
		})
	} else {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].BBox.SumY() < entries[j].BBox.SumY()
		})
	}

	idx := uint64(len(b.nodes))
	b.nodes = append(b.nodes, Internal(union))

	mid := len(entries) / 2
	left := b.build(entries[:mid])
	right := b.build(entries[mid:])
	b.nodes[idx].V1 = left
	b.nodes[idx].V2 = right
	return idx
}

// thread walks the finished array in ascending index order and, for every
// internal node's children (L, R), sets N[L].Next = R and N[R].Next =
// N[parent].Next. The root's Next is left at its zero value.
func (idx *Index) thread() {
	for i := range idx.Nodes {
		n := idx.Nodes[i]
		if n.IsLeaf {
			continue
		}
		l, r := n.V1, n.V2
		idx.Nodes[l].Next = r
		idx.Nodes[r].Next = n.Next
	}
}

// NumLeaves returns the number of leaf nodes in the array.
func (idx *Index) NumLeaves() int {
	count := 0
	for _, n := range idx.Nodes {
		if n.IsLeaf {
			count++
		}
	}
	return count
}
