package geoindex

import (
	"testing"

	"github.com/geospan/geospan/bbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pointEntry(x, y float32, off, length uint64) Entry {
	return Entry{BBox: bbox.Point(x, y), Offset: off, Length: length}
}

func TestBuildSingleEntry(t *testing.T) {
	idx, err := Build([]Entry{pointEntry(1, 2, 0, 17)})
	require.NoError(t, err)
	require.Len(t, idx.Nodes, 1)
	root := idx.Nodes[0]
	assert.True(t, root.IsLeaf)
	assert.Equal(t, uint64(0), root.V1)
	assert.Equal(t, uint64(17), root.V2)
	assert.Equal(t, uint64(0), root.Next)
}

func TestBuildEmptyFails(t *testing.T) {
	_, err := Build(nil)
	assert.Error(t, err)
}

func TestBuildLayoutInvariants(t *testing.T) {
	entries := []Entry{
		pointEntry(0, 0, 0, 1),
		pointEntry(1, 1, 1, 1),
		pointEntry(2, 2, 2, 1),
		pointEntry(3, 3, 3, 1),
		pointEntry(4, 4, 4, 1),
	}
	idx, err := Build(entries)
	require.NoError(t, err)
	assert.Equal(t, 2*len(entries)-1, len(idx.Nodes))
	assert.Equal(t, 5, idx.NumLeaves())

	for i, n := range idx.Nodes {
		if n.IsLeaf {
			continue
		}
		assert.Greater(t, n.V1, uint64(i), "left child must be at a higher index than parent")
		assert.Greater(t, n.V2, uint64(i), "right child must be at a higher index than parent")
		assert.Greater(t, n.V2, n.V1, "right child index must exceed left child index")
	}
	assert.Equal(t, uint64(0), idx.Nodes[0].Next, "root's Next must stay 0")
}

func TestThreadVisitsEveryLeafOnce(t *testing.T) {
	entries := []Entry{
		pointEntry(0, 0, 0, 1),
		pointEntry(1, 1, 1, 1),
		pointEntry(2, 2, 2, 1),
		pointEntry(3, 3, 3, 1),
		pointEntry(4, 4, 4, 1),
		pointEntry(5, 5, 5, 1),
		pointEntry(6, 6, 6, 1),
	}
	idx, err := Build(entries)
	require.NoError(t, err)

	i := uint64(0)
	for !idx.Nodes[i].IsLeaf {
		i = idx.Nodes[i].V1
	}
	seen := map[uint64]bool{}
	for {
		n := idx.Nodes[i]
		if !n.IsLeaf {
			// Next may land on an internal node: a whole subtree still to
			// visit, entered through its left child.
			i = n.V1
			continue
		}
		require.False(t, seen[i], "thread from the leftmost leaf must reach each leaf only once")
		seen[i] = true
		if n.Next == 0 {
			break
		}
		i = n.Next
	}
	assert.Equal(t, idx.NumLeaves(), len(seen))
}

func TestCoverageInvariant(t *testing.T) {
	entries := []Entry{
		pointEntry(0, 5, 0, 1),
		pointEntry(2, 1, 1, 1),
		pointEntry(-3, 8, 2, 1),
		pointEntry(9, -2, 3, 1),
	}
	idx, err := Build(entries)
	require.NoError(t, err)
	for i, n := range idx.Nodes {
		if n.IsLeaf {
			continue
		}
		want := bbox.Empty()
		want.IncludeBBox(idx.Nodes[n.V1].BBox)
		want.IncludeBBox(idx.Nodes[n.V2].BBox)
		assert.Equal(t, want, n.BBox, "internal node %d bbox must equal union of its children", i)
	}
}
