package geoindex

import "github.com/geospan/geospan/bbox"

// Query performs a paginated overlap search starting at cursor (0 for the
// first call, or a previously returned nextCursor to resume). It returns
// at most cap leaves overlapping q, plus the cursor to resume from; a
// returned nextCursor of 0 means traversal is complete. cap == 0 returns
// immediately with no leaves and cursor unchanged.
func (idx *Index) Query(q bbox.BBox, cursor uint64, cap int) (leaves []Node, nextCursor uint64) {
	if cap == 0 {
		return nil, cursor
	}
	i := cursor
	for {
		n := idx.Nodes[i]
		if n.BBox.Overlaps(q) {
			if n.IsLeaf {
				leaves = append(leaves, n)
				i = n.Next
				if len(leaves) >= cap {
					break
				}
			} else {
				i = n.V1
			}
		} else {
			i = n.Next
		}
		if i == 0 {
			break
		}
	}
	return leaves, i
}
