// Package bbox implements axis-aligned bounding boxes over float32
// coordinates, the basic unit the spatial index sorts and tests records by.
package bbox

import "math"

// BBox is an axis-aligned bounding box. MinX/MinY/MaxX/MaxY are inclusive.
type BBox struct {
	MinX, MaxX, MinY, MaxY float32
}

// New returns the bbox with the given bounds. It does not require
// minX <= maxX; callers that need a single point should use Point.
func New(minX, maxX, minY, maxY float32) BBox {
	return BBox{MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY}
}

// Point returns the degenerate bbox covering exactly (x, y).
func Point(x, y float32) BBox {
	return BBox{MinX: x, MaxX: x, MinY: y, MaxY: y}
}

// Empty returns the identity bbox for IncludeBBox/IncludePoint: including
// any real point or bbox into it yields that point or bbox unchanged.
func Empty() BBox {
	return BBox{
		MinX: float32(math.Inf(1)),
		MaxX: float32(math.Inf(-1)),
		MinY: float32(math.Inf(1)),
		MaxY: float32(math.Inf(-1)),
	}
}

// IncludePoint grows b, in place, to cover (x, y).
func (b *BBox) IncludePoint(x, y float32) {
	if b.MinX > x {
		b.MinX = x
	}
	if b.MaxX < x {
		b.MaxX = x
	}
	if b.MinY > y {
		b.MinY = y
	}
	if b.MaxY < y {
		b.MaxY = y
	}
}

// IncludeBBox grows b, in place, to cover other.
func (b *BBox) IncludeBBox(other BBox) {
	if b.MinX > other.MinX {
		b.MinX = other.MinX
	}
	if b.MaxX < other.MaxX {
		b.MaxX = other.MaxX
	}
	if b.MinY > other.MinY {
		b.MinY = other.MinY
	}
	if b.MaxY < other.MaxY {
		b.MaxY = other.MaxY
	}
}

// IsHorizontal reports whether b is strictly wider than it is tall. Ties
// (square bboxes) are not horizontal, so the bulk loader splits them on Y.
func (b BBox) IsHorizontal() bool {
	return (b.MaxX - b.MinX) > (b.MaxY - b.MinY)
}

// Overlaps reports whether b and other share at least one point, with
// both axes tested inclusively (touching edges count as overlap).
func (b BBox) Overlaps(other BBox) bool {
	if b.MinX > other.MaxX || b.MaxX < other.MinX {
		return false
	}
	if b.MinY > other.MaxY || b.MaxY < other.MinY {
		return false
	}
	return true
}

// SumX returns MinX+MaxX, twice the bbox's centroid X. Used as a sort key
// so the bulk loader avoids a divide per comparison.
func (b BBox) SumX() float32 {
	return b.MinX + b.MaxX
}

// SumY returns MinY+MaxY, twice the bbox's centroid Y.
func (b BBox) SumY() float32 {
	return b.MinY + b.MaxY
}
