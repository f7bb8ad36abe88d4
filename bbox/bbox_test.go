package bbox

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAndPoint(t *testing.T) {
	b := New(1, 2, 3, 4)
	assert.Equal(t, float32(1), b.MinX)
	assert.Equal(t, float32(2), b.MaxX)
	assert.Equal(t, float32(3), b.MinY)
	assert.Equal(t, float32(4), b.MaxY)

	p := Point(5, 6)
	assert.Equal(t, BBox{MinX: 5, MaxX: 5, MinY: 6, MaxY: 6}, p)
}

func TestEmpty(t *testing.T) {
	e := Empty()
	assert.True(t, math.IsInf(float64(e.MinX), 1))
	assert.True(t, math.IsInf(float64(e.MaxX), -1))
	assert.True(t, math.IsInf(float64(e.MinY), 1))
	assert.True(t, math.IsInf(float64(e.MaxY), -1))
}

func TestIncludePoint(t *testing.T) {
	b := Empty()
	b.IncludePoint(1, 2)
	assert.Equal(t, Point(1, 2), b)
	b.IncludePoint(-1, 5)
	assert.Equal(t, New(-1, 1, 2, 5), b)
}

func TestIncludeBBox(t *testing.T) {
	b := New(1, 2, 1, 2)
	b.IncludeBBox(New(0, 3, 0, 3))
	assert.Equal(t, New(0, 3, 0, 3), b)
}

func TestIsHorizontal(t *testing.T) {
	assert.True(t, New(1, 3, 1, 2).IsHorizontal())
	assert.False(t, New(1, 2, 1, 3).IsHorizontal())
	assert.False(t, New(1, 2, 1, 2).IsHorizontal(), "square bbox splits vertically")
}

func TestOverlaps(t *testing.T) {
	assert.True(t, New(1, 3, 1, 3).Overlaps(New(2, 4, 2, 4)))
	assert.True(t, New(1, 2, 1, 2).Overlaps(New(2, 3, 2, 3)), "touching edges overlap")
	assert.False(t, New(1, 2, 1, 2).Overlaps(New(3, 4, 3, 4)))
	assert.False(t, New(1, 2, 1, 2).Overlaps(New(1, 2, 3, 4)), "x overlaps but y does not")
}

func TestSums(t *testing.T) {
	b := New(1, 3, 2, 4)
	assert.Equal(t, float32(4), b.SumX())
	assert.Equal(t, float32(6), b.SumY())
}
