package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectOverlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}

	assert.True(t, a.Overlaps(Rect{X: 5, Y: 5, Width: 10, Height: 10}))
	assert.True(t, a.Overlaps(Rect{X: 2, Y: 2, Width: 2, Height: 2}))
	assert.False(t, a.Overlaps(Rect{X: 10, Y: 0, Width: 5, Height: 5}), "touching edge")
	assert.False(t, a.Overlaps(Rect{X: 0, Y: 20, Width: 5, Height: 5}))
	assert.False(t, a.Overlaps(Rect{X: -10, Y: 0, Width: 5, Height: 5}))
}

func TestRectUnionSkipsEmpty(t *testing.T) {
	a := Rect{X: 10, Y: 10, Width: 10, Height: 10}
	b := Rect{X: 30, Y: 0, Width: 5, Height: 5}

	assert.Equal(t, Rect{X: 10, Y: 0, Width: 25, Height: 20}, a.Union(b))
	assert.Equal(t, a, Rect{}.Union(a))
	assert.Equal(t, a, a.Union(Rect{}))
}

func TestRectContainsRectAndInset(t *testing.T) {
	canvas := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	inner := canvas.Inset(8)

	assert.Equal(t, Rect{X: 8, Y: 8, Width: 84, Height: 84}, inner)
	assert.True(t, inner.ContainsRect(Rect{X: 8, Y: 8, Width: 84, Height: 84}))
	assert.False(t, inner.ContainsRect(Rect{X: 7, Y: 8, Width: 10, Height: 10}))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5.0, Clamp(1, 5, 10))
	assert.Equal(t, 10.0, Clamp(12, 5, 10))
	assert.Equal(t, 7.0, Clamp(7, 5, 10))
	assert.Equal(t, 5.0, Clamp(7, 5, 3), "inverted range favours lo")
}

func TestMatrixInvertRoundTrip(t *testing.T) {
	m := FromTransform(40, 20, 2, 3, 30, 5, 5)
	x, y := m.TransformPoint(7, 11)
	bx, by := m.Invert().TransformPoint(x, y)

	assert.InDelta(t, 7, bx, 1e-9)
	assert.InDelta(t, 11, by, 1e-9)
	assert.True(t, m.Multiply(m.Invert()).IsIdentity())
}

func TestViewportMatrix(t *testing.T) {
	m := ViewportMatrix(Point{X: 100, Y: 50}, Point{X: 10, Y: -20}, 2)
	r := m.TransformRect(Rect{X: 5, Y: 5, Width: 10, Height: 20})

	assert.Equal(t, Rect{X: 120, Y: 40, Width: 20, Height: 40}, r)

	// Non-positive zoom is treated as 1.
	assert.Equal(t, ViewportMatrix(Point{}, Point{}, 1), ViewportMatrix(Point{}, Point{}, 0))
}
