// Package handles computes the geometry of transform handles drawn around
// a selection. The same formulas serve the transform tool, which works in
// document space, and the toolbar placement, which works in screen space
// and passes a zoom of 1.
package handles

import (
	"github.com/inamate/inamate/editor-go/internal/geometry"
	"github.com/inamate/inamate/editor-go/internal/selection"
)

// Device describes the input/display profile handles are sized for.
type Device struct {
	Mobile     bool    `json:"mobile"`
	PixelRatio float64 `json:"pixelRatio"`
}

// Screen pixel constants before zoom compensation.
const (
	desktopHandleSize = 8.0
	mobileHandleSize  = 14.0
	cornerMargin      = 20.0
	padding           = 4.0
	rotationScale     = 1.5
	maxPixelRatio     = 2.0
)

// Metrics holds handle dimensions in the units of the space they are
// drawn in.
type Metrics struct {
	HandleSize   float64
	CornerMargin float64
	Padding      float64
	RotationSize float64
}

// scale returns the device pixel scale applied to handle sizes.
func (d Device) scale() float64 {
	if d.PixelRatio <= 1 {
		return 1
	}
	return min(d.PixelRatio, maxPixelRatio)
}

// MetricsFor returns handle metrics divided by zoom, so that handles keep
// a constant on-screen size.
func MetricsFor(zoom float64, d Device) Metrics {
	if zoom <= 0 {
		zoom = 1
	}
	size := desktopHandleSize
	if d.Mobile {
		size = mobileHandleSize
	}
	size *= d.scale()

	return Metrics{
		HandleSize:   size / zoom,
		CornerMargin: cornerMargin / zoom,
		Padding:      padding / zoom,
		RotationSize: size * rotationScale / zoom,
	}
}

// RotationHandleBounds returns the square occupied by the rotation handle,
// centered horizontally above sel. The result is in the same space as sel.
func RotationHandleBounds(sel geometry.Rect, zoom float64, d Device) geometry.Rect {
	m := MetricsFor(zoom, d)
	cx, _ := sel.Center()
	cy := sel.Y - m.Padding - m.CornerMargin
	return geometry.CenteredRect(cx, cy, geometry.Size{Width: m.RotationSize, Height: m.RotationSize})
}

// ShowsTransformHandles reports whether the selection gets transform
// handles, and with them a rotation handle.
func ShowsTransformHandles(s selection.Snapshot) bool {
	return len(s.SubPaths) > 0 ||
		len(s.Commands) > 1 ||
		len(s.Texts) > 0 ||
		len(s.TextPaths) > 0 ||
		len(s.Images) > 0 ||
		len(s.Uses) > 0
}
