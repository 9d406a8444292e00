// Package placement computes where the floating toolbar goes on screen.
//
// Given the selection, the viewport and the toolbar's pixel size, Engine
// resolves the selection's on-screen bounds, tries the four sides of the
// selection in a fixed order, falls back to canvas anchors, and finally
// clamps into the canvas so the toolbar is always visible. Live geometry
// and the canvas rect come from a GeometryProvider and a Host, so the
// algorithm itself is pure and can be exercised with synthetic rects.
package placement

import (
	"errors"
	"log/slog"

	"github.com/inamate/inamate/editor-go/internal/geometry"
	"github.com/inamate/inamate/editor-go/internal/handles"
	"github.com/inamate/inamate/editor-go/internal/selection"
)

// Placement is the side of the selection the toolbar is anchored to.
type Placement string

const (
	Top    Placement = "top"
	Bottom Placement = "bottom"
	Left   Placement = "left"
	Right  Placement = "right"
)

// Position is the toolbar's top-left corner in screen pixels.
type Position struct {
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Placement Placement `json:"placement"`
}

// Rect returns the rectangle a toolbar of the given size occupies at p.
func (p Position) Rect(size geometry.Size) geometry.Rect {
	return geometry.Rect{X: p.X, Y: p.Y, Width: size.Width, Height: size.Height}
}

// Viewport is the canvas pan/zoom.
type Viewport struct {
	Pan  geometry.Point `json:"pan"`
	Zoom float64        `json:"zoom"`
}

const (
	// Margin between the toolbar and the selection.
	Margin = 12.0
	// Inset is how far inside the canvas edges the toolbar must stay.
	Inset = 8.0
	// AnchorOffset offsets the canvas-relative fallback anchors.
	AnchorOffset = 16.0
	// FallbackBoxSize is the size of the box used when nothing tells us
	// where the selection is.
	FallbackBoxSize = 100.0

	// epsilon absorbs float rounding in the containment test.
	epsilon = 1e-6
)

var (
	// ErrNoHost is returned when the canvas element cannot be found.
	ErrNoHost = errors.New("placement: canvas host not available")
	// ErrNoSelectionBounds is returned when no bounds can be established.
	ErrNoSelectionBounds = errors.New("placement: no selection bounds")
)

// GeometryProvider looks up the live on-screen bounds of an element.
type GeometryProvider interface {
	BoundsFor(kind selection.Kind, id string) (geometry.Rect, bool)
}

// Host describes the canvas container and the window.
type Host interface {
	CanvasRect() (geometry.Rect, bool)
	WindowSize() geometry.Size
}

// Engine computes toolbar positions.
type Engine struct {
	geom   GeometryProvider
	host   Host
	device handles.Device
	logger *slog.Logger
}

// NewEngine creates a positioning engine. geom may be nil, in which case
// only the snapshot's selection box is used.
func NewEngine(geom GeometryProvider, host Host, device handles.Device, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{geom: geom, host: host, device: device, logger: logger}
}

// SetDevice switches the device profile, e.g. when the window crosses the
// mobile breakpoint.
func (e *Engine) SetDevice(d handles.Device) {
	e.device = d
}

// Calculate returns where a toolbar of the given size should be drawn.
// Apart from the error cases it always returns a position inside the
// canvas, at the cost of alignment when space is short.
func (e *Engine) Calculate(s selection.Snapshot, vp Viewport, size geometry.Size) (Position, error) {
	if e.host == nil {
		return Position{}, ErrNoHost
	}
	canvas, ok := e.host.CanvasRect()
	if !ok {
		return Position{}, ErrNoHost
	}

	sel, ok := e.selectionScreenBounds(s, vp, canvas)
	if !ok {
		return Position{}, ErrNoSelectionBounds
	}

	var rot *geometry.Rect
	if handles.ShowsTransformHandles(s) {
		r := handles.RotationHandleBounds(sel, 1, e.device)
		rot = &r
	}

	return place(sel, canvas, size, rot), nil
}

// selectionScreenBounds resolves the selection's bounds in screen pixels.
func (e *Engine) selectionScreenBounds(s selection.Snapshot, vp Viewport, canvas geometry.Rect) (geometry.Rect, bool) {
	if r, ok := e.liveBounds(s); ok {
		return r, true
	}

	if s.SelectionBox != nil && !s.SelectionBox.IsEmpty() {
		box := *s.SelectionBox
		if looksLikeScreen(box, e.host.WindowSize()) {
			return box, true
		}
		m := geometry.ViewportMatrix(geometry.Point{X: canvas.X, Y: canvas.Y}, vp.Pan, vp.Zoom)
		return m.TransformRect(box), true
	}

	if canvas.IsEmpty() {
		return geometry.Rect{}, false
	}
	e.logger.Debug("toolbar placement falling back to canvas center")
	cx, cy := canvas.Center()
	return geometry.CenteredRect(cx, cy, geometry.Size{Width: FallbackBoxSize, Height: FallbackBoxSize}), true
}

// liveBounds unions the on-screen rects of every selected element the
// provider knows about. Unknown ids are skipped.
func (e *Engine) liveBounds(s selection.Snapshot) (geometry.Rect, bool) {
	if e.geom == nil {
		return geometry.Rect{}, false
	}

	var union geometry.Rect
	found := false
	for _, kind := range selection.BoundsOrder {
		for _, id := range s.IDs(kind) {
			r, ok := e.geom.BoundsFor(kind, id)
			if !ok || r.IsEmpty() {
				continue
			}
			union = union.Union(r)
			found = true
		}
	}
	return union, found
}

// looksLikeScreen reports whether r already sits inside the window, in
// which case it is taken to be in screen coordinates.
func looksLikeScreen(r geometry.Rect, win geometry.Size) bool {
	return r.X >= 0 && r.X < win.Width && r.Y >= 0 && r.Y < win.Height
}

// RectsOverlap reports whether two rects intersect.
func RectsOverlap(a, b geometry.Rect) bool {
	return a.Overlaps(b)
}

// IsPositionValid reports whether the toolbar rect fits inside the canvas
// shrunk by Inset on every side.
func IsPositionValid(toolbar, canvas geometry.Rect) bool {
	return canvas.Inset(Inset - epsilon).ContainsRect(toolbar)
}
