package placement

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/inamate/editor-go/internal/geometry"
	"github.com/inamate/inamate/editor-go/internal/handles"
	"github.com/inamate/inamate/editor-go/internal/selection"
)

type fakeGeometry map[selection.Kind]map[string]geometry.Rect

func (f fakeGeometry) BoundsFor(kind selection.Kind, id string) (geometry.Rect, bool) {
	r, ok := f[kind][id]
	return r, ok
}

type fakeHost struct {
	canvas geometry.Rect
	ok     bool
	window geometry.Size
}

func (h fakeHost) CanvasRect() (geometry.Rect, bool) { return h.canvas, h.ok }
func (h fakeHost) WindowSize() geometry.Size         { return h.window }

var (
	canvas  = geometry.Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	window  = geometry.Size{Width: 1280, Height: 800}
	toolbar = geometry.Size{Width: 200, Height: 40}
)

func newEngine(geom fakeGeometry, c geometry.Rect) *Engine {
	return NewEngine(geom, fakeHost{canvas: c, ok: true, window: window}, handles.Device{}, nil)
}

func TestCalculateNoHost(t *testing.T) {
	sel := selection.Snapshot{Paths: []string{"p"}}

	_, err := NewEngine(nil, nil, handles.Device{}, nil).Calculate(sel, Viewport{Zoom: 1}, toolbar)
	assert.ErrorIs(t, err, ErrNoHost)

	e := NewEngine(nil, fakeHost{ok: false, window: window}, handles.Device{}, nil)
	_, err = e.Calculate(sel, Viewport{Zoom: 1}, toolbar)
	assert.ErrorIs(t, err, ErrNoHost)
}

func TestCalculateNoBounds(t *testing.T) {
	e := NewEngine(nil, fakeHost{ok: true, window: window}, handles.Device{}, nil)
	_, err := e.Calculate(selection.Snapshot{}, Viewport{Zoom: 1}, toolbar)
	assert.ErrorIs(t, err, ErrNoSelectionBounds)
}

func TestCalculatePrefersTop(t *testing.T) {
	e := newEngine(fakeGeometry{
		selection.KindPath: {"p1": {X: 400, Y: 400, Width: 100, Height: 50}},
	}, canvas)

	pos, err := e.Calculate(selection.Snapshot{Paths: []string{"p1"}}, Viewport{Zoom: 1}, toolbar)
	require.NoError(t, err)
	assert.Equal(t, Position{X: 350, Y: 348, Placement: Top}, pos)
}

func TestCalculateAvoidsRotationHandle(t *testing.T) {
	sel := geometry.Rect{X: 400, Y: 400, Width: 100, Height: 50}
	e := newEngine(fakeGeometry{selection.KindImage: {"i1": sel}}, canvas)

	pos, err := e.Calculate(selection.Snapshot{Images: []string{"i1"}}, Viewport{Zoom: 1}, toolbar)
	require.NoError(t, err)

	unmodifiedTop := Position{X: 350, Y: 348, Placement: Top}
	rot := handles.RotationHandleBounds(sel, 1, handles.Device{})
	require.True(t, RectsOverlap(unmodifiedTop.Rect(toolbar), rot), "fixture must collide")

	assert.NotEqual(t, unmodifiedTop, pos)
	assert.False(t, RectsOverlap(pos.Rect(toolbar), rot))
	assert.Equal(t, Top, pos.Placement)
	assert.Equal(t, rot.Top()-toolbar.Height-Margin, pos.Y)
}

func TestCalculateFallsThroughSides(t *testing.T) {
	tests := []struct {
		name string
		sel  geometry.Rect
		want Placement
	}{
		{"near top edge", geometry.Rect{X: 400, Y: 20, Width: 100, Height: 50}, Bottom},
		{"tall on the left", geometry.Rect{X: 50, Y: 10, Width: 100, Height: 780}, Right},
		{"tall on the right", geometry.Rect{X: 850, Y: 10, Width: 100, Height: 780}, Left},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(fakeGeometry{selection.KindPath: {"p": tt.sel}}, canvas)
			pos, err := e.Calculate(selection.Snapshot{Paths: []string{"p"}}, Viewport{Zoom: 1}, toolbar)
			require.NoError(t, err)
			assert.Equal(t, tt.want, pos.Placement)
			assert.True(t, IsPositionValid(pos.Rect(toolbar), canvas))
		})
	}
}

func TestCalculateAnchorFallback(t *testing.T) {
	e := newEngine(fakeGeometry{selection.KindPath: {"p": canvas}}, canvas)

	pos, err := e.Calculate(selection.Snapshot{Paths: []string{"p"}}, Viewport{Zoom: 1}, toolbar)
	require.NoError(t, err)
	assert.Equal(t, Position{X: 400, Y: AnchorOffset, Placement: Top}, pos)
}

func TestCalculateClampFallback(t *testing.T) {
	small := geometry.Rect{X: 0, Y: 0, Width: 400, Height: 100}
	size := geometry.Size{Width: 100, Height: 80}
	e := newEngine(fakeGeometry{selection.KindPath: {"p": {X: 150, Y: 10, Width: 20, Height: 20}}}, small)

	pos, err := e.Calculate(selection.Snapshot{Paths: []string{"p"}}, Viewport{Zoom: 1}, size)
	require.NoError(t, err)
	assert.Equal(t, Position{X: 110, Y: 8, Placement: Top}, pos)
	assert.True(t, IsPositionValid(pos.Rect(size), small))
}

func TestCalculateAlwaysInsideCanvas(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for i := 0; i < 500; i++ {
		c := geometry.Rect{
			X:      rng.Float64() * 200,
			Y:      rng.Float64() * 200,
			Width:  100 + rng.Float64()*1200,
			Height: 100 + rng.Float64()*900,
		}
		size := geometry.Size{
			Width:  1 + rng.Float64()*(c.Width-2*Inset-1),
			Height: 1 + rng.Float64()*(c.Height-2*Inset-1),
		}
		sel := geometry.Rect{
			X:      c.X - 300 + rng.Float64()*(c.Width+600),
			Y:      c.Y - 300 + rng.Float64()*(c.Height+600),
			Width:  1 + rng.Float64()*500,
			Height: 1 + rng.Float64()*500,
		}

		e := newEngine(fakeGeometry{selection.KindText: {"t": sel}}, c)
		pos, err := e.Calculate(selection.Snapshot{Texts: []string{"t"}}, Viewport{Zoom: 1}, size)
		require.NoError(t, err)
		require.True(t, IsPositionValid(pos.Rect(size), c), "iteration %d: %+v in %+v", i, pos, c)
	}
}

func TestSelectionBoxInDocumentSpace(t *testing.T) {
	c := geometry.Rect{X: 100, Y: 50, Width: 1180, Height: 750}
	e := newEngine(nil, c)

	box := geometry.Rect{X: 2000, Y: 100, Width: 50, Height: 50}
	vp := Viewport{Pan: geometry.Point{X: 10, Y: 10}, Zoom: 0.5}
	size := geometry.Size{Width: 100, Height: 30}

	pos, err := e.Calculate(selection.Snapshot{Paths: []string{"p"}, SelectionBox: &box}, vp, size)
	require.NoError(t, err)

	// Box maps to (1110, 110, 25, 25) on screen.
	assert.Equal(t, Position{X: 1072.5, Y: 68, Placement: Top}, pos)
}

func TestSelectionBoxAlreadyOnScreen(t *testing.T) {
	e := newEngine(nil, canvas)
	box := geometry.Rect{X: 400, Y: 400, Width: 100, Height: 50}

	pos, err := e.Calculate(selection.Snapshot{Paths: []string{"p"}, SelectionBox: &box}, Viewport{Zoom: 3}, toolbar)
	require.NoError(t, err)
	assert.Equal(t, Position{X: 350, Y: 348, Placement: Top}, pos)
}

func TestCanvasCenterFallback(t *testing.T) {
	e := newEngine(fakeGeometry{}, canvas)

	pos, err := e.Calculate(selection.Snapshot{Paths: []string{"missing"}}, Viewport{Zoom: 1}, toolbar)
	require.NoError(t, err)
	// Box is (450, 350, 100, 100).
	assert.Equal(t, Position{X: 400, Y: 298, Placement: Top}, pos)
}

func TestLiveBoundsUnion(t *testing.T) {
	e := newEngine(fakeGeometry{
		selection.KindPath:    {"p": {X: 100, Y: 300, Width: 50, Height: 50}},
		selection.KindSubPath: {"sp": {X: 300, Y: 320, Width: 50, Height: 30}},
		selection.KindGroup:   {"g": {}},
	}, canvas)

	sel := selection.Snapshot{Paths: []string{"p", "unknown"}, SubPaths: []string{"sp"}, Groups: []string{"g"}}
	r, ok := e.liveBounds(sel)
	require.True(t, ok)
	assert.Equal(t, geometry.Rect{X: 100, Y: 300, Width: 250, Height: 50}, r)
}
