package toolbar

// PointerDecision tells the toolbar's pointer handler what to do with an
// event.
type PointerDecision int

const (
	// Activate: a single pointer is interacting with the toolbar. The
	// handler may stop propagation.
	Activate PointerDecision = iota
	// PassThrough: a multi-pointer gesture is in progress. The handler must
	// let the event reach the canvas.
	PassThrough
)

// PointerGate tracks the pointers currently down on the toolbar hit-region
// so pinch and pan gestures pass through it instead of being captured.
type PointerGate struct {
	active      map[int]struct{}
	passThrough bool
}

// NewPointerGate returns a gate with no active pointers.
func NewPointerGate() *PointerGate {
	return &PointerGate{active: make(map[int]struct{})}
}

// Down records a pointer going down. Once a second pointer joins, the
// gesture stays pass-through until every pointer is up.
func (g *PointerGate) Down(pointerID int) PointerDecision {
	g.active[pointerID] = struct{}{}
	if len(g.active) > 1 {
		g.passThrough = true
	}
	return g.decision()
}

// Move reports how to treat a move event from pointerID.
func (g *PointerGate) Move(pointerID int) PointerDecision {
	if _, ok := g.active[pointerID]; !ok {
		return PassThrough
	}
	return g.decision()
}

// Up records a pointer going up and reports how to treat the up event,
// which is when a button activates.
func (g *PointerGate) Up(pointerID int) PointerDecision {
	_, known := g.active[pointerID]
	d := g.decision()
	if !known {
		d = PassThrough
	}

	delete(g.active, pointerID)
	if len(g.active) == 0 {
		g.passThrough = false
	}
	return d
}

// Cancel forgets every pointer, e.g. on pointercancel or blur.
func (g *PointerGate) Cancel() {
	clear(g.active)
	g.passThrough = false
}

func (g *PointerGate) decision() PointerDecision {
	if g.passThrough {
		return PassThrough
	}
	return Activate
}
