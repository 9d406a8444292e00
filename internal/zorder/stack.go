package zorder

import (
	"cmp"
	"slices"

	"github.com/inamate/inamate/editor-go/internal/document"
)

// plan holds the new values a command would write. Nothing touches the
// document until commit.
type plan struct {
	z        map[*document.Element]int
	subPaths map[*document.Path][]document.SubPath
}

func (p plan) empty() bool {
	return len(p.z) == 0 && len(p.subPaths) == 0
}

func (p plan) commit() {
	for e, z := range p.z {
		e.SetZ(z)
	}
	for path, order := range p.subPaths {
		path.SubPaths = order
	}
}

// stack is a working copy of every drawable element's z index.
type stack struct {
	all []*document.Element
	z   map[*document.Element]int
}

func newStack(doc *document.Document) *stack {
	InitializeZIndexes(doc)

	s := &stack{z: make(map[*document.Element]int)}
	for _, k := range document.DrawableKinds {
		for _, e := range doc.Elements(k) {
			s.all = append(s.all, e)
			s.z[e] = *e.ZIndex
		}
	}
	return s
}

// resolve maps ids to drawable elements, dropping unknown and repeated ids.
func (s *stack) resolve(doc *document.Document, ids []string) []*document.Element {
	var out []*document.Element
	for _, id := range ids {
		e, _, ok := doc.Element(id)
		if !ok || slices.Contains(out, e) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (s *stack) plan() plan {
	p := plan{z: make(map[*document.Element]int)}
	for _, e := range s.all {
		if s.z[e] != *e.ZIndex {
			p.z[e] = s.z[e]
		}
	}
	return p
}

// byZ returns elems sorted by their working z index. Ties keep the
// given order.
func (s *stack) byZ(elems []*document.Element) []*document.Element {
	out := slices.Clone(elems)
	slices.SortStableFunc(out, func(a, b *document.Element) int {
		return cmp.Compare(s.z[a], s.z[b])
	})
	return out
}

func (s *stack) bounds() (lo, hi int) {
	for i, e := range s.all {
		z := s.z[e]
		if i == 0 || z < lo {
			lo = z
		}
		if i == 0 || z > hi {
			hi = z
		}
	}
	return lo, hi
}

func (s *stack) toFront(targets []*document.Element) {
	_, hi := s.bounds()
	for i, e := range s.byZ(targets) {
		s.z[e] = hi + 1 + i
	}
}

func (s *stack) toBack(targets []*document.Element) {
	lo, _ := s.bounds()
	for i, e := range s.byZ(targets) {
		s.z[e] = lo - len(targets) + i
	}
}

// neighbor finds the closest element above (dir > 0) or below (dir < 0)
// z that is not in moving.
func (s *stack) neighbor(z, dir int, moving map[*document.Element]bool) *document.Element {
	var best *document.Element
	for _, e := range s.all {
		if moving[e] {
			continue
		}
		ez := s.z[e]
		if dir > 0 && ez > z && (best == nil || ez < s.z[best]) {
			best = e
		}
		if dir < 0 && ez < z && (best == nil || ez > s.z[best]) {
			best = e
		}
	}
	return best
}

// step moves each block one place up (dir > 0) or down past its nearest
// non-moving neighbor. The block keeps its internal order and the
// neighbor takes the slot on the far side of it.
func (s *stack) step(blocks [][]*document.Element, dir int) {
	moving := make(map[*document.Element]bool)
	for _, b := range blocks {
		for _, e := range b {
			moving[e] = true
		}
	}

	type edge struct {
		block []*document.Element
		z     int
	}
	edges := make([]edge, 0, len(blocks))
	for _, b := range blocks {
		sorted := s.byZ(b)
		if dir > 0 {
			edges = append(edges, edge{sorted, s.z[sorted[len(sorted)-1]]})
		} else {
			edges = append(edges, edge{sorted, s.z[sorted[0]]})
		}
	}
	// The block closest to the destination moves first.
	slices.SortStableFunc(edges, func(a, b edge) int {
		if dir > 0 {
			return cmp.Compare(b.z, a.z)
		}
		return cmp.Compare(a.z, b.z)
	})

	for _, ed := range edges {
		block := s.byZ(ed.block)
		var z int
		if dir > 0 {
			z = s.z[block[len(block)-1]]
		} else {
			z = s.z[block[0]]
		}
		n := s.neighbor(z, dir, moving)
		if n == nil {
			continue
		}

		values := make([]int, 0, len(block)+1)
		for _, e := range block {
			values = append(values, s.z[e])
		}
		values = append(values, s.z[n])
		slices.Sort(values)

		if dir > 0 {
			s.z[n] = values[0]
			for i, e := range block {
				s.z[e] = values[i+1]
			}
		} else {
			for i, e := range block {
				s.z[e] = values[i]
			}
			s.z[n] = values[len(values)-1]
		}
	}
}

func (s *stack) run(op Op, targets []*document.Element, blocks [][]*document.Element) {
	switch op {
	case BringToFront:
		s.toFront(targets)
	case SendToBack:
		s.toBack(targets)
	case SendForward:
		s.step(blocks, 1)
	case SendBackward:
		s.step(blocks, -1)
	}
}

func planElements(doc *document.Document, op Op, ids []string) plan {
	s := newStack(doc)
	targets := s.resolve(doc, ids)
	if len(targets) == 0 {
		return plan{}
	}

	blocks := make([][]*document.Element, len(targets))
	for i, e := range targets {
		blocks[i] = []*document.Element{e}
	}
	s.run(op, targets, blocks)
	return s.plan()
}
