package zorder

import (
	"slices"

	"github.com/inamate/inamate/editor-go/internal/document"
)

// SubPathBringToFront moves the subpaths to the end of their path's
// subpath list, which draws them last.
func (o *Orderer) SubPathBringToFront(ids []string) bool {
	return o.apply(BringToFront, ids, planSubPaths)
}

func (o *Orderer) SubPathSendToBack(ids []string) bool {
	return o.apply(SendToBack, ids, planSubPaths)
}

func (o *Orderer) SubPathSendForward(ids []string) bool {
	return o.apply(SendForward, ids, planSubPaths)
}

func (o *Orderer) SubPathSendBackward(ids []string) bool {
	return o.apply(SendBackward, ids, planSubPaths)
}

// ApplySubPaths runs op against subpaths. Subpaths only move within
// their own path.
func (o *Orderer) ApplySubPaths(op Op, ids []string) bool {
	return o.apply(op, ids, planSubPaths)
}

func planSubPaths(doc *document.Document, op Op, ids []string) plan {
	var paths []*document.Path
	selected := map[string]bool{}
	for _, id := range ids {
		p, _, ok := doc.SubPathOwner(id)
		if !ok {
			continue
		}
		selected[id] = true
		if !slices.Contains(paths, p) {
			paths = append(paths, p)
		}
	}

	out := plan{subPaths: make(map[*document.Path][]document.SubPath)}
	for _, p := range paths {
		order := reorderSubPaths(p.SubPaths, selected, op)
		if !sameOrder(order, p.SubPaths) {
			out.subPaths[p] = order
		}
	}
	return out
}

func reorderSubPaths(subs []document.SubPath, selected map[string]bool, op Op) []document.SubPath {
	isSel := func(sp document.SubPath) bool { return selected[sp.ID] }
	out := slices.Clone(subs)

	switch op {
	case BringToFront:
		out = append(slices.DeleteFunc(out, isSel), filter(subs, isSel)...)
	case SendToBack:
		rest := slices.DeleteFunc(slices.Clone(subs), isSel)
		out = append(filter(subs, isSel), rest...)
	case SendForward:
		for i := len(out) - 2; i >= 0; i-- {
			if isSel(out[i]) && !isSel(out[i+1]) {
				out[i], out[i+1] = out[i+1], out[i]
			}
		}
	case SendBackward:
		for i := 1; i < len(out); i++ {
			if isSel(out[i]) && !isSel(out[i-1]) {
				out[i], out[i-1] = out[i-1], out[i]
			}
		}
	}
	return out
}

func filter(subs []document.SubPath, keep func(document.SubPath) bool) []document.SubPath {
	var out []document.SubPath
	for _, sp := range subs {
		if keep(sp) {
			out = append(out, sp)
		}
	}
	return out
}

func sameOrder(a, b []document.SubPath) bool {
	return slices.EqualFunc(a, b, func(x, y document.SubPath) bool { return x.ID == y.ID })
}
