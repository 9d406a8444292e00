package zorder

import (
	"slices"

	"github.com/inamate/inamate/editor-go/internal/selection"
)

// Mixed runs op against a selection that may hold subpaths, groups and
// standalone elements at once. Subpaths move inside their path, groups
// move as blocks and the remaining elements move individually. Each part
// that changes the document gets its own history checkpoint.
func (o *Orderer) Mixed(op Op, s selection.Snapshot) bool {
	if !op.Valid() {
		o.logger.Warn("unknown reorder op", "op", string(op))
		return false
	}

	changed := false
	if len(s.SubPaths) > 0 {
		changed = o.dispatch(op, s.SubPaths, planSubPaths) || changed
	}
	if len(s.Groups) > 0 {
		changed = o.dispatch(op, s.Groups, planGroups) || changed
	}
	if ids := o.standalone(s); len(ids) > 0 {
		changed = o.dispatch(op, ids, planElements) || changed
	}
	return changed
}

func (o *Orderer) dispatch(op Op, ids []string, fn planner) bool {
	doc := o.store.Document()
	p := fn(doc, op, ids)
	if p.empty() {
		return false
	}

	o.store.PushHistory(op.Label())
	// The checkpoint may have swapped documents, so plan again.
	if cur := o.store.Document(); cur != doc {
		p = fn(cur, op, ids)
	}
	p.commit()
	return true
}

// standalone returns the selected drawables that are not inside one of
// the selected groups. A path marked only because one of its subpaths is
// selected is left to the subpath dispatch.
func (o *Orderer) standalone(s selection.Snapshot) []string {
	doc := o.store.Document()
	owners := doc.SubPathOwners(s.SubPaths)

	var inGroups []string
	for _, gid := range s.Groups {
		inGroups = append(inGroups, Members(doc, gid)...)
	}

	var ids []string
	for _, kind := range []selection.Kind{selection.KindPath, selection.KindText, selection.KindImage, selection.KindUse} {
		for _, id := range s.IDs(kind) {
			if owners[id] {
				continue
			}
			if !slices.Contains(inGroups, id) {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
