package zorder

import (
	"github.com/inamate/inamate/editor-go/internal/document"
)

// Members returns the drawable ids inside the group, descending into
// nested groups. Cycles are tolerated.
func Members(doc *document.Document, groupID string) []string {
	var out []string
	visited := map[string]bool{}

	var walk func(id string)
	walk = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true

		g, ok := doc.Group(id)
		if !ok {
			return
		}
		for _, c := range g.Children {
			if _, isGroup := doc.Group(c); isGroup {
				walk(c)
				continue
			}
			out = append(out, c)
		}
	}
	walk(groupID)
	return out
}

// GroupBringToFront moves every member of the groups above all other
// elements.
func (o *Orderer) GroupBringToFront(groupIDs []string) bool {
	return o.apply(BringToFront, groupIDs, planGroups)
}

// GroupSendToBack moves every member of the groups below all other
// elements.
func (o *Orderer) GroupSendToBack(groupIDs []string) bool {
	return o.apply(SendToBack, groupIDs, planGroups)
}

// GroupSendForward moves each group one step up as a block.
func (o *Orderer) GroupSendForward(groupIDs []string) bool {
	return o.apply(SendForward, groupIDs, planGroups)
}

// GroupSendBackward moves each group one step down as a block.
func (o *Orderer) GroupSendBackward(groupIDs []string) bool {
	return o.apply(SendBackward, groupIDs, planGroups)
}

func planGroups(doc *document.Document, op Op, groupIDs []string) plan {
	s := newStack(doc)

	claimed := map[*document.Element]bool{}
	var targets []*document.Element
	var blocks [][]*document.Element
	for _, gid := range groupIDs {
		var block []*document.Element
		for _, e := range s.resolve(doc, Members(doc, gid)) {
			if claimed[e] {
				continue
			}
			claimed[e] = true
			block = append(block, e)
		}
		if len(block) == 0 {
			continue
		}
		blocks = append(blocks, block)
		targets = append(targets, block...)
	}
	if len(targets) == 0 {
		return plan{}
	}

	s.run(op, targets, blocks)
	return s.plan()
}
