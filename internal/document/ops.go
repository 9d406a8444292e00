package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/inamate/inamate/editor-go/internal/typeid"
)

// DuplicateOffset is how far a duplicate is shifted from its source.
const DuplicateOffset = 10.0

// Duplicate copies the given elements and groups, offsetting each copy.
// Copies join the source's parent group right after the source. It
// returns the ids of the top-level copies in input order.
func (d *Document) Duplicate(ids []string) ([]string, error) {
	var created []string
	for _, id := range ids {
		newID, err := d.duplicate(id)
		if err != nil {
			return created, err
		}
		if parent, ok := d.ParentGroup(id); ok {
			i := slices.Index(parent.Children, id)
			parent.Children = slices.Insert(parent.Children, i+1, newID)
		}
		created = append(created, newID)
	}
	return created, nil
}

func (d *Document) duplicate(id string) (string, error) {
	kind, ok := d.Lookup(id)
	if !ok {
		return "", fmt.Errorf("duplicate %s: %w", id, ErrNotFound)
	}

	switch kind {
	case KindPath:
		p := clone(d.Paths[d.indexOf(kind, id)])
		p.ID = typeid.NewPathID()
		for i := range p.SubPaths {
			p.SubPaths[i].ID = typeid.NewSubPathID()
		}
		offset(&p.Element)
		d.Paths = append(d.Paths, p)
		return p.ID, nil
	case KindText:
		t := clone(d.Texts[d.indexOf(kind, id)])
		t.ID = typeid.NewTextID()
		offset(&t.Element)
		d.Texts = append(d.Texts, t)
		return t.ID, nil
	case KindImage:
		img := clone(d.Images[d.indexOf(kind, id)])
		img.ID = typeid.NewImageID()
		offset(&img.Element)
		d.Images = append(d.Images, img)
		return img.ID, nil
	case KindUse:
		u := clone(d.Uses[d.indexOf(kind, id)])
		u.ID = typeid.NewUseID()
		offset(&u.Element)
		d.Uses = append(d.Uses, u)
		return u.ID, nil
	case KindGroup:
		src := clone(d.Groups[d.indexOf(kind, id)])
		g := Group{ID: typeid.NewGroupID(), Transform: src.Transform, Locked: src.Locked}
		for _, child := range src.Children {
			c, err := d.duplicate(child)
			if err != nil {
				return "", err
			}
			g.Children = append(g.Children, c)
		}
		d.Groups = append(d.Groups, g)
		return g.ID, nil
	}
	return "", fmt.Errorf("duplicate %s: cannot duplicate %s", id, kind)
}

func offset(e *Element) {
	e.ZIndex = nil
	e.Transform.X += DuplicateOffset
	e.Transform.Y += DuplicateOffset
}

func clone[T any](v T) T {
	data, err := json.Marshal(v)
	if err != nil {
		panic("document: clone: " + err.Error())
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		panic("document: clone: " + err.Error())
	}
	return out
}

// Delete removes the given elements. Deleting a group deletes everything
// inside it. Unknown ids are ignored; the number of removed ids is
// returned.
func (d *Document) Delete(ids []string) int {
	removed := 0
	for _, id := range ids {
		removed += d.delete(id)
	}
	return removed
}

func (d *Document) delete(id string) int {
	kind, ok := d.Lookup(id)
	if !ok {
		return 0
	}

	if parent, ok := d.ParentGroup(id); ok {
		parent.Children = slices.DeleteFunc(parent.Children, func(c string) bool { return c == id })
	}

	n := 1
	switch kind {
	case KindPath:
		d.Paths = slices.DeleteFunc(d.Paths, func(p Path) bool { return p.ID == id })
	case KindText:
		d.Texts = slices.DeleteFunc(d.Texts, func(t Text) bool { return t.ID == id })
	case KindImage:
		d.Images = slices.DeleteFunc(d.Images, func(img Image) bool { return img.ID == id })
	case KindUse:
		d.Uses = slices.DeleteFunc(d.Uses, func(u Use) bool { return u.ID == id })
	case KindGradient:
		d.Gradients = slices.DeleteFunc(d.Gradients, func(g Gradient) bool { return g.ID == id })
	case KindGroup:
		g, _ := d.Group(id)
		children := slices.Clone(g.Children)
		d.Groups = slices.DeleteFunc(d.Groups, func(g Group) bool { return g.ID == id })
		for _, c := range children {
			n += d.delete(c)
		}
	}
	return n
}

// DeleteSubPaths removes subpaths from their paths. A path left without
// subpaths is deleted as well. It returns the number of subpaths removed.
func (d *Document) DeleteSubPaths(ids []string) int {
	n := 0
	var emptied []string
	for _, id := range ids {
		p, i, ok := d.SubPathOwner(id)
		if !ok {
			continue
		}
		p.SubPaths = slices.Delete(p.SubPaths, i, i+1)
		n++
		if len(p.SubPaths) == 0 {
			emptied = append(emptied, p.ID)
		}
	}
	d.Delete(emptied)
	return n
}

// GroupElements wraps ids in a new group. When every id shared the same
// parent group, the new group takes the first id's place in it.
func (d *Document) GroupElements(ids []string) (string, error) {
	if len(ids) == 0 {
		return "", errors.New("group: no elements")
	}
	for _, id := range ids {
		if _, ok := d.Lookup(id); !ok {
			return "", fmt.Errorf("group %s: %w", id, ErrNotFound)
		}
	}

	parents := make([]string, len(ids))
	for i, id := range ids {
		if p, ok := d.ParentGroup(id); ok {
			parents[i] = p.ID
		}
	}
	common := parents[0]
	for _, p := range parents[1:] {
		if p != common {
			common = ""
			break
		}
	}

	insertAt := 0
	if common != "" {
		parent, _ := d.Group(common)
		for _, c := range parent.Children {
			if c == ids[0] {
				break
			}
			if !slices.Contains(ids, c) {
				insertAt++
			}
		}
	}

	for _, id := range ids {
		if p, ok := d.ParentGroup(id); ok {
			p.Children = slices.DeleteFunc(p.Children, func(c string) bool { return c == id })
		}
	}

	g := Group{ID: typeid.NewGroupID(), Children: slices.Clone(ids), Transform: IdentityTransform}
	d.Groups = append(d.Groups, g)

	if common != "" {
		parent, _ := d.Group(common)
		parent.Children = slices.Insert(parent.Children, insertAt, g.ID)
	}
	return g.ID, nil
}

// Ungroup dissolves the group, moving its children into its parent at
// the group's position. It returns the freed children.
func (d *Document) Ungroup(groupID string) ([]string, error) {
	g, ok := d.Group(groupID)
	if !ok {
		return nil, fmt.Errorf("ungroup %s: %w", groupID, ErrNotFound)
	}
	children := slices.Clone(g.Children)

	if parent, ok := d.ParentGroup(groupID); ok {
		i := slices.Index(parent.Children, groupID)
		parent.Children = slices.Replace(parent.Children, i, i+1, children...)
	}
	d.Groups = slices.DeleteFunc(d.Groups, func(g Group) bool { return g.ID == groupID })
	return children, nil
}

// styleTargets resolves ids, including subpath ids, to the drawable
// elements whose style they own.
func (d *Document) styleTargets(ids []string) []*Element {
	var out []*Element
	seen := make(map[*Element]bool)
	add := func(e *Element) {
		if e != nil && !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	for _, id := range ids {
		if e, _, ok := d.Element(id); ok {
			add(e)
			continue
		}
		if p, _, ok := d.SubPathOwner(id); ok {
			add(&p.Element)
		}
	}
	return out
}

// SetFill sets the fill color and returns how many elements changed.
func (d *Document) SetFill(ids []string, color string) int {
	n := 0
	for _, e := range d.styleTargets(ids) {
		if e.Style.Fill != color {
			e.Style.Fill = color
			n++
		}
	}
	return n
}

// SetStrokeWidth sets the stroke width and returns how many elements changed.
func (d *Document) SetStrokeWidth(ids []string, width float64) int {
	n := 0
	for _, e := range d.styleTargets(ids) {
		if e.Style.StrokeWidth != width {
			e.Style.StrokeWidth = width
			n++
		}
	}
	return n
}

// SetFontSize sets the font size of text elements.
func (d *Document) SetFontSize(ids []string, size float64) int {
	n := 0
	for _, id := range ids {
		if t, ok := d.Text(id); ok && t.FontSize != size {
			t.FontSize = size
			n++
		}
	}
	return n
}

// SetLocked locks or unlocks elements and groups.
func (d *Document) SetLocked(ids []string, locked bool) int {
	n := 0
	for _, id := range ids {
		if g, ok := d.Group(id); ok {
			if g.Locked != locked {
				g.Locked = locked
				n++
			}
			continue
		}
		for _, e := range d.styleTargets([]string{id}) {
			if e.Locked != locked {
				e.Locked = locked
				n++
			}
		}
	}
	return n
}

// IsLocked reports whether every one of ids is locked.
func (d *Document) IsLocked(ids []string) bool {
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		if g, ok := d.Group(id); ok {
			if !g.Locked {
				return false
			}
			continue
		}
		targets := d.styleTargets([]string{id})
		if len(targets) == 0 || !targets[0].Locked {
			return false
		}
	}
	return true
}
