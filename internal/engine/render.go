package engine

import (
	"cmp"
	"encoding/json"
	"math"
	"slices"

	"github.com/inamate/inamate/editor-go/internal/document"
	"github.com/inamate/inamate/editor-go/internal/geometry"
	"github.com/inamate/inamate/editor-go/internal/zorder"
)

// DrawCommand is a single drawing operation for the frontend to execute.
type DrawCommand struct {
	Op          string                 `json:"op"` // "path", "text", "image", "use"
	ObjectID    string                 `json:"objectId,omitempty"`
	Transform   []float64              `json:"transform,omitempty"` // [a, b, c, d, e, f]
	Path        []document.PathCommand `json:"path,omitempty"`
	Fill        string                 `json:"fill,omitempty"`
	Stroke      string                 `json:"stroke,omitempty"`
	StrokeWidth float64                `json:"strokeWidth,omitempty"`
	Opacity     float64                `json:"opacity,omitempty"`
	Text        string                 `json:"text,omitempty"`
	FontSize    float64                `json:"fontSize,omitempty"`
	FontFamily  string                 `json:"fontFamily,omitempty"`
	Href        string                 `json:"href,omitempty"`
	X           float64                `json:"x,omitempty"`
	Y           float64                `json:"y,omitempty"`
	Width       float64                `json:"width,omitempty"`
	Height      float64                `json:"height,omitempty"`
	ZIndex      int                    `json:"zIndex"`
}

// textAdvance approximates glyph width as a fraction of the font size.
const textAdvance = 0.6

// drawable is a resolved element in painter's order.
type drawable struct {
	id    string
	kind  document.Kind
	z     int
	order int
	elem  *document.Element
	world geometry.Matrix2D
	local geometry.Rect // bounds before the world transform
}

// effectiveZ is the element's z index, or the value lazy initialization
// would give it.
func effectiveZ(e *document.Element, k document.Kind, index int) int {
	if e.ZIndex != nil {
		return *e.ZIndex
	}
	return zorder.Base(k) + index
}

// worldMatrix composes the transforms of every enclosing group with the
// element's own.
func worldMatrix(doc *document.Document, id string, local document.Transform) geometry.Matrix2D {
	m := fromTransform(local)
	seen := map[string]bool{id: true}
	for cur := id; ; {
		g, ok := doc.ParentGroup(cur)
		if !ok || seen[g.ID] {
			break
		}
		seen[g.ID] = true
		m = fromTransform(g.Transform).Multiply(m)
		cur = g.ID
	}
	return m
}

// fromTransform treats the zero Transform as identity, since documents
// may omit transforms entirely.
func fromTransform(t document.Transform) geometry.Matrix2D {
	if t == (document.Transform{}) {
		return geometry.Identity()
	}
	return geometry.FromTransform(t.X, t.Y, t.SX, t.SY, t.R, t.AX, t.AY)
}

// drawables returns every drawable element from back to front. Ties on
// z index fall back to kind base, then creation order.
func drawables(doc *document.Document) []drawable {
	var out []drawable
	n := 0
	for _, k := range document.DrawableKinds {
		for i, e := range doc.Elements(k) {
			out = append(out, drawable{
				id:    e.ID,
				kind:  k,
				z:     effectiveZ(e, k, i),
				order: n,
				elem:  e,
				world: worldMatrix(doc, e.ID, e.Transform),
				local: localBounds(doc, k, i),
			})
			n++
		}
	}
	slices.SortStableFunc(out, func(a, b drawable) int {
		if c := cmp.Compare(a.z, b.z); c != 0 {
			return c
		}
		if c := cmp.Compare(zorder.Base(a.kind), zorder.Base(b.kind)); c != 0 {
			return c
		}
		return cmp.Compare(a.order, b.order)
	})
	return out
}

func localBounds(doc *document.Document, k document.Kind, i int) geometry.Rect {
	switch k {
	case document.KindPath:
		var cmds []document.PathCommand
		for _, sp := range doc.Paths[i].SubPaths {
			cmds = append(cmds, sp.Commands...)
		}
		return pathBounds(cmds)
	case document.KindText:
		t := doc.Texts[i]
		w := float64(len([]rune(t.Content))) * t.FontSize * textAdvance
		return geometry.Rect{X: t.X, Y: t.Y - t.FontSize, Width: w, Height: t.FontSize}
	case document.KindImage:
		img := doc.Images[i]
		return geometry.Rect{X: img.X, Y: img.Y, Width: img.Width, Height: img.Height}
	case document.KindUse:
		u := doc.Uses[i]
		return geometry.Rect{X: u.X, Y: u.Y, Width: u.Width, Height: u.Height}
	}
	return geometry.Rect{}
}

// CompileDrawCommands generates the draw command buffer for the document
// in painter's order (back to front).
func CompileDrawCommands(doc *document.Document) []DrawCommand {
	if doc == nil {
		return nil
	}

	var commands []DrawCommand
	for _, d := range drawables(doc) {
		cmd := DrawCommand{
			ObjectID:    d.id,
			Transform:   d.world.ToSlice(),
			Fill:        d.elem.Style.Fill,
			Stroke:      d.elem.Style.Stroke,
			StrokeWidth: d.elem.Style.StrokeWidth,
			Opacity:     d.elem.Style.Opacity,
			ZIndex:      d.z,
		}
		switch d.kind {
		case document.KindPath:
			p, _ := doc.Path(d.id)
			cmd.Op = "path"
			for _, sp := range p.SubPaths {
				cmd.Path = append(cmd.Path, sp.Commands...)
			}
			if len(cmd.Path) == 0 {
				continue
			}
		case document.KindText:
			t, _ := doc.Text(d.id)
			cmd.Op = "text"
			cmd.Text = t.Content
			cmd.FontSize = t.FontSize
			cmd.FontFamily = t.FontFamily
			cmd.X, cmd.Y = t.X, t.Y
		case document.KindImage, document.KindUse:
			cmd.Op = string(d.kind)
			cmd.X, cmd.Y = d.local.X, d.local.Y
			cmd.Width, cmd.Height = d.local.Width, d.local.Height
			cmd.Href = href(doc, d)
		}
		commands = append(commands, cmd)
	}
	return commands
}

func href(doc *document.Document, d drawable) string {
	if d.kind == document.KindImage {
		for _, img := range doc.Images {
			if img.ID == d.id {
				return img.Href
			}
		}
	}
	for _, u := range doc.Uses {
		if u.ID == d.id {
			return u.Href
		}
	}
	return ""
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	if commands == nil {
		commands = []DrawCommand{}
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

// HitTest returns the id of the frontmost element whose bounds contain
// the document-space point, or "".
func HitTest(doc *document.Document, x, y float64) string {
	if doc == nil {
		return ""
	}
	all := drawables(doc)
	for i := len(all) - 1; i >= 0; i-- {
		b := all[i].world.TransformRect(all[i].local)
		if !b.IsEmpty() && b.Contains(x, y) {
			return all[i].id
		}
	}
	return ""
}

// Bounds returns the document-space bounds of an element, subpath or
// group.
func Bounds(doc *document.Document, id string) (geometry.Rect, bool) {
	if e, k, ok := doc.Element(id); ok {
		for i, x := range doc.Elements(k) {
			if x == e {
				r := worldMatrix(doc, id, e.Transform).TransformRect(localBounds(doc, k, i))
				return r, !r.IsEmpty()
			}
		}
	}

	if p, idx, ok := doc.SubPathOwner(id); ok {
		r := worldMatrix(doc, p.ID, p.Transform).TransformRect(pathBounds(p.SubPaths[idx].Commands))
		return r, !r.IsEmpty()
	}

	if _, ok := doc.Group(id); ok {
		var union geometry.Rect
		for _, m := range zorder.Members(doc, id) {
			if r, ok := Bounds(doc, m); ok {
				union = union.Union(r)
			}
		}
		return union, !union.IsEmpty()
	}
	return geometry.Rect{}, false
}

// pathBounds computes the bounding box of path commands, counting bezier
// control points.
func pathBounds(path []document.PathCommand) geometry.Rect {
	var minX, minY, maxX, maxY float64
	first := true
	add := func(x, y float64) {
		if first {
			minX, maxX, minY, maxY = x, x, y, y
			first = false
			return
		}
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}

	for _, cmd := range path {
		if len(cmd) == 0 {
			continue
		}
		op, ok := cmd[0].(string)
		if !ok {
			continue
		}

		var n int
		switch op {
		case "M", "L":
			n = 1
		case "Q":
			n = 2
		case "C":
			n = 3
		}
		if len(cmd) < 1+2*n {
			continue
		}
		for j := 0; j < n; j++ {
			add(toFloat64(cmd[1+2*j]), toFloat64(cmd[2+2*j]))
		}
	}

	if first {
		return geometry.Rect{}
	}
	return geometry.RectFromEdges(minX, minY, maxX, maxY)
}

// toFloat64 converts a decoded JSON number to float64.
func toFloat64(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
