package document

import (
	"encoding/json"
	"errors"
)

// ErrNotFound is returned when an element id is not in the document.
var ErrNotFound = errors.New("element not found")

// Document is the editor's persisted SVG document. Element slices are kept
// in creation order.
type Document struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	Paths     []Path     `json:"paths"`
	Texts     []Text     `json:"texts"`
	Images    []Image    `json:"images"`
	Uses      []Use      `json:"uses"`
	Groups    []Group    `json:"groups"`
	Gradients []Gradient `json:"gradients"`
}

type Kind string

const (
	KindPath     Kind = "path"
	KindText     Kind = "text"
	KindImage    Kind = "image"
	KindUse      Kind = "use"
	KindGroup    Kind = "group"
	KindGradient Kind = "gradient"
)

// DrawableKinds are the kinds that carry a z index.
var DrawableKinds = []Kind{KindPath, KindText, KindImage, KindUse}

type Transform struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	SX float64 `json:"sx"`
	SY float64 `json:"sy"`
	R  float64 `json:"r"`
	AX float64 `json:"ax"`
	AY float64 `json:"ay"`
}

// IdentityTransform is the transform of a freshly created element.
var IdentityTransform = Transform{SX: 1, SY: 1}

type Style struct {
	Fill        string  `json:"fill"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
	Opacity     float64 `json:"opacity"`
}

// Element holds the fields every drawable element shares.
type Element struct {
	ID        string    `json:"id"`
	ZIndex    *int      `json:"zIndex,omitempty"`
	Transform Transform `json:"transform"`
	Style     Style     `json:"style"`
	Locked    bool      `json:"locked"`
}

// SetZ assigns the element's z index.
func (e *Element) SetZ(z int) {
	e.ZIndex = &z
}

// PathCommand is one segment: ["M", x, y], ["L", x, y],
// ["C", x1, y1, x2, y2, x, y], ["Q", x1, y1, x, y] or ["Z"].
type PathCommand []interface{}

type SubPath struct {
	ID       string        `json:"id"`
	Commands []PathCommand `json:"commands"`
}

type Path struct {
	Element
	SubPaths []SubPath `json:"subPaths"`
}

type Text struct {
	Element
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Content    string  `json:"content"`
	FontSize   float64 `json:"fontSize"`
	FontFamily string  `json:"fontFamily"`
}

type Image struct {
	Element
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Href   string  `json:"href"`
}

// Use references a symbol or another element by id.
type Use struct {
	Element
	Href   string  `json:"href"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Group holds child ids; children may themselves be groups.
type Group struct {
	ID        string    `json:"id"`
	Children  []string  `json:"children"`
	Transform Transform `json:"transform"`
	Locked    bool      `json:"locked"`
}

type GradientStop struct {
	ID     string  `json:"id"`
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
}

type Gradient struct {
	ID    string         `json:"id"`
	Type  string         `json:"type"` // "linear" or "radial"
	Stops []GradientStop `json:"stops"`
}

// NewEmptyDocument creates an empty document.
func NewEmptyDocument(id, name string) *Document {
	return &Document{
		ID:        id,
		Name:      name,
		Width:     1280,
		Height:    720,
		Paths:     []Path{},
		Texts:     []Text{},
		Images:    []Image{},
		Uses:      []Use{},
		Groups:    []Group{},
		Gradients: []Gradient{},
	}
}

// Parse decodes a document from JSON.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	data, err := json.Marshal(d)
	if err != nil {
		// Documents only hold JSON-safe values.
		panic("document: clone: " + err.Error())
	}
	out, err := Parse(data)
	if err != nil {
		panic("document: clone: " + err.Error())
	}
	return out
}

// Lookup returns the kind of the element with the given id.
func (d *Document) Lookup(id string) (Kind, bool) {
	for _, k := range []Kind{KindPath, KindText, KindImage, KindUse, KindGroup, KindGradient} {
		if d.indexOf(k, id) >= 0 {
			return k, true
		}
	}
	return "", false
}

func (d *Document) indexOf(k Kind, id string) int {
	switch k {
	case KindPath:
		for i := range d.Paths {
			if d.Paths[i].ID == id {
				return i
			}
		}
	case KindText:
		for i := range d.Texts {
			if d.Texts[i].ID == id {
				return i
			}
		}
	case KindImage:
		for i := range d.Images {
			if d.Images[i].ID == id {
				return i
			}
		}
	case KindUse:
		for i := range d.Uses {
			if d.Uses[i].ID == id {
				return i
			}
		}
	case KindGroup:
		for i := range d.Groups {
			if d.Groups[i].ID == id {
				return i
			}
		}
	case KindGradient:
		for i := range d.Gradients {
			if d.Gradients[i].ID == id {
				return i
			}
		}
	}
	return -1
}

// Element returns the shared fields of a drawable element.
func (d *Document) Element(id string) (*Element, Kind, bool) {
	for _, k := range DrawableKinds {
		if e := d.elementAt(k, d.indexOf(k, id)); e != nil {
			return e, k, true
		}
	}
	return nil, "", false
}

func (d *Document) elementAt(k Kind, i int) *Element {
	if i < 0 {
		return nil
	}
	switch k {
	case KindPath:
		return &d.Paths[i].Element
	case KindText:
		return &d.Texts[i].Element
	case KindImage:
		return &d.Images[i].Element
	case KindUse:
		return &d.Uses[i].Element
	}
	return nil
}

// Elements returns the drawable elements of kind k in creation order.
func (d *Document) Elements(k Kind) []*Element {
	var n int
	switch k {
	case KindPath:
		n = len(d.Paths)
	case KindText:
		n = len(d.Texts)
	case KindImage:
		n = len(d.Images)
	case KindUse:
		n = len(d.Uses)
	}
	out := make([]*Element, n)
	for i := range out {
		out[i] = d.elementAt(k, i)
	}
	return out
}

// Group returns the group with the given id.
func (d *Document) Group(id string) (*Group, bool) {
	i := d.indexOf(KindGroup, id)
	if i < 0 {
		return nil, false
	}
	return &d.Groups[i], true
}

// Path returns the path with the given id.
func (d *Document) Path(id string) (*Path, bool) {
	i := d.indexOf(KindPath, id)
	if i < 0 {
		return nil, false
	}
	return &d.Paths[i], true
}

// Text returns the text with the given id.
func (d *Document) Text(id string) (*Text, bool) {
	i := d.indexOf(KindText, id)
	if i < 0 {
		return nil, false
	}
	return &d.Texts[i], true
}

// SubPathOwner returns the path that owns the subpath and its index.
func (d *Document) SubPathOwner(subPathID string) (*Path, int, bool) {
	for i := range d.Paths {
		for j := range d.Paths[i].SubPaths {
			if d.Paths[i].SubPaths[j].ID == subPathID {
				return &d.Paths[i], j, true
			}
		}
	}
	return nil, -1, false
}

// SubPathOwners returns the ids of the paths that own any of the given
// subpaths.
func (d *Document) SubPathOwners(subPathIDs []string) map[string]bool {
	owners := make(map[string]bool)
	for _, id := range subPathIDs {
		if p, _, ok := d.SubPathOwner(id); ok {
			owners[p.ID] = true
		}
	}
	return owners
}

// ParentGroup returns the group that lists id as a child.
func (d *Document) ParentGroup(id string) (*Group, bool) {
	for i := range d.Groups {
		for _, c := range d.Groups[i].Children {
			if c == id {
				return &d.Groups[i], true
			}
		}
	}
	return nil, false
}
