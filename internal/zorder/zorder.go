// Package zorder maintains the draw order of path, text, image and use
// elements and implements the reorder commands behind the arrange menu.
//
// Every drawable element carries an integer z index. Indexes are assigned
// lazily from per-kind base ranges so that creation order is stable until
// the first reorder. Plain operations mutate the document without touching
// history; callers push their own checkpoint first. Mixed pushes one
// checkpoint per sub-dispatch that actually changes something.
package zorder

import (
	"log/slog"

	"github.com/inamate/inamate/editor-go/internal/document"
)

// Base z index of each drawable kind.
const (
	PathBase  = 1000
	TextBase  = 2000
	ImageBase = 3000
	UseBase   = 4000
)

// Base returns the base z index of kind k, or 0 for non-drawable kinds.
func Base(k document.Kind) int {
	switch k {
	case document.KindPath:
		return PathBase
	case document.KindText:
		return TextBase
	case document.KindImage:
		return ImageBase
	case document.KindUse:
		return UseBase
	}
	return 0
}

// Op is one of the four reorder commands.
type Op string

const (
	BringToFront Op = "bring-to-front"
	SendForward  Op = "send-forward"
	SendBackward Op = "send-backward"
	SendToBack   Op = "send-to-back"
)

// Ops lists the reorder commands in menu order.
var Ops = []Op{BringToFront, SendForward, SendBackward, SendToBack}

// Label is the history label for the command.
func (op Op) Label() string {
	switch op {
	case BringToFront:
		return "Bring to front"
	case SendForward:
		return "Bring forward"
	case SendBackward:
		return "Send backward"
	case SendToBack:
		return "Send to back"
	}
	return string(op)
}

// Valid reports whether op is a known command.
func (op Op) Valid() bool {
	switch op {
	case BringToFront, SendForward, SendBackward, SendToBack:
		return true
	}
	return false
}

// Checkpointer records an undo step.
type Checkpointer interface {
	PushHistory(label string)
}

// Store is the document store the orderer works against.
type Store interface {
	Checkpointer
	Document() *document.Document
}

// Orderer applies reorder commands to the store's current document.
type Orderer struct {
	store  Store
	logger *slog.Logger
}

// NewOrderer creates an orderer over store.
func NewOrderer(store Store, logger *slog.Logger) *Orderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orderer{store: store, logger: logger}
}

// InitializeZIndexes assigns base+creation index to every drawable
// element that has no z index yet. It returns the number assigned.
func InitializeZIndexes(doc *document.Document) int {
	n := 0
	for _, k := range document.DrawableKinds {
		base := Base(k)
		for i, e := range doc.Elements(k) {
			if e.ZIndex == nil {
				e.SetZ(base + i)
				n++
			}
		}
	}
	return n
}

// ZIndexOf returns the element's z index, or its kind's base when none
// has been assigned.
func ZIndexOf(doc *document.Document, id string) (int, bool) {
	e, k, ok := doc.Element(id)
	if !ok {
		return 0, false
	}
	if e.ZIndex == nil {
		return Base(k), true
	}
	return *e.ZIndex, true
}

// InitializeZIndexes runs InitializeZIndexes on the current document.
func (o *Orderer) InitializeZIndexes() int {
	return InitializeZIndexes(o.store.Document())
}

// BringToFront moves ids above every other element, keeping their
// stacking order among themselves.
func (o *Orderer) BringToFront(ids []string) bool {
	return o.apply(BringToFront, ids, planElements)
}

// SendToBack moves ids below every other element.
func (o *Orderer) SendToBack(ids []string) bool {
	return o.apply(SendToBack, ids, planElements)
}

// SendForward swaps each id with the nearest element above it that is
// not itself being moved.
func (o *Orderer) SendForward(ids []string) bool {
	return o.apply(SendForward, ids, planElements)
}

// SendBackward swaps each id with the nearest element below it that is
// not itself being moved.
func (o *Orderer) SendBackward(ids []string) bool {
	return o.apply(SendBackward, ids, planElements)
}

type planner func(doc *document.Document, op Op, ids []string) plan

func (o *Orderer) apply(op Op, ids []string, fn planner) bool {
	doc := o.store.Document()
	p := fn(doc, op, ids)
	if p.empty() {
		return false
	}
	p.commit()
	o.logger.Debug("reordered", "op", string(op), "ids", len(ids), "changed", len(p.z)+len(p.subPaths))
	return true
}
