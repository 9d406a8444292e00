package engine

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/inamate/inamate/editor-go/internal/document"
	"github.com/inamate/inamate/editor-go/internal/geometry"
	"github.com/inamate/inamate/editor-go/internal/handles"
	"github.com/inamate/inamate/editor-go/internal/placement"
	"github.com/inamate/inamate/editor-go/internal/plugins"
	"github.com/inamate/inamate/editor-go/internal/selection"
	"github.com/inamate/inamate/editor-go/internal/toolbar"
	"github.com/inamate/inamate/editor-go/internal/zorder"
)

// Options configures a new Engine.
type Options struct {
	Toolbar  toolbar.Config
	Geometry placement.GeometryProvider
	Host     placement.Host
	Device   handles.Device
	Logger   *slog.Logger
}

// Engine is the editor's application root. It owns the document store,
// the selection and viewport, and the services that resolve the floating
// toolbar against them. The frontend drives it through commands and reads
// results back as JSON.
type Engine struct {
	store     *document.Store
	toolbar   *toolbar.Manager
	placement *placement.Engine
	orderer   *zorder.Orderer
	pointer   *toolbar.PointerGate
	logger    *slog.Logger

	selection selection.Snapshot
	viewport  placement.Viewport
	device    handles.Device
}

// NewEngine creates an engine with an empty document and the built-in
// toolbar plugins registered.
func NewEngine(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := opts.Toolbar
	if cfg == (toolbar.Config{}) {
		cfg = toolbar.DefaultConfig()
	}

	store := document.NewStore(document.NewEmptyDocument("", "Untitled"), logger)
	e := &Engine{
		store:     store,
		toolbar:   toolbar.NewManager(cfg, logger),
		placement: placement.NewEngine(opts.Geometry, opts.Host, opts.Device, logger),
		orderer:   zorder.NewOrderer(store, logger),
		pointer:   toolbar.NewPointerGate(),
		logger:    logger,
		viewport:  placement.Viewport{Zoom: 1},
		device:    opts.Device,
	}
	plugins.RegisterAll(e.toolbar, e, logger)
	return e
}

// Toolbar returns the action registry so callers can register plugins.
func (e *Engine) Toolbar() *toolbar.Manager {
	return e.toolbar
}

// --- Commands (frontend → engine) ---

// LoadDocument loads a document from JSON and clears selection and history.
func (e *Engine) LoadDocument(jsonData string) error {
	doc, err := document.Parse([]byte(jsonData))
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	e.store.Replace(doc)
	e.selection = selection.Snapshot{}
	return nil
}

// LoadSampleDocument loads the built-in sample document.
func (e *Engine) LoadSampleDocument() {
	e.store.Replace(document.NewSampleDocument())
	e.selection = selection.Snapshot{}
}

// SetSelection replaces the selection from its JSON snapshot.
func (e *Engine) SetSelection(jsonData string) error {
	var s selection.Snapshot
	if err := json.Unmarshal([]byte(jsonData), &s); err != nil {
		return fmt.Errorf("set selection: %w", err)
	}
	e.Select(s)
	return nil
}

// Select replaces the selection. A missing selection box is computed
// from the document.
func (e *Engine) Select(s selection.Snapshot) {
	if s.SelectionBox == nil {
		if box, ok := e.selectionBounds(s); ok {
			s.SelectionBox = &box
		}
	}
	e.selection = s
}

// SetViewport updates the canvas pan and zoom.
func (e *Engine) SetViewport(panX, panY, zoom float64) {
	if zoom <= 0 {
		zoom = 1
	}
	e.viewport = placement.Viewport{Pan: geometry.Point{X: panX, Y: panY}, Zoom: zoom}
}

// SetDevice switches between the desktop and mobile profiles.
func (e *Engine) SetDevice(d handles.Device) {
	e.device = d
	e.placement.SetDevice(d)
}

// Mutate runs fn as one undoable edit of the document.
func (e *Engine) Mutate(label string, fn func(*document.Document) error) error {
	return e.store.Mutate(label, fn)
}

// Reorder applies a z-order command to the selection.
func (e *Engine) Reorder(op zorder.Op, s selection.Snapshot) bool {
	return e.orderer.Mixed(op, s)
}

// ReorderSelection applies a z-order command to the current selection.
func (e *Engine) ReorderSelection(op string) bool {
	return e.Reorder(zorder.Op(op), e.selection)
}

// Undo reverts the last edit. The selection is kept but its box is
// recomputed.
func (e *Engine) Undo() bool {
	label, ok := e.store.Undo()
	if ok {
		e.logger.Debug("undo", "label", label)
		e.refreshSelection()
	}
	return ok
}

// Redo reapplies the last undone edit.
func (e *Engine) Redo() bool {
	label, ok := e.store.Redo()
	if ok {
		e.logger.Debug("redo", "label", label)
		e.refreshSelection()
	}
	return ok
}

func (e *Engine) refreshSelection() {
	s := e.selection
	s.SelectionBox = nil
	e.Select(s)
}

// InvokeAction runs a toolbar action resolved for the current selection.
func (e *Engine) InvokeAction(id, arg string) error {
	a, ok := toolbar.Find(e.toolbar.ActionsForSelection(e.selection), id)
	if !ok {
		return fmt.Errorf("invoke %s: action not available", id)
	}
	if err := toolbar.Invoke(a, arg); err != nil {
		e.logger.Warn("toolbar action failed", "action", id, "error", err)
		return err
	}
	e.refreshSelection()
	return nil
}

// ToolbarPointer feeds a pointer event on the toolbar to the gesture
// gate. It reports whether the toolbar should handle the event; false
// means it belongs to a canvas gesture and must propagate.
func (e *Engine) ToolbarPointer(event string, pointerID int) bool {
	var d toolbar.PointerDecision
	switch event {
	case "down":
		d = e.pointer.Down(pointerID)
	case "move":
		d = e.pointer.Move(pointerID)
	case "up":
		d = e.pointer.Up(pointerID)
	default:
		e.pointer.Cancel()
		return false
	}
	return d == toolbar.Activate
}

// UpdateToolbarConfig merges a JSON config patch into the toolbar config.
func (e *Engine) UpdateToolbarConfig(jsonData string) error {
	var p toolbar.ConfigPatch
	if err := json.Unmarshal([]byte(jsonData), &p); err != nil {
		return fmt.Errorf("update toolbar config: %w", err)
	}
	e.toolbar.UpdateConfig(p)
	return nil
}

// --- Queries (frontend ← engine) ---

// Document returns the current document.
func (e *Engine) Document() *document.Document {
	return e.store.Document()
}

// Selection returns the current selection.
func (e *Engine) Selection() selection.Snapshot {
	return e.selection
}

// Render returns the draw commands for the document as JSON.
func (e *Engine) Render() string {
	result, err := DrawCommandsToJSON(CompileDrawCommands(e.store.Document()))
	if err != nil {
		e.logger.Error("render failed", "error", err)
	}
	return result
}

// HitTest returns the id of the topmost element at the document-space
// point, or "".
func (e *Engine) HitTest(x, y float64) string {
	return HitTest(e.store.Document(), x, y)
}

type actionView struct {
	toolbar.Action
	Active bool `json:"active,omitempty"`
}

type toolbarView struct {
	Bar      []actionView    `json:"bar"`
	Overflow []actionView    `json:"overflow"`
	Profile  toolbar.Profile `json:"profile"`
}

func views(actions []toolbar.Action) []actionView {
	out := make([]actionView, len(actions))
	for i, a := range actions {
		out[i] = actionView{Action: a, Active: a.IsActive()}
	}
	return out
}

// ToolbarActions returns the resolved toolbar for the current selection
// as JSON, split into bar and overflow for the active profile.
func (e *Engine) ToolbarActions() string {
	profile := e.toolbar.Config().Profile(e.device.Mobile)
	bar, overflow := toolbar.Partition(e.toolbar.ActionsForSelection(e.selection), profile)

	data, err := json.Marshal(toolbarView{Bar: views(bar), Overflow: views(overflow), Profile: profile})
	if err != nil {
		e.logger.Error("toolbar serialization failed", "error", err)
		return "{}"
	}
	return string(data)
}

// ToolbarPosition returns where a toolbar of the given pixel size goes,
// as JSON. It returns "null" when nothing is selected or no position can
// be computed.
func (e *Engine) ToolbarPosition(width, height float64) string {
	if e.selection.IsEmpty() {
		return "null"
	}
	pos, err := e.placement.Calculate(e.selection, e.viewport, geometry.Size{Width: width, Height: height})
	if err != nil {
		e.logger.Debug("toolbar position unavailable", "error", err)
		return "null"
	}
	data, _ := json.Marshal(pos)
	return string(data)
}

// GetSelectionBounds returns the document-space bounds of the current
// selection as JSON.
func (e *Engine) GetSelectionBounds() string {
	box, _ := e.selectionBounds(e.selection)
	data, _ := json.Marshal(box)
	return string(data)
}

func (e *Engine) selectionBounds(s selection.Snapshot) (geometry.Rect, bool) {
	doc := e.store.Document()
	var union geometry.Rect
	found := false
	for _, kind := range selection.BoundsOrder {
		for _, id := range s.IDs(kind) {
			if r, ok := Bounds(doc, id); ok {
				union = union.Union(r)
				found = true
			}
		}
	}
	return union, found
}

// GetDocument returns the full document as JSON.
func (e *Engine) GetDocument() string {
	data, err := json.Marshal(e.store.Document())
	if err != nil {
		return "{}"
	}
	return string(data)
}

// GetSelection returns the current selection as JSON.
func (e *Engine) GetSelection() string {
	data, _ := json.Marshal(e.selection)
	return string(data)
}

// GetToolbarConfig returns the toolbar configuration as JSON.
func (e *Engine) GetToolbarConfig() string {
	data, _ := json.Marshal(e.toolbar.Config())
	return string(data)
}

// CanUndo reports whether there is an edit to undo.
func (e *Engine) CanUndo() bool { return e.store.CanUndo() }

// CanRedo reports whether there is an edit to redo.
func (e *Engine) CanRedo() bool { return e.store.CanRedo() }
