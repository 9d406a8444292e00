//go:build js && wasm

package main

import (
	"fmt"
	"log/slog"
	"syscall/js"

	"github.com/inamate/inamate/editor-go/internal/engine"
	"github.com/inamate/inamate/editor-go/internal/geometry"
	"github.com/inamate/inamate/editor-go/internal/handles"
	"github.com/inamate/inamate/editor-go/internal/selection"
	"github.com/inamate/inamate/editor-go/internal/toolbar"
)

var eng *engine.Engine

func main() {
	eng = engine.NewEngine(engine.Options{
		Toolbar:  toolbar.DefaultConfig(),
		Geometry: domGeometry{},
		Host:     domHost{canvasID: "svg-canvas"},
		Device:   currentDevice(),
		Logger:   slog.Default(),
	})

	// Create the engine API object
	editorEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → engine) ---
	editorEngine.Set("loadDocument", js.FuncOf(loadDocument))
	editorEngine.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))
	editorEngine.Set("setSelection", js.FuncOf(setSelection))
	editorEngine.Set("setViewport", js.FuncOf(setViewport))
	editorEngine.Set("setDevice", js.FuncOf(setDevice))
	editorEngine.Set("reorder", js.FuncOf(reorder))
	editorEngine.Set("invokeAction", js.FuncOf(invokeAction))
	editorEngine.Set("toolbarPointer", js.FuncOf(toolbarPointer))
	editorEngine.Set("updateToolbarConfig", js.FuncOf(updateToolbarConfig))
	editorEngine.Set("undo", js.FuncOf(undo))
	editorEngine.Set("redo", js.FuncOf(redo))

	// --- Queries (frontend ← engine) ---
	editorEngine.Set("render", js.FuncOf(render))
	editorEngine.Set("hitTest", js.FuncOf(hitTest))
	editorEngine.Set("toolbarActions", js.FuncOf(toolbarActions))
	editorEngine.Set("toolbarPosition", js.FuncOf(toolbarPosition))
	editorEngine.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	editorEngine.Set("getDocument", js.FuncOf(getDocument))
	editorEngine.Set("getSelection", js.FuncOf(getSelection))
	editorEngine.Set("getToolbarConfig", js.FuncOf(getToolbarConfig))
	editorEngine.Set("canUndo", js.FuncOf(canUndo))
	editorEngine.Set("canRedo", js.FuncOf(canRedo))

	// Register on global scope
	js.Global().Set("editorEngine", editorEngine)

	// Signal that WASM is ready
	js.Global().Set("editorWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- DOM geometry ---

// domGeometry looks elements up by their data-<kind>-id attribute.
type domGeometry struct{}

func (domGeometry) BoundsFor(kind selection.Kind, id string) (geometry.Rect, bool) {
	doc := js.Global().Get("document")
	css := js.Global().Get("CSS")
	escaped := id
	if css.Truthy() && css.Get("escape").Truthy() {
		escaped = css.Call("escape", id).String()
	}

	var el js.Value
	ok := safely(func() {
		el = doc.Call("querySelector", fmt.Sprintf(`[data-%s-id="%s"]`, kind, escaped))
	})
	if !ok || el.IsNull() || el.IsUndefined() {
		return geometry.Rect{}, false
	}
	r := domRect(el.Call("getBoundingClientRect"))
	return r, !r.IsEmpty()
}

// domHost reads the canvas container and window from the DOM.
type domHost struct {
	canvasID string
}

func (h domHost) CanvasRect() (geometry.Rect, bool) {
	el := js.Global().Get("document").Call("getElementById", h.canvasID)
	if el.IsNull() || el.IsUndefined() {
		return geometry.Rect{}, false
	}
	return domRect(el.Call("getBoundingClientRect")), true
}

func (domHost) WindowSize() geometry.Size {
	w := js.Global().Get("window")
	return geometry.Size{Width: w.Get("innerWidth").Float(), Height: w.Get("innerHeight").Float()}
}

func domRect(v js.Value) geometry.Rect {
	return geometry.Rect{
		X:      v.Get("left").Float(),
		Y:      v.Get("top").Float(),
		Width:  v.Get("width").Float(),
		Height: v.Get("height").Float(),
	}
}

// safely runs fn and reports false if it panicked, which syscall/js does
// when the browser throws (e.g. on an invalid selector).
func safely(fn func()) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	fn()
	return true
}

func currentDevice() handles.Device {
	w := js.Global().Get("window")
	d := handles.Device{PixelRatio: 1}
	if r := w.Get("devicePixelRatio"); r.Type() == js.TypeNumber {
		d.PixelRatio = r.Float()
	}
	if mm := w.Get("matchMedia"); mm.Type() == js.TypeFunction {
		d.Mobile = w.Call("matchMedia", "(pointer: coarse)").Get("matches").Bool()
	}
	return d
}

// --- Command Handlers ---

func result(err error) interface{} {
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing document JSON"})
	}
	return result(eng.LoadDocument(args[0].String()))
}

func loadSampleDocument(this js.Value, args []js.Value) interface{} {
	eng.LoadSampleDocument()
	return result(nil)
}

func setSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeString {
		eng.Select(selection.Snapshot{})
		return result(nil)
	}
	return result(eng.SetSelection(args[0].String()))
}

func setViewport(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	eng.SetViewport(args[0].Float(), args[1].Float(), args[2].Float())
	return nil
}

func setDevice(this js.Value, args []js.Value) interface{} {
	d := currentDevice()
	if len(args) > 0 {
		d.Mobile = args[0].Truthy()
	}
	if len(args) > 1 && args[1].Type() == js.TypeNumber {
		d.PixelRatio = args[1].Float()
	}
	eng.SetDevice(d)
	return nil
}

func reorder(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(false)
	}
	return js.ValueOf(eng.ReorderSelection(args[0].String()))
}

func invokeAction(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing action id"})
	}
	arg := ""
	if len(args) > 1 && args[1].Type() == js.TypeString {
		arg = args[1].String()
	}
	return result(eng.InvokeAction(args[0].String(), arg))
}

func toolbarPointer(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf(false)
	}
	return js.ValueOf(eng.ToolbarPointer(args[0].String(), args[1].Int()))
}

func updateToolbarConfig(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing config JSON"})
	}
	return result(eng.UpdateToolbarConfig(args[0].String()))
}

func undo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Undo())
}

func redo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Redo())
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Render())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	return js.ValueOf(eng.HitTest(args[0].Float(), args[1].Float()))
}

func toolbarActions(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.ToolbarActions())
}

func toolbarPosition(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("null")
	}
	return js.ValueOf(eng.ToolbarPosition(args[0].Float(), args[1].Float()))
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetSelectionBounds())
}

func getDocument(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetDocument())
}

func getSelection(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetSelection())
}

func getToolbarConfig(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetToolbarConfig())
}

func canUndo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.CanUndo())
}

func canRedo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.CanRedo())
}
