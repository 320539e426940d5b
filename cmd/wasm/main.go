//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/inamate/sketchboard/internal/document"
	"github.com/inamate/sketchboard/internal/engine"
)

var (
	eng      *engine.Engine
	viewport *engine.Viewport
	pointer  document.Point
)

func main() {
	eng = engine.NewEngine()
	viewport = engine.NewViewport(1200, 800)

	api := js.Global().Get("Object").New()

	// --- Commands (frontend → engine) ---
	api.Set("setCanvasSize", js.FuncOf(setCanvasSize))
	api.Set("pointerDown", js.FuncOf(pointerDown))
	api.Set("pointerMove", js.FuncOf(pointerMove))
	api.Set("pointerUp", js.FuncOf(pointerUp))
	api.Set("keyDown", js.FuncOf(keyDown))
	api.Set("setTool", js.FuncOf(setTool))
	api.Set("setStyle", js.FuncOf(setStyle))
	api.Set("setZoom", js.FuncOf(setZoom))
	api.Set("zoomIn", js.FuncOf(zoomIn))
	api.Set("zoomOut", js.FuncOf(zoomOut))
	api.Set("submitText", js.FuncOf(submitText))
	api.Set("cancelText", js.FuncOf(cancelText))
	api.Set("undo", js.FuncOf(undo))
	api.Set("redo", js.FuncOf(redo))
	api.Set("deleteSelected", js.FuncOf(deleteSelected))
	api.Set("clear", js.FuncOf(clearCanvas))
	api.Set("importJSON", js.FuncOf(importJSON))
	api.Set("loadJSON", js.FuncOf(loadJSON))
	api.Set("loadSample", js.FuncOf(loadSample))

	// --- Queries (frontend ← engine) ---
	api.Set("render", js.FuncOf(render))
	api.Set("cursor", js.FuncOf(cursor))
	api.Set("exportJSON", js.FuncOf(exportJSON))
	api.Set("getState", js.FuncOf(getState))
	api.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))

	js.Global().Set("sketchEngine", api)
	js.Global().Set("sketchWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func errorResult(err error) interface{} {
	return js.ValueOf(map[string]interface{}{"error": err.Error()})
}

func okResult() interface{} {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// pointerArg maps (x, y) relative to the canvas element into canvas
// coordinates. It reports false if the arguments are missing.
func pointerArg(args []js.Value) bool {
	if len(args) < 2 {
		return false
	}
	pointer = viewport.ToCanvas(document.Point{X: args[0].Float(), Y: args[1].Float()})
	return true
}

// --- Command Handlers ---

func setCanvasSize(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	zoom := viewport.Zoom()
	viewport = engine.NewViewport(args[0].Float(), args[1].Float())
	viewport.SetZoom(zoom)
	return nil
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	if pointerArg(args) {
		eng.PointerDown(pointer)
	}
	return nil
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	if pointerArg(args) {
		eng.PointerMove(pointer)
	}
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	if pointerArg(args) {
		eng.PointerUp(pointer)
	}
	return nil
}

// keyDown takes (key, ctrl, meta, shift) and returns the shortcut it
// triggered, "none" if any.
func keyDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(engine.ShortcutNone.String())
	}
	ev := engine.KeyEvent{Key: args[0].String()}
	if len(args) > 1 {
		ev.Ctrl = args[1].Truthy()
	}
	if len(args) > 2 {
		ev.Meta = args[2].Truthy()
	}
	if len(args) > 3 {
		ev.Shift = args[3].Truthy()
	}
	return js.ValueOf(eng.HandleKey(ev).String())
}

func setTool(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	tool, err := engine.ParseTool(args[0].String())
	if err != nil {
		return errorResult(err)
	}
	eng.SetTool(tool)
	return okResult()
}

// setStyle merges a JSON style object over the current style.
func setStyle(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	style := eng.Style()
	if err := json.Unmarshal([]byte(args[0].String()), &style); err != nil {
		return errorResult(err)
	}
	eng.SetStyle(style)
	return okResult()
}

func setZoom(this js.Value, args []js.Value) interface{} {
	if len(args) > 0 {
		viewport.SetZoom(args[0].Int())
	}
	return js.ValueOf(viewport.Zoom())
}

func zoomIn(this js.Value, args []js.Value) interface{} {
	viewport.ZoomIn()
	return js.ValueOf(viewport.Zoom())
}

func zoomOut(this js.Value, args []js.Value) interface{} {
	viewport.ZoomOut()
	return js.ValueOf(viewport.Zoom())
}

func submitText(this js.Value, args []js.Value) interface{} {
	text := ""
	if len(args) > 0 {
		text = args[0].String()
	}
	if err := eng.SubmitText(text); err != nil {
		return errorResult(err)
	}
	return okResult()
}

func cancelText(this js.Value, args []js.Value) interface{} {
	eng.CancelText()
	return nil
}

func undo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Undo())
}

func redo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Redo())
}

func deleteSelected(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Delete())
}

func clearCanvas(this js.Value, args []js.Value) interface{} {
	eng.Clear()
	return nil
}

func importJSON(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing drawing JSON"})
	}
	if err := eng.Import([]byte(args[0].String())); err != nil {
		return errorResult(err)
	}
	return okResult()
}

func loadJSON(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing drawing JSON"})
	}
	if err := eng.Load([]byte(args[0].String())); err != nil {
		return errorResult(err)
	}
	return okResult()
}

func loadSample(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(document.SampleRecords())
	if err != nil {
		return errorResult(err)
	}
	if err := eng.Load(data); err != nil {
		return errorResult(err)
	}
	return okResult()
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Render(viewport.Matrix()))
}

// cursor returns the CSS cursor for (x, y), or for the last pointer
// position when called without arguments.
func cursor(this js.Value, args []js.Value) interface{} {
	p := pointer
	if len(args) >= 2 {
		p = viewport.ToCanvas(document.Point{X: args[0].Float(), Y: args[1].Float()})
	}
	return js.ValueOf(eng.Cursor(p))
}

func exportJSON(this js.Value, args []js.Value) interface{} {
	data, err := eng.Export()
	if err != nil {
		return errorResult(err)
	}
	return js.ValueOf(string(data))
}

func getState(this js.Value, args []js.Value) interface{} {
	state := map[string]interface{}{
		"tool":    string(eng.Tool()),
		"action":  eng.Action().String(),
		"zoom":    viewport.Zoom(),
		"canUndo": eng.CanUndo(),
		"canRedo": eng.CanRedo(),
	}
	if id, ok := eng.Selected(); ok {
		state["selected"] = int(id)
	}
	if id, ok := eng.PendingText(); ok {
		state["pendingText"] = int(id)
	}
	return js.ValueOf(state)
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	r, ok := eng.SelectionBounds()
	if !ok {
		return js.Null()
	}
	return js.ValueOf(map[string]interface{}{
		"x":      r.X,
		"y":      r.Y,
		"width":  r.Width,
		"height": r.Height,
	})
}
