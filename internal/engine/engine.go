package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/inamate/sketchboard/internal/document"
	"github.com/inamate/sketchboard/internal/geometry"
	"github.com/inamate/sketchboard/internal/history"
)

var ErrNoPendingText = errors.New("no pending text entry")

// selection is the element grabbed by the last pointer down, as it was at
// that moment. Moves and resizes are computed from this capture, not from
// the live element.
type selection struct {
	id       document.ID
	position geometry.Position
	original document.Element

	// Distance from the pointer to the anchor (x1,y1), or to every point of
	// a pencil stroke.
	offset  document.Point
	offsets []document.Point
}

// Engine is the interaction state machine of one drawing surface. It owns
// the undo history and translates pointer and keyboard events into
// snapshots. An Engine is not safe for concurrent use.
type Engine struct {
	history *history.Manager
	tool    Tool
	style   document.Style
	action  Action

	selected *selection

	// Set on pointer down of a move or resize; the checkpoint is pushed on
	// the first move so a bare click leaves redo history intact.
	checkpointDue bool

	pendingText *document.ID

	nextID document.ID
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for state transitions and commits.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithSnapshot starts the engine from an existing drawing instead of an
// empty canvas.
func WithSnapshot(s history.Snapshot) Option {
	return func(e *Engine) {
		e.history.Reset(s)
		e.nextID = s.MaxID() + 1
	}
}

// NewEngine creates an engine on an empty canvas with the selection tool and
// the default style.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		history: history.NewManager(history.Snapshot{}),
		tool:    ToolSelection,
		style:   document.DefaultStyle(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// --- Commands ---

func (e *Engine) SetTool(t Tool) {
	if _, err := ParseTool(string(t)); err != nil {
		panic(fmt.Sprintf("engine: %v", err))
	}
	e.tool = t
}

func (e *Engine) SetStyle(s document.Style) { e.style = s }

// PointerDown starts a gesture at p in canvas coordinates.
func (e *Engine) PointerDown(p document.Point) {
	// A click elsewhere abandons an unanswered text entry; the placeholder
	// stays as an empty text element.
	e.pendingText = nil

	switch e.tool {
	case ToolSelection:
		el, pos, ok := geometry.ElementAt(p, e.current().All())
		if !ok {
			e.clearSelection()
			return
		}
		e.selected = grab(el, pos, p)
		e.checkpointDue = true
		if pos == geometry.PositionInside {
			e.setAction(ActionMoving)
		} else {
			e.setAction(ActionResizing)
		}

	case ToolText:
		el := e.create(p)
		e.selected = &selection{id: el.ElementID(), original: el}
		id := el.ElementID()
		e.pendingText = &id

	case ToolLine, ToolRectangle, ToolCircle, ToolDiamond, ToolArrow, ToolPencil:
		el := e.create(p)
		e.selected = &selection{id: el.ElementID(), original: el}
		e.setAction(ActionDrawing)

	default:
		panic(fmt.Sprintf("engine: unknown tool %q", e.tool))
	}
}

// PointerMove updates the element under the current gesture. Without a
// gesture it does nothing.
func (e *Engine) PointerMove(p document.Point) {
	if e.action == ActionIdle || e.selected == nil {
		return
	}

	cur := e.current()
	el, ok := cur.Find(e.selected.id)
	if !ok {
		// Undone from under the pointer.
		e.logger.Debug("gesture target gone", "element", e.selected.id, "action", e.action)
		e.clearSelection()
		return
	}

	var updated document.Element
	switch e.action {
	case ActionDrawing:
		if el.Kind() == document.KindPencil {
			updated = geometry.AppendPoint(el, p)
		} else {
			b := geometry.BoxOf(el)
			updated = geometry.WithBox(el, document.Box{X1: b.X1, Y1: b.Y1, X2: p.X, Y2: p.Y})
		}

	case ActionMoving:
		updated = e.selected.moveTo(p)

	case ActionResizing:
		box := geometry.ResizeCorner(p, e.selected.position, geometry.BoxOf(e.selected.original))
		updated = geometry.WithBox(e.selected.original, box)

	default:
		panic(fmt.Sprintf("engine: unknown action %v", e.action))
	}

	if e.checkpointDue {
		e.history.Push(cur, false)
		e.checkpointDue = false
		e.logger.Debug("checkpoint", "action", e.action, "history", e.history.Len())
	}
	e.history.Push(cur.Replace(updated), true)
}

// PointerUp ends the current gesture. Rectangles and lines that were drawn
// or resized are normalized.
func (e *Engine) PointerUp(p document.Point) {
	if (e.action == ActionDrawing || e.action == ActionResizing) && e.selected != nil {
		cur := e.current()
		if el, ok := cur.Find(e.selected.id); ok && geometry.NeedsNormalize(el.Kind()) {
			if n := geometry.Normalize(el); geometry.BoxOf(n) != geometry.BoxOf(el) {
				e.history.Push(cur.Replace(n), true)
			}
		}
	}
	e.checkpointDue = false
	e.setAction(ActionIdle)
}

// Delete removes the selected element as one undoable step and clears the
// selection. It reports whether anything was removed.
func (e *Engine) Delete() bool {
	if e.selected == nil {
		return false
	}
	id := e.selected.id
	e.clearSelection()
	if e.pendingText != nil && *e.pendingText == id {
		e.pendingText = nil
	}

	next, ok := e.current().Remove(id)
	if !ok {
		return false
	}
	e.history.Push(next, false)
	e.logger.Debug("delete", "element", id, "history", e.history.Len())
	return true
}

// Undo steps back one history entry. It reports whether the cursor moved.
// The selection is kept even if the selected element is no longer present.
func (e *Engine) Undo() bool { return e.history.Undo() }

// Redo steps forward one history entry. It reports whether the cursor moved.
func (e *Engine) Redo() bool { return e.history.Redo() }

// SubmitText completes the pending text entry. Empty content leaves the
// placeholder untouched.
func (e *Engine) SubmitText(content string) error {
	if e.pendingText == nil {
		return ErrNoPendingText
	}
	id := *e.pendingText
	e.pendingText = nil

	cur := e.current()
	el, ok := cur.Find(id)
	if !ok {
		return fmt.Errorf("submit text for element %d: %w", id, ErrNoPendingText)
	}
	if content == "" {
		return nil
	}
	e.history.Push(cur.Replace(geometry.WithText(el, content)), true)
	return nil
}

// CancelText abandons the pending text entry, keeping the placeholder.
func (e *Engine) CancelText() { e.pendingText = nil }

// Import replaces the drawing with an interchange payload as one undoable
// step. On error the drawing is left unchanged.
func (e *Engine) Import(data []byte) error {
	s, err := DecodeSnapshot(data)
	if err != nil {
		return fmt.Errorf("import drawing: %w", err)
	}
	e.history.Push(s, false)
	e.afterReplace(s)
	e.logger.Debug("import", "elements", s.Len(), "history", e.history.Len())
	return nil
}

// Load replaces the drawing and discards all history, as when opening a
// saved drawing.
func (e *Engine) Load(data []byte) error {
	s, err := DecodeSnapshot(data)
	if err != nil {
		return fmt.Errorf("load drawing: %w", err)
	}
	e.history.Reset(s)
	e.afterReplace(s)
	return nil
}

// Clear empties the canvas as one undoable step.
func (e *Engine) Clear() {
	if e.current().Len() == 0 {
		return
	}
	e.history.Push(history.Snapshot{}, false)
	e.afterReplace(history.Snapshot{})
}

// --- Queries ---

func (e *Engine) Tool() Tool { return e.tool }
func (e *Engine) Style() document.Style { return e.style }
func (e *Engine) Action() Action { return e.action }
func (e *Engine) Snapshot() history.Snapshot { return e.current() }
func (e *Engine) CanUndo() bool { return e.history.CanUndo() }
func (e *Engine) CanRedo() bool { return e.history.CanRedo() }

// Selected returns the id of the selected element. After an undo it may
// name an element the current drawing does not hold.
func (e *Engine) Selected() (document.ID, bool) {
	if e.selected == nil {
		return 0, false
	}
	return e.selected.id, true
}

// PendingText returns the placeholder awaiting SubmitText.
func (e *Engine) PendingText() (document.ID, bool) {
	if e.pendingText == nil {
		return 0, false
	}
	return *e.pendingText, true
}

// Export serializes the current drawing.
func (e *Engine) Export() ([]byte, error) {
	data, err := document.EncodeElements(e.current().Elements())
	if err != nil {
		return nil, fmt.Errorf("export drawing: %w", err)
	}
	return data, nil
}

// Cursor returns the CSS cursor for the pointer at p.
func (e *Engine) Cursor(p document.Point) string {
	if e.tool != ToolSelection {
		return "default"
	}
	_, pos, ok := geometry.ElementAt(p, e.current().All())
	if !ok {
		return "default"
	}
	return CursorFor(pos)
}

// CursorFor maps a hit position to a CSS cursor.
func CursorFor(pos geometry.Position) string {
	switch pos {
	case geometry.PositionTopLeft, geometry.PositionBottomRight:
		return "nwse-resize"
	case geometry.PositionTopRight, geometry.PositionBottomLeft:
		return "nesw-resize"
	case geometry.PositionStart, geometry.PositionEnd, geometry.PositionInside:
		return "move"
	default:
		return "default"
	}
}

// --- internals ---

func (e *Engine) current() history.Snapshot { return e.history.Current() }

// create appends a zero-extent element of the active tool's kind at p.
func (e *Engine) create(p document.Point) document.Element {
	el := geometry.NewElement(e.nextID, e.tool.Kind(), p, p, e.style)
	e.nextID++
	e.history.Push(e.current().Append(el), false)
	e.logger.Debug("create", "element", el.ElementID(), "kind", el.Kind(), "history", e.history.Len())
	return el
}

func (e *Engine) setAction(a Action) {
	if e.action != a {
		e.logger.Debug("transition", "from", e.action, "to", a)
		e.action = a
	}
}

func (e *Engine) afterReplace(s history.Snapshot) {
	e.nextID = max(e.nextID, s.MaxID()+1)
	e.pendingText = nil
	e.clearSelection()
}

// clearSelection drops the selection and ends any gesture on it.
func (e *Engine) clearSelection() {
	e.selected = nil
	e.checkpointDue = false
	e.setAction(ActionIdle)
}

func grab(el document.Element, pos geometry.Position, p document.Point) *selection {
	sel := &selection{id: el.ElementID(), position: pos, original: el}
	if f, ok := el.(document.Freehand); ok {
		sel.offsets = make([]document.Point, len(f.Points))
		for i, pt := range f.Points {
			sel.offsets[i] = p.Sub(pt)
		}
		return sel
	}
	sel.offset = p.Sub(geometry.BoxOf(el).Start())
	return sel
}

func (s *selection) moveTo(p document.Point) document.Element {
	if s.offsets != nil {
		pts := make([]document.Point, len(s.offsets))
		for i, off := range s.offsets {
			pts[i] = p.Sub(off)
		}
		return geometry.WithPoints(s.original, pts)
	}
	return geometry.Translate(s.original, p.Sub(s.offset))
}

// DecodeSnapshot turns an interchange payload into a snapshot, deriving
// every element's payload. Nothing is returned if any record is invalid.
func DecodeSnapshot(data []byte) (history.Snapshot, error) {
	records, err := document.DecodeRecords(data)
	if err != nil {
		return history.Snapshot{}, fmt.Errorf("decode drawing: %w", err)
	}
	elements := make([]document.Element, len(records))
	for i, r := range records {
		elements[i] = geometry.FromRecord(r)
	}
	return history.NewSnapshot(elements...), nil
}
