package engine

import (
	"encoding/json"
	"fmt"

	"github.com/inamate/sketchboard/internal/document"
	"github.com/inamate/sketchboard/internal/freehand"
	"github.com/inamate/sketchboard/internal/geometry"
	"github.com/inamate/sketchboard/internal/history"
)

// circleKappa places cubic control points so four curves approximate a
// circle.
const circleKappa = 0.5522847498307936

// DrawCommand represents a single drawing operation for the frontend to execute.
// The frontend receives a list of these and executes them on a Canvas2D context.
type DrawCommand struct {
	Op          string        `json:"op"`                    // "path" or "text"
	ElementID   document.ID   `json:"elementId"`             // For hit correlation
	Transform   []float64     `json:"transform,omitempty"`   // [a, b, c, d, e, f] affine matrix
	Path        []PathCommand `json:"path,omitempty"`        // Path data for "path" ops
	Fill        string        `json:"fill,omitempty"`        // Fill color
	Stroke      string        `json:"stroke,omitempty"`      // Stroke color
	StrokeWidth float64       `json:"strokeWidth,omitempty"` // Stroke width
	Text        string        `json:"text,omitempty"`        // Glyph run for "text" ops
	Font        string        `json:"font,omitempty"`        // CSS font shorthand
	X           float64       `json:"x,omitempty"`           // Text baseline origin
	Y           float64       `json:"y,omitempty"`
}

// PathCommand represents a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["Q", cx, cy, x, y],
// ["C", x1, y1, x2, y2, x, y], ["Z"].
type PathCommand []any

// CompileDrawCommands generates a draw command buffer from a snapshot.
// Commands are in painter's order: creation order, later elements on top.
// Text elements without content produce nothing.
func CompileDrawCommands(s history.Snapshot, transform Matrix2D) []DrawCommand {
	var xf []float64
	if transform != Identity() {
		xf = transform.ToSlice()
	}

	var commands []DrawCommand
	for el := range s.All() {
		for _, cmd := range compileElement(el) {
			cmd.Transform = xf
			commands = append(commands, cmd)
		}
	}
	return commands
}

func compileElement(el document.Element) []DrawCommand {
	switch e := el.(type) {
	case document.Shape:
		commands := make([]DrawCommand, 0, len(e.Payload.Primitives))
		for _, prim := range e.Payload.Primitives {
			commands = append(commands, DrawCommand{
				Op:          "path",
				ElementID:   e.ID,
				Path:        primitivePath(prim),
				Fill:        prim.Fill,
				Stroke:      prim.Stroke,
				StrokeWidth: prim.StrokeWidth,
			})
		}
		return commands

	case document.Freehand:
		outline := freehand.Outline(e.Points, freehand.SizeFor(e.Style.StrokeWidth))
		start, curves := freehand.Curves(outline)
		path := make([]PathCommand, 0, len(curves)+2)
		path = append(path, PathCommand{"M", start.X, start.Y})
		for _, c := range curves {
			path = append(path, PathCommand{"Q", c.Control.X, c.Control.Y, c.To.X, c.To.Y})
		}
		path = append(path, PathCommand{"Z"})
		return []DrawCommand{{
			Op:        "path",
			ElementID: e.ID,
			Path:      path,
			Fill:      e.Style.StrokeColor,
		}}

	case document.Text:
		if e.Content == "" {
			return nil
		}
		return []DrawCommand{{
			Op:        "text",
			ElementID: e.ID,
			Text:      e.Content,
			Font:      CSSFont(e.Style),
			Fill:      e.Style.StrokeColor,
			X:         e.Box.X1,
			Y:         e.Box.Y1,
		}}

	default:
		panic(fmt.Sprintf("engine: unknown element type %T", el))
	}
}

func primitivePath(prim document.Primitive) []PathCommand {
	switch prim.Op {
	case document.OpLine:
		a, b := prim.Points[0], prim.Points[1]
		return []PathCommand{{"M", a.X, a.Y}, {"L", b.X, b.Y}}

	case document.OpRectangle:
		o := prim.Points[0]
		return []PathCommand{
			{"M", o.X, o.Y},
			{"L", o.X + prim.Width, o.Y},
			{"L", o.X + prim.Width, o.Y + prim.Height},
			{"L", o.X, o.Y + prim.Height},
			{"Z"},
		}

	case document.OpCircle:
		c := prim.Points[0]
		r := prim.Diameter / 2
		k := r * circleKappa
		return []PathCommand{
			{"M", c.X + r, c.Y},
			{"C", c.X + r, c.Y + k, c.X + k, c.Y + r, c.X, c.Y + r},
			{"C", c.X - k, c.Y + r, c.X - r, c.Y + k, c.X - r, c.Y},
			{"C", c.X - r, c.Y - k, c.X - k, c.Y - r, c.X, c.Y - r},
			{"C", c.X + k, c.Y - r, c.X + r, c.Y - k, c.X + r, c.Y},
			{"Z"},
		}

	case document.OpPolygon:
		path := make([]PathCommand, 0, len(prim.Points)+1)
		for i, p := range prim.Points {
			op := "L"
			if i == 0 {
				op = "M"
			}
			path = append(path, PathCommand{op, p.X, p.Y})
		}
		return append(path, PathCommand{"Z"})

	default:
		panic(fmt.Sprintf("engine: unknown primitive %q", prim.Op))
	}
}

// CSSFont returns the Canvas2D font shorthand for a text style.
func CSSFont(s document.Style) string {
	return fmt.Sprintf("%gpx %s", s.FontSize, s.FontFamily)
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	if commands == nil {
		return "[]", nil
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

// SelectionBounds returns the drawn area of the selected element, padded
// so the outline clears the resize handles.
func (e *Engine) SelectionBounds() (geometry.Rect, bool) {
	if e.selected == nil {
		return geometry.Rect{}, false
	}
	el, ok := e.current().Find(e.selected.id)
	if !ok {
		return geometry.Rect{}, false
	}
	return geometry.Bounds(el).Inset(geometry.HandleRadius), true
}

// Render compiles the current drawing to draw commands as JSON.
func (e *Engine) Render(transform Matrix2D) string {
	result, err := DrawCommandsToJSON(CompileDrawCommands(e.current(), transform))
	if err != nil {
		e.logger.Error("marshal draw commands", "error", err)
	}
	return result
}
