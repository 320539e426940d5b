package geometry

import (
	"fmt"
	"math"
	"slices"

	"github.com/inamate/sketchboard/internal/document"
)

const (
	ArrowHeadLength = 20.0
	ArrowHeadAngle  = math.Pi / 6
)

// NewElement builds a fresh element of the given kind spanning p1 to p2.
// Pencil strokes start from p1 alone.
func NewElement(id document.ID, kind document.Kind, p1, p2 document.Point, style document.Style) document.Element {
	switch kind {
	case document.KindLine, document.KindRectangle, document.KindCircle, document.KindDiamond, document.KindArrow:
		box := document.Box{X1: p1.X, Y1: p1.Y, X2: p2.X, Y2: p2.Y}
		return document.Shape{
			ID:      id,
			Type:    kind,
			Box:     box,
			Style:   style,
			Payload: DeriveShape(kind, box, style),
		}
	case document.KindPencil:
		return document.Freehand{
			ID:     id,
			Points: []document.Point{p1},
			Style:  style,
		}
	case document.KindText:
		return document.Text{
			ID:    id,
			Box:   document.Box{X1: p1.X, Y1: p1.Y, X2: p2.X, Y2: p2.Y},
			Style: style,
		}
	default:
		panic(fmt.Sprintf("geometry: unknown element kind %q", kind))
	}
}

// FromRecord rebuilds an element from a validated interchange record,
// deriving its payload.
func FromRecord(r document.Record) document.Element {
	style := r.Style()
	switch {
	case r.Type.IsShape():
		return NewElement(r.ID, r.Type, document.Point{X: r.X1, Y: r.Y1}, document.Point{X: r.X2, Y: r.Y2}, style)
	case r.Type == document.KindPencil:
		return document.Freehand{
			ID:     r.ID,
			Points: slices.Clone(r.Points),
			Style:  style,
		}
	case r.Type == document.KindText:
		return document.Text{
			ID:      r.ID,
			Box:     document.Box{X1: r.X1, Y1: r.Y1, X2: r.X2, Y2: r.Y2},
			Content: r.Text,
			Style:   style,
		}
	default:
		panic(fmt.Sprintf("geometry: unknown element type %q", r.Type))
	}
}

// DeriveShape computes the drawing primitives of a box-defined kind.
//
// A circle is centred on (x1,y1) and passes through (x2,y2). A diamond joins
// the midpoints of the box edges. An arrow is its shaft plus two wings of
// ArrowHeadLength swept back from the tip at ±ArrowHeadAngle.
func DeriveShape(kind document.Kind, b document.Box, style document.Style) document.Payload {
	stroke := func(op document.PrimitiveOp, fill string, pts ...document.Point) document.Primitive {
		return document.Primitive{
			Op:          op,
			Points:      pts,
			Stroke:      style.StrokeColor,
			StrokeWidth: style.StrokeWidth,
			Fill:        fill,
		}
	}

	switch kind {
	case document.KindLine:
		return document.Payload{Primitives: []document.Primitive{
			stroke(document.OpLine, "", b.Start(), b.End()),
		}}

	case document.KindRectangle:
		rect := stroke(document.OpRectangle, style.BackgroundColor, b.Start())
		rect.Width = b.X2 - b.X1
		rect.Height = b.Y2 - b.Y1
		return document.Payload{Primitives: []document.Primitive{rect}}

	case document.KindCircle:
		circle := stroke(document.OpCircle, style.BackgroundColor, b.Start())
		circle.Diameter = 2 * Distance(b.Start(), b.End())
		return document.Payload{Primitives: []document.Primitive{circle}}

	case document.KindDiamond:
		midX := (b.X1 + b.X2) / 2
		midY := (b.Y1 + b.Y2) / 2
		return document.Payload{Primitives: []document.Primitive{
			stroke(document.OpPolygon, style.BackgroundColor,
				document.Point{X: midX, Y: b.Y1},
				document.Point{X: b.X2, Y: midY},
				document.Point{X: midX, Y: b.Y2},
				document.Point{X: b.X1, Y: midY},
			),
		}}

	case document.KindArrow:
		left, right := ArrowWings(b)
		return document.Payload{Primitives: []document.Primitive{
			stroke(document.OpLine, "", b.Start(), b.End()),
			stroke(document.OpLine, "", b.End(), left),
			stroke(document.OpLine, "", b.End(), right),
		}}

	default:
		panic(fmt.Sprintf("geometry: no shape for kind %q", kind))
	}
}

// ArrowWings returns the free ends of the two arrow-head segments.
func ArrowWings(b document.Box) (document.Point, document.Point) {
	angle := math.Atan2(b.Y2-b.Y1, b.X2-b.X1)
	left := document.Point{
		X: b.X2 - ArrowHeadLength*math.Cos(angle-ArrowHeadAngle),
		Y: b.Y2 - ArrowHeadLength*math.Sin(angle-ArrowHeadAngle),
	}
	right := document.Point{
		X: b.X2 - ArrowHeadLength*math.Cos(angle+ArrowHeadAngle),
		Y: b.Y2 - ArrowHeadLength*math.Sin(angle+ArrowHeadAngle),
	}
	return left, right
}

// BoxOf returns the stored box of a shape or text element. Pencil strokes
// have none and report the zero box.
func BoxOf(el document.Element) document.Box {
	switch e := el.(type) {
	case document.Shape:
		return e.Box
	case document.Text:
		return e.Box
	case document.Freehand:
		return document.Box{}
	default:
		panic(fmt.Sprintf("geometry: unknown element type %T", el))
	}
}

// WithBox returns a copy of el with a new box and a re-derived payload.
func WithBox(el document.Element, b document.Box) document.Element {
	switch e := el.(type) {
	case document.Shape:
		e.Box = b
		e.Payload = DeriveShape(e.Type, b, e.Style)
		return e
	case document.Text:
		e.Box = b
		return e
	case document.Freehand:
		panic(fmt.Sprintf("geometry: pencil element %d has no box", e.ID))
	default:
		panic(fmt.Sprintf("geometry: unknown element type %T", el))
	}
}

// WithPoints returns a copy of a pencil stroke with its points replaced.
func WithPoints(el document.Element, pts []document.Point) document.Element {
	f, ok := el.(document.Freehand)
	if !ok {
		panic(fmt.Sprintf("geometry: %s element %d has no points", el.Kind(), el.ElementID()))
	}
	if len(pts) == 0 {
		panic(fmt.Sprintf("geometry: pencil element %d would have no points", f.ID))
	}
	f.Points = pts
	return f
}

// AppendPoint returns a copy of a pencil stroke extended by p. The original
// point slice is never written to.
func AppendPoint(el document.Element, p document.Point) document.Element {
	f, ok := el.(document.Freehand)
	if !ok {
		panic(fmt.Sprintf("geometry: %s element %d has no points", el.Kind(), el.ElementID()))
	}
	pts := make([]document.Point, len(f.Points), len(f.Points)+1)
	copy(pts, f.Points)
	f.Points = append(pts, p)
	return f
}

// WithText returns a copy of a text element holding content.
func WithText(el document.Element, content string) document.Element {
	t, ok := el.(document.Text)
	if !ok {
		panic(fmt.Sprintf("geometry: %s element %d holds no text", el.Kind(), el.ElementID()))
	}
	t.Content = content
	return t
}
