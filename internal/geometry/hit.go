package geometry

import (
	"fmt"
	"iter"
	"math"
	"unicode/utf8"

	"github.com/inamate/sketchboard/internal/document"
)

// Position classifies where a point hit an element.
type Position string

const (
	PositionNone        Position = ""
	PositionStart       Position = "start"
	PositionEnd         Position = "end"
	PositionTopLeft     Position = "topLeft"
	PositionTopRight    Position = "topRight"
	PositionBottomLeft  Position = "bottomLeft"
	PositionBottomRight Position = "bottomRight"
	PositionInside      Position = "inside"
)

const (
	// HandleRadius is the per-axis distance within which a point grabs an
	// endpoint or corner.
	HandleRadius = 5.0

	LineTolerance     = 1.0
	FreehandTolerance = 5.0

	textAdvanceRatio = 0.6
	textDescentRatio = 0.25
)

// Distance returns the Euclidean distance between a and b.
func Distance(a, b document.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// NearPoint reports whether p lies within HandleRadius of q on both axes.
func NearPoint(p, q document.Point) bool {
	return math.Abs(p.X-q.X) < HandleRadius && math.Abs(p.Y-q.Y) < HandleRadius
}

// OnLine reports whether c lies on segment a-b: the detour through c may
// exceed |ab| by less than tolerance.
func OnLine(a, b, c document.Point, tolerance float64) bool {
	offset := Distance(a, b) - (Distance(a, c) + Distance(b, c))
	return math.Abs(offset) < tolerance
}

// ClassifyHit returns where p hits el, or false if it misses.
//
// Lines and arrows hit at their endpoints or along the segment. Rectangles
// and diamonds hit at the corners of their box or inside it. Circles hit at
// their surface point, which resizes the radius, or inside their bounds. Pencil
// strokes hit along any segment. Text hits inside its estimated glyph box
// and has no handles.
func ClassifyHit(p document.Point, el document.Element) (Position, bool) {
	switch e := el.(type) {
	case document.Shape:
		switch e.Type {
		case document.KindLine, document.KindArrow:
			return lineHit(p, e.Box)
		case document.KindRectangle, document.KindDiamond:
			return boxHit(p, e.Box)
		case document.KindCircle:
			return circleHit(p, e)
		default:
			panic(fmt.Sprintf("geometry: unknown shape kind %q", e.Type))
		}
	case document.Freehand:
		if len(e.Points) == 0 {
			panic(fmt.Sprintf("geometry: pencil element %d has no points", e.ID))
		}
		for i := 0; i+1 < len(e.Points); i++ {
			if OnLine(e.Points[i], e.Points[i+1], p, FreehandTolerance) {
				return PositionInside, true
			}
		}
		return PositionNone, false
	case document.Text:
		if TextBounds(e).Contains(p.X, p.Y) {
			return PositionInside, true
		}
		return PositionNone, false
	default:
		panic(fmt.Sprintf("geometry: unknown element type %T", el))
	}
}

func lineHit(p document.Point, b document.Box) (Position, bool) {
	switch {
	case NearPoint(p, b.Start()):
		return PositionStart, true
	case NearPoint(p, b.End()):
		return PositionEnd, true
	case OnLine(b.Start(), b.End(), p, LineTolerance):
		return PositionInside, true
	}
	return PositionNone, false
}

// boxHit names corners after the raw coordinates so that the returned handle
// always addresses the same fields ResizeCorner rewrites.
func boxHit(p document.Point, b document.Box) (Position, bool) {
	switch {
	case NearPoint(p, document.Point{X: b.X1, Y: b.Y1}):
		return PositionTopLeft, true
	case NearPoint(p, document.Point{X: b.X2, Y: b.Y1}):
		return PositionTopRight, true
	case NearPoint(p, document.Point{X: b.X1, Y: b.Y2}):
		return PositionBottomLeft, true
	case NearPoint(p, document.Point{X: b.X2, Y: b.Y2}):
		return PositionBottomRight, true
	case RectFromBox(b).Contains(p.X, p.Y):
		return PositionInside, true
	}
	return PositionNone, false
}

// circleHit tests against the circle's bounding square, not its stored box,
// which runs from the centre to a surface point.
func circleHit(p document.Point, c document.Shape) (Position, bool) {
	switch {
	case NearPoint(p, c.Box.End()):
		return PositionEnd, true
	case Bounds(c).Contains(p.X, p.Y):
		return PositionInside, true
	}
	return PositionNone, false
}

// ElementAt returns the first element in list order that p hits. Earlier
// elements win over later ones even where a later one is drawn on top.
func ElementAt(p document.Point, elements iter.Seq[document.Element]) (document.Element, Position, bool) {
	for el := range elements {
		if pos, ok := ClassifyHit(p, el); ok {
			return el, pos, true
		}
	}
	return nil, PositionNone, false
}

// TextBounds estimates the glyph box of a text element from its font size.
// The anchor is the left end of the baseline.
func TextBounds(t document.Text) Rect {
	size := t.Style.FontSize
	runes := max(utf8.RuneCountInString(t.Content), 1)
	return Rect{
		X:      t.Box.X1,
		Y:      t.Box.Y1 - size,
		Width:  float64(runes) * size * textAdvanceRatio,
		Height: size * (1 + textDescentRatio),
	}
}
