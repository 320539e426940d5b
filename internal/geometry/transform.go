package geometry

import (
	"math"

	"github.com/inamate/sketchboard/internal/document"
)

// ResizeCorner moves the coordinates addressed by a handle to p. Handles
// without a corner mapping (inside, none) leave the box unchanged.
func ResizeCorner(p document.Point, pos Position, b document.Box) document.Box {
	switch pos {
	case PositionStart, PositionTopLeft:
		return document.Box{X1: p.X, Y1: p.Y, X2: b.X2, Y2: b.Y2}
	case PositionTopRight:
		return document.Box{X1: b.X1, Y1: p.Y, X2: p.X, Y2: b.Y2}
	case PositionBottomLeft:
		return document.Box{X1: p.X, Y1: b.Y1, X2: b.X2, Y2: p.Y}
	case PositionEnd, PositionBottomRight:
		return document.Box{X1: b.X1, Y1: b.Y1, X2: p.X, Y2: p.Y}
	default:
		return b
	}
}

// NeedsNormalize reports whether elements of kind are normalized when a
// draw or resize gesture ends.
func NeedsNormalize(kind document.Kind) bool {
	return kind == document.KindRectangle || kind == document.KindLine
}

// Normalize puts an element's box into canonical order. Rectangles get
// x1<=x2 and y1<=y2. Lines and arrows get their endpoints ordered by x, then
// y, so the first one is always the start handle. Everything else is
// returned unchanged.
func Normalize(el document.Element) document.Element {
	s, ok := el.(document.Shape)
	if !ok {
		return el
	}

	b := s.Box
	switch s.Type {
	case document.KindRectangle:
		b = document.Box{
			X1: math.Min(b.X1, b.X2),
			Y1: math.Min(b.Y1, b.Y2),
			X2: math.Max(b.X1, b.X2),
			Y2: math.Max(b.Y1, b.Y2),
		}
	case document.KindLine, document.KindArrow:
		if b.X1 > b.X2 || (b.X1 == b.X2 && b.Y1 > b.Y2) {
			b = document.Box{X1: b.X2, Y1: b.Y2, X2: b.X1, Y2: b.Y1}
		}
	default:
		return el
	}

	if b == s.Box {
		return s
	}
	return WithBox(s, b)
}

// Translate moves el so that its anchor lands on to. The anchor is (x1,y1)
// for boxed elements; the box keeps its extent.
func Translate(el document.Element, to document.Point) document.Element {
	b := BoxOf(el)
	return WithBox(el, document.Box{
		X1: to.X,
		Y1: to.Y,
		X2: to.X + (b.X2 - b.X1),
		Y2: to.Y + (b.Y2 - b.Y1),
	})
}
