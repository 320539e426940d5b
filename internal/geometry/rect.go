package geometry

import (
	"fmt"
	"iter"
	"math"

	"github.com/inamate/sketchboard/internal/document"
)

// Rect is an axis-aligned bounding box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectFromBox returns the box with its corners sorted.
func RectFromBox(b document.Box) Rect {
	minX, maxX := math.Min(b.X1, b.X2), math.Max(b.X1, b.X2)
	minY, maxY := math.Min(b.Y1, b.Y2), math.Max(b.Y1, b.Y2)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Contains checks if a point is inside the rect, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Union returns the smallest rect containing both rects. Degenerate rects
// (a horizontal line, a single point) still count as long as the other side
// has no extent either.
func (r Rect) Union(other Rect) Rect {
	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.X+r.Width, other.X+other.Width)
	maxY := max(r.Y+r.Height, other.Y+other.Height)

	return Rect{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Inset grows (d > 0) or shrinks the rect by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// Bounds returns the area el covers when drawn, ignoring stroke width.
func Bounds(el document.Element) Rect {
	switch e := el.(type) {
	case document.Shape:
		if e.Type == document.KindCircle {
			r := Distance(e.Box.Start(), e.Box.End())
			return Rect{X: e.Box.X1 - r, Y: e.Box.Y1 - r, Width: 2 * r, Height: 2 * r}
		}
		bounds := RectFromBox(e.Box)
		for _, prim := range e.Payload.Primitives {
			for _, pt := range prim.Points {
				bounds = bounds.Union(Rect{X: pt.X, Y: pt.Y})
			}
		}
		return bounds
	case document.Freehand:
		if len(e.Points) == 0 {
			panic(fmt.Sprintf("geometry: pencil element %d has no points", e.ID))
		}
		bounds := Rect{X: e.Points[0].X, Y: e.Points[0].Y}
		for _, pt := range e.Points[1:] {
			bounds = bounds.Union(Rect{X: pt.X, Y: pt.Y})
		}
		return bounds
	case document.Text:
		return TextBounds(e)
	default:
		panic(fmt.Sprintf("geometry: unknown element type %T", el))
	}
}

// BoundsAll returns the union of the bounds of every element, and false if
// there are none.
func BoundsAll(elements iter.Seq[document.Element]) (Rect, bool) {
	var result Rect
	first := true
	for el := range elements {
		b := Bounds(el)
		if first {
			result = b
			first = false
		} else {
			result = result.Union(b)
		}
	}
	return result, !first
}
