package geometry

import (
	"slices"
	"testing"

	"github.com/inamate/sketchboard/internal/document"
)

func pt(x, y float64) document.Point { return document.Point{X: x, Y: y} }

func newShape(id document.ID, kind document.Kind, x1, y1, x2, y2 float64) document.Element {
	return NewElement(id, kind, pt(x1, y1), pt(x2, y2), document.DefaultStyle())
}

func TestClassifyHit_Line(t *testing.T) {
	line := newShape(0, document.KindLine, 0, 0, 10, 10)

	tests := []struct {
		name   string
		p      document.Point
		want   Position
		wantOK bool
	}{
		{"on segment", pt(5, 5), PositionInside, true},
		{"far away", pt(100, 100), PositionNone, false},
		{"near start", pt(1, -2), PositionStart, true},
		{"near end", pt(12, 9), PositionEnd, true},
		{"off the line", pt(5, 12), PositionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClassifyHit(tt.p, line)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ClassifyHit(%v) = (%q, %v), want (%q, %v)", tt.p, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestClassifyHit_Rectangle(t *testing.T) {
	rect := newShape(0, document.KindRectangle, 10, 10, 50, 40)

	tests := []struct {
		p    document.Point
		want Position
	}{
		{pt(11, 12), PositionTopLeft},
		{pt(49, 9), PositionTopRight},
		{pt(8, 41), PositionBottomLeft},
		{pt(52, 43), PositionBottomRight},
		{pt(30, 25), PositionInside},
		{pt(10, 25), PositionInside},
		{pt(60, 25), PositionNone},
	}

	for _, tt := range tests {
		got, _ := ClassifyHit(tt.p, rect)
		if got != tt.want {
			t.Errorf("ClassifyHit(%v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestClassifyHit_Pencil(t *testing.T) {
	stroke := document.Freehand{
		ID:     0,
		Points: []document.Point{pt(0, 0), pt(10, 0), pt(10, 10)},
		Style:  document.DefaultStyle(),
	}

	if got, ok := ClassifyHit(pt(5, 1), stroke); !ok || got != PositionInside {
		t.Errorf("ClassifyHit near first segment = (%q, %v), want inside", got, ok)
	}
	if got, ok := ClassifyHit(pt(10, 5), stroke); !ok || got != PositionInside {
		t.Errorf("ClassifyHit on second segment = (%q, %v), want inside", got, ok)
	}
	if _, ok := ClassifyHit(pt(0, 10), stroke); ok {
		t.Error("ClassifyHit on opposite corner hit, want miss")
	}

	single := document.Freehand{Points: []document.Point{pt(3, 3)}}
	if _, ok := ClassifyHit(pt(3, 3), single); ok {
		t.Error("single-point stroke has no segments and must not hit")
	}
}

func TestClassifyHit_PencilWithoutPointsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("ClassifyHit on empty pencil did not panic")
		}
	}()
	ClassifyHit(pt(0, 0), document.Freehand{ID: 4})
}

func TestClassifyHit_UnknownShapePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("ClassifyHit on unknown shape kind did not panic")
		}
	}()
	ClassifyHit(pt(0, 0), document.Shape{Type: document.Kind("hexagon")})
}

func TestClassifyHit_Reductions(t *testing.T) {
	arrow := newShape(0, document.KindArrow, 0, 0, 100, 0)
	if got, _ := ClassifyHit(pt(50, 0), arrow); got != PositionInside {
		t.Errorf("arrow shaft = %q, want inside", got)
	}
	if got, _ := ClassifyHit(pt(99, 1), arrow); got != PositionEnd {
		t.Errorf("arrow tip = %q, want end", got)
	}

	circle := newShape(0, document.KindCircle, 0, 0, 30, 40)
	if got, _ := ClassifyHit(pt(31, 41), circle); got != PositionEnd {
		t.Errorf("circle surface point = %q, want end", got)
	}

	diamond := newShape(0, document.KindDiamond, 40, 40, 0, 0)
	if got, _ := ClassifyHit(pt(20, 20), diamond); got != PositionInside {
		t.Errorf("reversed diamond centre = %q, want inside", got)
	}
	if got, _ := ClassifyHit(pt(41, 41), diamond); got != PositionTopLeft {
		t.Errorf("reversed diamond (x1,y1) corner = %q, want topLeft", got)
	}

	style := document.DefaultStyle()
	text := document.Text{Box: document.Box{X1: 100, Y1: 100, X2: 100, Y2: 100}, Content: "hello", Style: style}
	if got, _ := ClassifyHit(pt(110, 90), text); got != PositionInside {
		t.Errorf("text glyph box = %q, want inside", got)
	}
	if _, ok := ClassifyHit(pt(100, 200), text); ok {
		t.Error("point below text hit, want miss")
	}
}

func TestClassifyHit_Circle(t *testing.T) {
	// Centre (100,100), radius 50, drawn horizontally.
	circle := newShape(0, document.KindCircle, 100, 100, 150, 100)

	tests := []struct {
		name   string
		p      document.Point
		want   Position
		wantOK bool
	}{
		{"left of centre", pt(60, 100), PositionInside, true},
		{"below right", pt(120, 120), PositionInside, true},
		{"below centre", pt(100, 130), PositionInside, true},
		{"centre", pt(100, 100), PositionInside, true},
		{"surface point", pt(149, 101), PositionEnd, true},
		{"outside bounds", pt(100, 160), PositionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClassifyHit(tt.p, circle)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ClassifyHit(%v) = %q %v, want %q %v", tt.p, got, ok, tt.want, tt.wantOK)
			}
		})
	}

	// Dragging the surface point changes the radius, keeping the centre.
	box := ResizeCorner(pt(100, 180), PositionEnd, BoxOf(circle))
	if box.X1 != 100 || box.Y1 != 100 || box.X2 != 100 || box.Y2 != 180 {
		t.Errorf("ResizeCorner(end) = %+v, want centre kept and surface at (100,180)", box)
	}
}

func TestElementAt_FirstMatchWins(t *testing.T) {
	first := newShape(0, document.KindRectangle, 0, 0, 100, 100)
	second := newShape(1, document.KindRectangle, 20, 20, 80, 80)
	elements := []document.Element{first, second}

	el, pos, ok := ElementAt(pt(50, 50), slices.Values(elements))
	if !ok {
		t.Fatal("ElementAt found nothing")
	}
	if el.ElementID() != 0 {
		t.Errorf("ElementAt returned id %d, want 0 (earliest created)", el.ElementID())
	}
	if pos != PositionInside {
		t.Errorf("ElementAt position = %q, want inside", pos)
	}

	if _, _, ok := ElementAt(pt(500, 500), slices.Values(elements)); ok {
		t.Error("ElementAt outside every element found a hit")
	}
}

func TestOnLine(t *testing.T) {
	a, b := pt(0, 0), pt(10, 0)
	if !OnLine(a, b, pt(5, 0), LineTolerance) {
		t.Error("OnLine(midpoint) = false, want true")
	}
	if OnLine(a, b, pt(5, 4), LineTolerance) {
		t.Error("OnLine(5,4) with tolerance 1 = true, want false")
	}
	if !OnLine(a, b, pt(5, 4), FreehandTolerance) {
		t.Error("OnLine(5,4) with tolerance 5 = false, want true")
	}
}
