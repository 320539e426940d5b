package geometry

import (
	"math"
	"testing"

	"github.com/inamate/sketchboard/internal/document"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestNormalize_Rectangle(t *testing.T) {
	rect := newShape(0, document.KindRectangle, 50, 80, 10, 20)

	got := Normalize(rect).(document.Shape)
	want := document.Box{X1: 10, Y1: 20, X2: 50, Y2: 80}
	if got.Box != want {
		t.Errorf("Normalize() box = %+v, want %+v", got.Box, want)
	}

	prim := got.Payload.Primitives[0]
	if prim.Width != 40 || prim.Height != 60 {
		t.Errorf("payload size = %vx%v, want 40x60", prim.Width, prim.Height)
	}
}

func TestNormalize_LineAndArrow(t *testing.T) {
	tests := []struct {
		name string
		kind document.Kind
		in   document.Box
		want document.Box
	}{
		{"line right to left", document.KindLine, document.Box{X1: 10, Y1: 5, X2: 0, Y2: 0}, document.Box{X1: 0, Y1: 0, X2: 10, Y2: 5}},
		{"vertical line upward", document.KindLine, document.Box{X1: 3, Y1: 9, X2: 3, Y2: 1}, document.Box{X1: 3, Y1: 1, X2: 3, Y2: 9}},
		{"line already ordered", document.KindLine, document.Box{X1: 0, Y1: 9, X2: 4, Y2: 1}, document.Box{X1: 0, Y1: 9, X2: 4, Y2: 1}},
		{"arrow right to left", document.KindArrow, document.Box{X1: 8, Y1: 0, X2: 2, Y2: 0}, document.Box{X1: 2, Y1: 0, X2: 8, Y2: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := newShape(0, tt.kind, tt.in.X1, tt.in.Y1, tt.in.X2, tt.in.Y2)
			got := BoxOf(Normalize(el))
			if got != tt.want {
				t.Errorf("Normalize() box = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNormalize_LeavesOtherKinds(t *testing.T) {
	circle := newShape(0, document.KindCircle, 50, 50, 10, 10)
	if got := BoxOf(Normalize(circle)); got != (document.Box{X1: 50, Y1: 50, X2: 10, Y2: 10}) {
		t.Errorf("Normalize(circle) box = %+v, want unchanged", got)
	}

	diamond := newShape(0, document.KindDiamond, 40, 40, 0, 0)
	if got := BoxOf(Normalize(diamond)); got != (document.Box{X1: 40, Y1: 40, X2: 0, Y2: 0}) {
		t.Errorf("Normalize(diamond) box = %+v, want unchanged", got)
	}

	stroke := document.Freehand{Points: []document.Point{pt(5, 5), pt(1, 1)}}
	got := Normalize(stroke).(document.Freehand)
	if len(got.Points) != 2 || got.Points[0] != pt(5, 5) {
		t.Errorf("Normalize(pencil) = %+v, want unchanged", got.Points)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	elements := []document.Element{
		newShape(0, document.KindLine, 9, 9, 1, 1),
		newShape(1, document.KindRectangle, 30, 0, 0, 30),
		newShape(2, document.KindCircle, 5, 5, 0, 0),
		newShape(3, document.KindDiamond, 20, 10, 0, 0),
		newShape(4, document.KindArrow, 7, 7, 7, 0),
		document.Text{ID: 5, Box: document.Box{X1: 4, Y1: 4, X2: 4, Y2: 4}, Content: "x", Style: document.DefaultStyle()},
	}

	for _, el := range elements {
		once := Normalize(el)
		twice := Normalize(once)
		if BoxOf(once) != BoxOf(twice) {
			t.Errorf("Normalize(Normalize(%s)) = %+v, want %+v", el.Kind(), BoxOf(twice), BoxOf(once))
		}
	}
}

func TestResizeCorner(t *testing.T) {
	box := document.Box{X1: 0, Y1: 0, X2: 10, Y2: 10}

	tests := []struct {
		pos  Position
		p    document.Point
		want document.Box
	}{
		{PositionBottomRight, pt(20, 20), document.Box{X1: 0, Y1: 0, X2: 20, Y2: 20}},
		{PositionEnd, pt(20, 20), document.Box{X1: 0, Y1: 0, X2: 20, Y2: 20}},
		{PositionTopLeft, pt(-5, -5), document.Box{X1: -5, Y1: -5, X2: 10, Y2: 10}},
		{PositionStart, pt(-5, -5), document.Box{X1: -5, Y1: -5, X2: 10, Y2: 10}},
		{PositionTopRight, pt(15, -2), document.Box{X1: 0, Y1: -2, X2: 15, Y2: 10}},
		{PositionBottomLeft, pt(-3, 12), document.Box{X1: -3, Y1: 0, X2: 10, Y2: 12}},
		{PositionInside, pt(99, 99), box},
		{PositionNone, pt(99, 99), box},
	}

	for _, tt := range tests {
		t.Run(string(tt.pos), func(t *testing.T) {
			if got := ResizeCorner(tt.p, tt.pos, box); got != tt.want {
				t.Errorf("ResizeCorner(%v, %q) = %+v, want %+v", tt.p, tt.pos, got, tt.want)
			}
		})
	}
}

func TestTranslate(t *testing.T) {
	rect := newShape(0, document.KindRectangle, 10, 10, 30, 20)
	moved := Translate(rect, pt(100, 50)).(document.Shape)

	want := document.Box{X1: 100, Y1: 50, X2: 120, Y2: 60}
	if moved.Box != want {
		t.Errorf("Translate() box = %+v, want %+v", moved.Box, want)
	}
	if moved.Payload.Primitives[0].Points[0] != pt(100, 50) {
		t.Errorf("Translate() payload origin = %v, want (100,50)", moved.Payload.Primitives[0].Points[0])
	}
}

func TestDeriveShape_Circle(t *testing.T) {
	box := document.Box{X1: 0, Y1: 0, X2: 3, Y2: 4}
	payload := DeriveShape(document.KindCircle, box, document.DefaultStyle())

	c := payload.Primitives[0]
	if c.Op != document.OpCircle {
		t.Fatalf("op = %q, want circle", c.Op)
	}
	if c.Diameter != 10 {
		t.Errorf("Diameter = %v, want 10", c.Diameter)
	}
	if c.Points[0] != pt(0, 0) {
		t.Errorf("centre = %v, want (0,0)", c.Points[0])
	}
}

func TestDeriveShape_RectangleKeepsSign(t *testing.T) {
	box := document.Box{X1: 50, Y1: 80, X2: 10, Y2: 20}
	r := DeriveShape(document.KindRectangle, box, document.DefaultStyle()).Primitives[0]
	if r.Width != -40 || r.Height != -60 {
		t.Errorf("size = %vx%v, want -40x-60", r.Width, r.Height)
	}
	if r.Fill != "#ffffff" {
		t.Errorf("Fill = %q, want background colour", r.Fill)
	}
}

func TestDeriveShape_Diamond(t *testing.T) {
	box := document.Box{X1: 0, Y1: 0, X2: 40, Y2: 20}
	poly := DeriveShape(document.KindDiamond, box, document.DefaultStyle()).Primitives[0]

	want := []document.Point{pt(20, 0), pt(40, 10), pt(20, 20), pt(0, 10)}
	if len(poly.Points) != len(want) {
		t.Fatalf("diamond has %d vertices, want %d", len(poly.Points), len(want))
	}
	for i := range want {
		if poly.Points[i] != want[i] {
			t.Errorf("vertex %d = %v, want %v", i, poly.Points[i], want[i])
		}
	}
}

func TestDeriveShape_Arrow(t *testing.T) {
	box := document.Box{X1: 0, Y1: 0, X2: 100, Y2: 0}
	payload := DeriveShape(document.KindArrow, box, document.DefaultStyle())

	if len(payload.Primitives) != 3 {
		t.Fatalf("arrow has %d primitives, want 3", len(payload.Primitives))
	}
	for _, p := range payload.Primitives {
		if p.Fill != "" {
			t.Errorf("arrow primitive filled with %q, want none", p.Fill)
		}
	}

	left, right := ArrowWings(box)
	wingX := 100 - ArrowHeadLength*math.Cos(ArrowHeadAngle)
	if !approx(left.X, wingX) || !approx(left.Y, 10) {
		t.Errorf("left wing = %v, want (%v, 10)", left, wingX)
	}
	if !approx(right.X, wingX) || !approx(right.Y, -10) {
		t.Errorf("right wing = %v, want (%v, -10)", right, wingX)
	}
	if !approx(Distance(box.End(), left), ArrowHeadLength) {
		t.Errorf("wing length = %v, want %v", Distance(box.End(), left), ArrowHeadLength)
	}
}

func TestAppendPoint_CopyOnWrite(t *testing.T) {
	orig := document.Freehand{ID: 1, Points: make([]document.Point, 1, 8)}
	orig.Points[0] = pt(1, 1)

	a := AppendPoint(orig, pt(2, 2)).(document.Freehand)
	b := AppendPoint(orig, pt(3, 3)).(document.Freehand)

	if len(orig.Points) != 1 {
		t.Errorf("original stroke grew to %d points", len(orig.Points))
	}
	if a.Points[1] != pt(2, 2) {
		t.Errorf("first extension overwritten: %v", a.Points[1])
	}
	if b.Points[1] != pt(3, 3) {
		t.Errorf("second extension = %v, want (3,3)", b.Points[1])
	}
}

func TestWithBox_PencilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("WithBox on a pencil stroke did not panic")
		}
	}()
	WithBox(document.Freehand{ID: 2, Points: []document.Point{pt(0, 0)}}, document.Box{})
}

func TestBounds(t *testing.T) {
	circle := newShape(0, document.KindCircle, 10, 10, 13, 14)
	if got, want := Bounds(circle), (Rect{X: 5, Y: 5, Width: 10, Height: 10}); got != want {
		t.Errorf("Bounds(circle) = %+v, want %+v", got, want)
	}

	arrow := newShape(1, document.KindArrow, 0, 0, 100, 0)
	b := Bounds(arrow)
	if !approx(b.Y, -10) || !approx(b.Height, 20) {
		t.Errorf("Bounds(arrow) = %+v, want wings included", b)
	}

	stroke := document.Freehand{Points: []document.Point{pt(4, 9), pt(1, 2), pt(7, 3)}}
	if got, want := Bounds(stroke), (Rect{X: 1, Y: 2, Width: 6, Height: 7}); got != want {
		t.Errorf("Bounds(pencil) = %+v, want %+v", got, want)
	}
}
