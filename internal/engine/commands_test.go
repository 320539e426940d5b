package engine

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/inamate/sketchboard/internal/document"
	"github.com/inamate/sketchboard/internal/geometry"
	"github.com/inamate/sketchboard/internal/history"
)

func TestCompileDrawCommands(t *testing.T) {
	style := document.DefaultStyle()
	s := history.NewSnapshot(
		geometry.NewElement(0, document.KindRectangle, pt(0, 0), pt(10, 10), style),
		geometry.NewElement(1, document.KindArrow, pt(0, 0), pt(50, 0), style),
		document.Text{ID: 2, Box: document.Box{X1: 5, Y1: 30}, Style: style},
		document.Text{ID: 3, Box: document.Box{X1: 5, Y1: 60}, Content: "hi", Style: style},
		document.Freehand{ID: 4, Points: []document.Point{pt(0, 0), pt(20, 20)}, Style: style},
	)

	commands := CompileDrawCommands(s, Identity())

	// rectangle 1 + arrow 3 + empty text 0 + text 1 + pencil 1
	if len(commands) != 6 {
		t.Fatalf("len(commands) = %d, want 6", len(commands))
	}

	rect := commands[0]
	if rect.Op != "path" || rect.Fill != "#ffffff" || rect.Stroke != "#000000" || rect.StrokeWidth != 2 {
		t.Errorf("rectangle command = %+v", rect)
	}
	if len(rect.Path) != 5 || rect.Path[4][0] != "Z" {
		t.Errorf("rectangle path = %v, want closed 4-corner path", rect.Path)
	}
	if rect.Transform != nil {
		t.Errorf("identity transform serialized as %v", rect.Transform)
	}

	for _, cmd := range commands[1:4] {
		if cmd.ElementID != 1 || cmd.Fill != "" {
			t.Errorf("arrow command = %+v, want unfilled id 1", cmd)
		}
	}

	text := commands[4]
	if text.Op != "text" || text.Text != "hi" || text.Font != "20px Arial" || text.X != 5 || text.Y != 60 {
		t.Errorf("text command = %+v", text)
	}

	pencil := commands[5]
	if pencil.Fill != "#000000" || pencil.Stroke != "" {
		t.Errorf("pencil command fill %q stroke %q, want filled outline", pencil.Fill, pencil.Stroke)
	}
	if pencil.Path[0][0] != "M" || pencil.Path[len(pencil.Path)-1][0] != "Z" {
		t.Errorf("pencil path not closed: %v", pencil.Path)
	}
}

func TestCompileDrawCommands_Circle(t *testing.T) {
	el := geometry.NewElement(0, document.KindCircle, pt(0, 0), pt(3, 4), document.DefaultStyle())
	commands := CompileDrawCommands(history.NewSnapshot(el), Identity())

	path := commands[0].Path
	if len(path) != 6 {
		t.Fatalf("circle path has %d segments, want 6", len(path))
	}
	if path[0][1] != 5.0 || path[0][2] != 0.0 {
		t.Errorf("circle starts at (%v, %v), want (5, 0)", path[0][1], path[0][2])
	}
}

func TestCompileDrawCommands_Transform(t *testing.T) {
	el := geometry.NewElement(0, document.KindLine, pt(0, 0), pt(1, 1), document.DefaultStyle())
	commands := CompileDrawCommands(history.NewSnapshot(el), Scale(2, 2))

	want := []float64{2, 0, 0, 2, 0, 0}
	got := commands[0].Transform
	if len(got) != 6 {
		t.Fatalf("Transform = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Transform = %v, want %v", got, want)
			break
		}
	}
}

func TestEngine_Render(t *testing.T) {
	e := newTestEngine(t)
	if got := e.Render(Identity()); got != "[]" {
		t.Errorf("Render() of empty canvas = %s, want []", got)
	}

	e.SetTool(ToolDiamond)
	drag(e, pt(0, 0), pt(40, 20))

	var commands []DrawCommand
	if err := json.Unmarshal([]byte(e.Render(Identity())), &commands); err != nil {
		t.Fatalf("Render() produced invalid JSON: %v", err)
	}
	if len(commands) != 1 || commands[0].Op != "path" {
		t.Errorf("Render() = %+v, want one path", commands)
	}
}

func TestViewport(t *testing.T) {
	v := NewViewport(100, 100)

	tests := []struct {
		set  int
		want int
	}{
		{300, MaxZoom},
		{10, MinZoom},
		{147, 150},
		{120, 120},
	}
	for _, tt := range tests {
		v.SetZoom(tt.set)
		if got := v.Zoom(); got != tt.want {
			t.Errorf("SetZoom(%d) -> Zoom() = %d, want %d", tt.set, got, tt.want)
		}
	}

	v.SetZoom(MaxZoom)
	v.ZoomIn()
	if v.Zoom() != MaxZoom {
		t.Errorf("ZoomIn() past max = %d", v.Zoom())
	}
	v.ZoomOut()
	if v.Zoom() != 190 {
		t.Errorf("ZoomOut() = %d, want 190", v.Zoom())
	}

	v.SetZoom(200)
	centre := v.ToCanvas(pt(50, 50))
	if centre != pt(50, 50) {
		t.Errorf("ToCanvas(centre) = %v, want (50,50)", centre)
	}
	corner := v.ToCanvas(pt(100, 100))
	if math.Abs(corner.X-75) > 1e-9 || math.Abs(corner.Y-75) > 1e-9 {
		t.Errorf("ToCanvas(100,100) at 200%% = %v, want (75,75)", corner)
	}
}

func TestEngine_SelectionBounds(t *testing.T) {
	e := newTestEngine(t)
	if _, ok := e.SelectionBounds(); ok {
		t.Error("SelectionBounds() with no selection = true, want false")
	}

	e.SetTool(ToolRectangle)
	drag(e, pt(10, 20), pt(50, 60))

	got, ok := e.SelectionBounds()
	if !ok {
		t.Fatal("SelectionBounds() = false, want the drawn rectangle")
	}
	want := geometry.Rect{X: 5, Y: 15, Width: 50, Height: 50}
	if got != want {
		t.Errorf("SelectionBounds() = %+v, want %+v", got, want)
	}
}
