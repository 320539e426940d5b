package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/inamate/sketchboard/internal/document"
	"github.com/inamate/sketchboard/internal/geometry"
)

func newTestRaster(t *testing.T, opts ...RasterOption) *Raster {
	t.Helper()
	fonts, err := NewFontBook()
	if err != nil {
		t.Fatalf("NewFontBook() error = %v", err)
	}
	t.Cleanup(func() { fonts.Close() })

	r := NewRaster(100, 100, "#ffffff", fonts, opts...)
	t.Cleanup(func() { r.Close() })
	return r
}

func rgb(r *Raster, x, y int) (uint32, uint32, uint32) {
	cr, cg, cb, _ := r.Image().At(x, y).RGBA()
	return cr >> 8, cg >> 8, cb >> 8
}

func TestRaster_FilledRectangle(t *testing.T) {
	r := newTestRaster(t)
	style := document.DefaultStyle()
	style.BackgroundColor = "#ff0000"

	el := geometry.NewElement(0, document.KindRectangle, document.Point{X: 10, Y: 10}, document.Point{X: 60, Y: 60}, style)
	if err := r.Draw(el); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	red, green, blue := rgb(r, 35, 35)
	if red < 200 || green > 60 || blue > 60 {
		t.Errorf("centre pixel = (%d,%d,%d), want red fill", red, green, blue)
	}
	red, green, blue = rgb(r, 90, 90)
	if red != 255 || green != 255 || blue != 255 {
		t.Errorf("outside pixel = (%d,%d,%d), want white background", red, green, blue)
	}
}

func TestRaster_ScaledExport(t *testing.T) {
	r := newTestRaster(t, WithScale(2))
	style := document.DefaultStyle()
	style.BackgroundColor = "#0000ff"

	el := geometry.NewElement(0, document.KindRectangle, document.Point{X: 10, Y: 10}, document.Point{X: 40, Y: 40}, style)
	if err := r.Draw(el); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	// (70,70) lies outside the unscaled rectangle but inside the doubled one.
	_, _, blue := rgb(r, 70, 70)
	if blue < 200 {
		t.Errorf("pixel (70,70) blue = %d, want scaled fill", blue)
	}
}

func TestRaster_PencilAndText(t *testing.T) {
	r := newTestRaster(t)
	style := document.DefaultStyle()

	stroke := document.Freehand{ID: 0, Points: []document.Point{{X: 10, Y: 20}, {X: 90, Y: 20}}, Style: style}
	label := document.Text{ID: 1, Box: document.Box{X1: 10, Y1: 80, X2: 10, Y2: 80}, Content: "Hello", Style: style}
	empty := document.Text{ID: 2, Box: document.Box{X1: 10, Y1: 50}, Style: style}

	for _, el := range []document.Element{stroke, label, empty} {
		if err := r.Draw(el); err != nil {
			t.Fatalf("Draw(%s) error = %v", el.Kind(), err)
		}
	}

	if red, _, _ := rgb(r, 50, 20); red > 60 {
		t.Errorf("pencil centre red = %d, want dark fill", red)
	}

	inked := false
	for y := 60; y < 85 && !inked; y++ {
		for x := 10; x < 70; x++ {
			if red, _, _ := rgb(r, x, y); red < 128 {
				inked = true
				break
			}
		}
	}
	if !inked {
		t.Error("text left no ink in its glyph box")
	}

	for x := 0; x < 100; x++ {
		if red, _, _ := rgb(r, x, 45); red != 255 {
			t.Fatalf("row 45 has ink at x=%d; empty text must draw nothing", x)
		}
	}
}

func TestRaster_EncodePNG(t *testing.T) {
	r := newTestRaster(t)
	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
		t.Errorf("image size = %dx%d, want 100x100", b.Dx(), b.Dy())
	}
}

func TestFontBook_Fallback(t *testing.T) {
	fonts, err := NewFontBook()
	if err != nil {
		t.Fatalf("NewFontBook() error = %v", err)
	}
	defer fonts.Close()

	if fonts.Face("Comic Sans", 12) == nil {
		t.Error("Face(unknown family) = nil, want fallback face")
	}
	if fonts.Face(document.FontCourierNew, 12) == nil {
		t.Error("Face(Courier New) = nil")
	}
}
