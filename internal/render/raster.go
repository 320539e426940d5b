// Package render draws elements onto raster images.
package render

import (
	"fmt"
	"image"
	"io"
	"iter"
	"log/slog"

	"github.com/gogpu/gg"

	"github.com/inamate/sketchboard/internal/document"
	"github.com/inamate/sketchboard/internal/freehand"
)

// Renderer draws one element at a time in painter's order.
type Renderer interface {
	Draw(el document.Element) error
}

// Raster renders onto an in-memory image using the gg software rasterizer.
type Raster struct {
	dc    *gg.Context
	fonts *FontBook
	scale float64
}

// RasterOption configures a Raster.
type RasterOption func(*Raster)

// WithScale multiplies every coordinate, stroke width and font size by
// factor, as when exporting at a zoom level.
func WithScale(factor float64) RasterOption {
	return func(r *Raster) {
		if factor > 0 {
			r.scale = factor
		}
	}
}

// NewRaster creates a width x height canvas filled with background. The
// font book is shared and not closed by the raster.
func NewRaster(width, height int, background string, fonts *FontBook, opts ...RasterOption) *Raster {
	r := &Raster{
		dc:    gg.NewContext(width, height),
		fonts: fonts,
		scale: 1,
	}
	for _, opt := range opts {
		opt(r)
	}
	if background != "" {
		r.dc.ClearWithColor(gg.Hex(background))
	}
	return r
}

// Draw paints el. Text without content draws nothing.
func (r *Raster) Draw(el document.Element) error {
	switch e := el.(type) {
	case document.Shape:
		for _, prim := range e.Payload.Primitives {
			if err := r.drawPrimitive(prim); err != nil {
				return fmt.Errorf("draw %s %d: %w", e.Type, e.ID, err)
			}
		}
		return nil
	case document.Freehand:
		if err := r.drawStroke(e); err != nil {
			return fmt.Errorf("draw pencil %d: %w", e.ID, err)
		}
		return nil
	case document.Text:
		r.drawText(e)
		return nil
	default:
		panic(fmt.Sprintf("render: unknown element type %T", el))
	}
}

// DrawAll paints elements in order, stopping at the first failure.
func (r *Raster) DrawAll(elements iter.Seq[document.Element]) error {
	n := 0
	for el := range elements {
		if err := r.Draw(el); err != nil {
			return err
		}
		n++
	}
	slog.Debug("rasterized drawing", "elements", n, "scale", r.scale)
	return nil
}

func (r *Raster) Image() image.Image { return r.dc.Image() }

// EncodePNG writes the canvas as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	if err := r.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Close releases the drawing context.
func (r *Raster) Close() error { return r.dc.Close() }

func (r *Raster) xy(p document.Point) (float64, float64) {
	return p.X * r.scale, p.Y * r.scale
}

func (r *Raster) drawPrimitive(prim document.Primitive) error {
	switch prim.Op {
	case document.OpLine:
		x1, y1 := r.xy(prim.Points[0])
		x2, y2 := r.xy(prim.Points[1])
		r.dc.DrawLine(x1, y1, x2, y2)
	case document.OpRectangle:
		x, y := r.xy(prim.Points[0])
		r.dc.DrawRectangle(x, y, prim.Width*r.scale, prim.Height*r.scale)
	case document.OpCircle:
		x, y := r.xy(prim.Points[0])
		r.dc.DrawCircle(x, y, prim.Diameter/2*r.scale)
	case document.OpPolygon:
		for i, p := range prim.Points {
			x, y := r.xy(p)
			if i == 0 {
				r.dc.MoveTo(x, y)
			} else {
				r.dc.LineTo(x, y)
			}
		}
		r.dc.ClosePath()
	default:
		panic(fmt.Sprintf("render: unknown primitive %q", prim.Op))
	}

	if prim.Fill != "" {
		r.dc.SetHexColor(prim.Fill)
		if err := r.dc.FillPreserve(); err != nil {
			return err
		}
	}
	r.dc.SetHexColor(prim.Stroke)
	r.dc.SetLineWidth(prim.StrokeWidth * r.scale)
	return r.dc.Stroke()
}

func (r *Raster) drawStroke(f document.Freehand) error {
	outline := freehand.Outline(f.Points, freehand.SizeFor(f.Style.StrokeWidth))
	start, curves := freehand.Curves(outline)

	r.dc.MoveTo(r.xy(start))
	for _, c := range curves {
		cx, cy := r.xy(c.Control)
		x, y := r.xy(c.To)
		r.dc.QuadraticTo(cx, cy, x, y)
	}
	r.dc.ClosePath()
	r.dc.SetHexColor(f.Style.StrokeColor)
	return r.dc.Fill()
}

func (r *Raster) drawText(t document.Text) {
	if t.Content == "" {
		return
	}
	r.dc.SetFont(r.fonts.Face(t.Style.FontFamily, t.Style.FontSize*r.scale))
	r.dc.SetHexColor(t.Style.StrokeColor)
	x, y := r.xy(t.Box.Start())
	r.dc.DrawString(t.Content, x, y)
}
