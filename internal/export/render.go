// Package export renders drawings to PNG files.
package export

import (
	"fmt"
	"io"
	"math"

	"github.com/inamate/sketchboard/internal/engine"
	"github.com/inamate/sketchboard/internal/history"
	"github.com/inamate/sketchboard/internal/render"
)

const DefaultBackground = "#ffffff"

type Options struct {
	Width, Height int
	// Zoom in percent, snapped to the viewport's zoom steps. Zero means 100.
	Zoom       int
	Background string
}

// Size returns the output image size for opts.
func (o Options) Size() (int, int) {
	s := o.scale()
	return int(math.Ceil(float64(o.Width) * s)), int(math.Ceil(float64(o.Height) * s))
}

func (o Options) scale() float64 {
	if o.Zoom == 0 {
		return 1
	}
	vp := engine.NewViewport(float64(o.Width), float64(o.Height))
	vp.SetZoom(o.Zoom)
	return vp.Scale()
}

// Render rasterizes s in painter's order and writes it to w as PNG.
func Render(w io.Writer, s history.Snapshot, fonts *render.FontBook, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("render: invalid canvas size %dx%d", opts.Width, opts.Height)
	}
	if opts.Background == "" {
		opts.Background = DefaultBackground
	}

	width, height := opts.Size()
	r := render.NewRaster(width, height, opts.Background, fonts, render.WithScale(opts.scale()))
	defer r.Close()

	if err := r.DrawAll(s.All()); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return r.EncodePNG(w)
}
