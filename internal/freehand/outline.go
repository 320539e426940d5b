// Package freehand turns the raw points of a pencil stroke into a filled
// outline with tapered round ends.
package freehand

import (
	"math"

	"github.com/inamate/sketchboard/internal/document"
)

const (
	// DefaultSize is the outline diameter of a stroke drawn at the default
	// stroke width.
	DefaultSize = 16.0

	thinning   = 0.5
	streamline = 0.5
	capSteps   = 8
	dotSteps   = 16
)

// SizeFor maps a stroke width to an outline diameter.
func SizeFor(strokeWidth float64) float64 {
	if strokeWidth <= 0 {
		return DefaultSize
	}
	return strokeWidth * DefaultSize / 2
}

// Outline returns the closed polygon around a stroke through points with the
// given diameter. The polygon runs along the left side, around the end cap,
// back along the right side and around the start cap. A single point yields
// a dot.
func Outline(points []document.Point, size float64) []document.Point {
	if len(points) == 0 {
		panic("freehand: outline of a stroke without points")
	}

	pts := smooth(points)
	radii := pressureRadii(pts, size)

	if len(pts) == 1 {
		return arc(pts[0], radii[0], 0, 2*math.Pi, dotSteps, false)
	}

	left := make([]document.Point, len(pts))
	right := make([]document.Point, len(pts))
	dirs := make([]float64, len(pts))

	angle := 0.0
	for i, p := range pts {
		var from, to document.Point
		switch i {
		case 0:
			from, to = pts[0], pts[1]
		case len(pts) - 1:
			from, to = pts[i-1], pts[i]
		default:
			from, to = pts[i-1], pts[i+1]
		}
		if d := to.Sub(from); d.X != 0 || d.Y != 0 {
			angle = math.Atan2(d.Y, d.X)
		}
		dirs[i] = angle

		nx, ny := -math.Sin(angle)*radii[i], math.Cos(angle)*radii[i]
		left[i] = document.Point{X: p.X + nx, Y: p.Y + ny}
		right[i] = document.Point{X: p.X - nx, Y: p.Y - ny}
	}

	last := len(pts) - 1
	out := make([]document.Point, 0, 2*len(pts)+2*capSteps)
	out = append(out, left...)
	out = append(out, arc(pts[last], radii[last], dirs[last]+math.Pi/2, math.Pi, capSteps, true)...)
	for i := last; i >= 0; i-- {
		out = append(out, right[i])
	}
	out = append(out, arc(pts[0], radii[0], dirs[0]-math.Pi/2, math.Pi, capSteps, true)...)
	return out
}

// smooth pulls each point toward its predecessor and drops repeats. The
// final input point is kept exactly so the stroke ends under the pointer.
func smooth(points []document.Point) []document.Point {
	t := 0.15 + (1-streamline)*0.85

	out := []document.Point{points[0]}
	for _, p := range points[1:] {
		prev := out[len(out)-1]
		next := document.Point{X: prev.X + (p.X-prev.X)*t, Y: prev.Y + (p.Y-prev.Y)*t}
		if next != prev {
			out = append(out, next)
		}
	}

	end := points[len(points)-1]
	if len(out) > 1 {
		out[len(out)-1] = end
	} else if end != out[0] {
		out = append(out, end)
	}
	return out
}

// pressureRadii simulates pen pressure from speed: fast segments thin the
// stroke, slow ones thicken it.
func pressureRadii(pts []document.Point, size float64) []float64 {
	radii := make([]float64, len(pts))
	pressure := 0.5
	for i := range pts {
		if i > 0 {
			dx, dy := pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y
			sp := math.Min(1, math.Hypot(dx, dy)/size)
			rp := math.Min(1, 1-sp)
			pressure = math.Min(1, pressure+(rp-pressure)*sp*0.275)
		}
		radii[i] = size * (0.5 - thinning*(0.5-pressure))
	}
	return radii
}

// arc samples a circular arc of radius r around c, starting at angle from
// and turning toward smaller angles by sweep. With inner set both end points
// are left out; otherwise only the last one is, so a full turn does not
// repeat its start.
func arc(c document.Point, r, from, sweep float64, steps int, inner bool) []document.Point {
	first, last := 0, steps-1
	if inner {
		first = 1
	}
	out := make([]document.Point, 0, last-first+1)
	for k := first; k <= last; k++ {
		a := from - sweep*float64(k)/float64(steps)
		out = append(out, document.Point{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)})
	}
	return out
}
