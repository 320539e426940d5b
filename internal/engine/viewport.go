package engine

import "github.com/inamate/sketchboard/internal/document"

const (
	MinZoom     = 50
	MaxZoom     = 200
	ZoomStep    = 10
	DefaultZoom = 100
)

// Matrix2D is a 2D affine transform laid out as [a, b, c, d, e, f]:
//
//	| a  c  e |
//	| b  d  f |
//	| 0  0  1 |
type Matrix2D [6]float64

func Identity() Matrix2D { return Matrix2D{1, 0, 0, 1, 0, 0} }

func Translation(tx, ty float64) Matrix2D { return Matrix2D{1, 0, 0, 1, tx, ty} }

func Scale(sx, sy float64) Matrix2D { return Matrix2D{sx, 0, 0, sy, 0, 0} }

// Multiply returns m * other, which applies other first.
func (m Matrix2D) Multiply(other Matrix2D) Matrix2D {
	return Matrix2D{
		m[0]*other[0] + m[2]*other[1],
		m[1]*other[0] + m[3]*other[1],
		m[0]*other[2] + m[2]*other[3],
		m[1]*other[2] + m[3]*other[3],
		m[0]*other[4] + m[2]*other[5] + m[4],
		m[1]*other[4] + m[3]*other[5] + m[5],
	}
}

func (m Matrix2D) TransformPoint(p document.Point) document.Point {
	return document.Point{X: m[0]*p.X + m[2]*p.Y + m[4], Y: m[1]*p.X + m[3]*p.Y + m[5]}
}

// Invert returns the inverse of the matrix, or Identity if not invertible.
func (m Matrix2D) Invert() Matrix2D {
	det := m[0]*m[3] - m[1]*m[2]
	if det == 0 {
		return Identity()
	}

	invDet := 1.0 / det
	return Matrix2D{
		m[3] * invDet,
		-m[1] * invDet,
		-m[2] * invDet,
		m[0] * invDet,
		(m[2]*m[5] - m[3]*m[4]) * invDet,
		(m[1]*m[4] - m[0]*m[5]) * invDet,
	}
}

// ToSlice returns the matrix as a float64 slice for JSON serialization.
func (m Matrix2D) ToSlice() []float64 {
	return []float64{m[0], m[1], m[2], m[3], m[4], m[5]}
}

// Viewport is the zoom applied to a canvas of a fixed size. The canvas is
// scaled about its centre, the way a CSS scale transform does it.
type Viewport struct {
	Width  float64
	Height float64
	zoom   int
}

func NewViewport(width, height float64) *Viewport {
	return &Viewport{Width: width, Height: height, zoom: DefaultZoom}
}

// Zoom returns the zoom level in percent.
func (v *Viewport) Zoom() int { return v.zoom }

// SetZoom sets the zoom level, clamped to [MinZoom, MaxZoom] and snapped to
// a multiple of ZoomStep.
func (v *Viewport) SetZoom(percent int) {
	percent = (percent + ZoomStep/2) / ZoomStep * ZoomStep
	v.zoom = min(max(percent, MinZoom), MaxZoom)
}

func (v *Viewport) ZoomIn() { v.SetZoom(v.zoom + ZoomStep) }
func (v *Viewport) ZoomOut() { v.SetZoom(v.zoom - ZoomStep) }

// Scale returns the zoom as a factor.
func (v *Viewport) Scale() float64 { return float64(v.zoom) / 100 }

// Matrix maps canvas coordinates to screen coordinates.
func (v *Viewport) Matrix() Matrix2D {
	cx, cy := v.Width/2, v.Height/2
	s := v.Scale()
	return Translation(cx, cy).Multiply(Scale(s, s)).Multiply(Translation(-cx, -cy))
}

// ToCanvas maps a pointer position relative to the unscaled canvas origin
// back into canvas coordinates.
func (v *Viewport) ToCanvas(p document.Point) document.Point {
	return v.Matrix().Invert().TransformPoint(p)
}
