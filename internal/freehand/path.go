package freehand

import (
	"strconv"
	"strings"

	"github.com/inamate/sketchboard/internal/document"
)

// Curve is one quadratic segment of a smoothed outline.
type Curve struct {
	Control document.Point
	To      document.Point
}

// Curves smooths a closed polygon into quadratic segments. Each vertex
// becomes a control point and each segment ends halfway to the next vertex,
// wrapping around to the first.
func Curves(outline []document.Point) (document.Point, []Curve) {
	if len(outline) == 0 {
		return document.Point{}, nil
	}
	curves := make([]Curve, len(outline))
	for i, p := range outline {
		next := outline[(i+1)%len(outline)]
		curves[i] = Curve{
			Control: p,
			To:      document.Point{X: (p.X + next.X) / 2, Y: (p.Y + next.Y) / 2},
		}
	}
	return outline[0], curves
}

// SVGPath renders the smoothed outline as SVG path data, the form a Canvas2D
// Path2D accepts.
func SVGPath(outline []document.Point) string {
	start, curves := Curves(outline)
	if len(curves) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("M ")
	writePoint(&b, start)
	b.WriteString(" Q")
	for _, c := range curves {
		b.WriteByte(' ')
		writePoint(&b, c.Control)
		b.WriteByte(' ')
		writePoint(&b, c.To)
	}
	b.WriteString(" Z")
	return b.String()
}

func writePoint(b *strings.Builder, p document.Point) {
	b.WriteString(strconv.FormatFloat(p.X, 'f', -1, 64))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(p.Y, 'f', -1, 64))
}
