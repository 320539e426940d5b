package document

import "fmt"

// ID identifies an element within a drawing. IDs are handed out by a
// monotonically increasing counter and are never reused, so they stay valid
// across deletions even though they start out equal to insertion indices.
type ID int

type Kind string

const (
	KindLine      Kind = "line"
	KindRectangle Kind = "rectangle"
	KindCircle    Kind = "circle"
	KindDiamond   Kind = "diamond"
	KindArrow     Kind = "arrow"
	KindPencil    Kind = "pencil"
	KindText      Kind = "text"
)

// Kinds lists every storable element kind in toolbar order.
var Kinds = []Kind{KindLine, KindRectangle, KindCircle, KindDiamond, KindArrow, KindPencil, KindText}

// ParseKind returns the kind named by s, or ErrUnknownKind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// IsShape reports whether elements of this kind are stored as a Shape.
func (k Kind) IsShape() bool {
	switch k {
	case KindLine, KindRectangle, KindCircle, KindDiamond, KindArrow:
		return true
	}
	return false
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Sub(o Point) Point { return Point{X: p.X - o.X, Y: p.Y - o.Y} }

// Box is the bounding diagonal of an element. Its meaning depends on the
// element kind: corners for rectangles and diamonds, endpoints for lines and
// arrows, centre and surface point for circles, anchor for text.
type Box struct {
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64
}

func (b Box) Start() Point { return Point{X: b.X1, Y: b.Y1} }
func (b Box) End() Point   { return Point{X: b.X2, Y: b.Y2} }

type Style struct {
	StrokeColor     string  `json:"strokeColor"`
	BackgroundColor string  `json:"backgroundColor"`
	StrokeWidth     float64 `json:"strokeWidth"`
	FontSize        float64 `json:"fontSize"`
	FontFamily      string  `json:"fontFamily"`
}

const (
	FontArial          = "Arial"
	FontTimesNewRoman  = "Times New Roman"
	FontCourierNew     = "Courier New"
	defaultStrokeColor = "#000000"
	defaultFillColor   = "#ffffff"
)

// DefaultStyle matches the toolbar defaults of a fresh canvas.
func DefaultStyle() Style {
	return Style{
		StrokeColor:     defaultStrokeColor,
		BackgroundColor: defaultFillColor,
		StrokeWidth:     2,
		FontSize:        20,
		FontFamily:      FontArial,
	}
}

// Element is one drawable object. The set of implementations is closed:
// Shape, Freehand and Text.
type Element interface {
	ElementID() ID
	Kind() Kind
	isElement()
}

// Shape covers the box-defined kinds: line, rectangle, circle, diamond and arrow.
type Shape struct {
	ID      ID
	Type    Kind
	Box     Box
	Style   Style
	Payload Payload
}

func (s Shape) ElementID() ID { return s.ID }
func (s Shape) Kind() Kind    { return s.Type }
func (Shape) isElement()      {}

// Freehand is a pencil stroke.
type Freehand struct {
	ID     ID
	Points []Point
	Style  Style
}

func (f Freehand) ElementID() ID { return f.ID }
func (Freehand) Kind() Kind      { return KindPencil }
func (Freehand) isElement()      {}

type Text struct {
	ID      ID
	Box     Box
	Content string
	Style   Style
}

func (t Text) ElementID() ID { return t.ID }
func (Text) Kind() Kind      { return KindText }
func (Text) isElement()      {}

// StyleOf returns the style attributes carried by el.
func StyleOf(el Element) Style {
	switch e := el.(type) {
	case Shape:
		return e.Style
	case Freehand:
		return e.Style
	case Text:
		return e.Style
	default:
		panic(fmt.Sprintf("document: unknown element type %T", el))
	}
}

// PrimitiveOp names a drawing primitive inside a Payload.
type PrimitiveOp string

const (
	OpLine      PrimitiveOp = "line"
	OpRectangle PrimitiveOp = "rectangle"
	OpCircle    PrimitiveOp = "circle"
	OpPolygon   PrimitiveOp = "polygon"
)

// Payload is the derived drawing description of a Shape. It is recomputed
// from the box and style on every geometric edit and never persisted.
type Payload struct {
	Primitives []Primitive
}

// Primitive is one stroke-and-fill drawing instruction.
//
//	line:      Points[0] -> Points[1]
//	rectangle: origin Points[0], signed Width and Height
//	circle:    centre Points[0], Diameter
//	polygon:   closed ring through Points
type Primitive struct {
	Op          PrimitiveOp
	Points      []Point
	Width       float64
	Height      float64
	Diameter    float64
	Stroke      string
	StrokeWidth float64
	Fill        string
}
