package document

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrUnknownKind   = errors.New("unknown element type")
	ErrInvalidRecord = errors.New("invalid element record")
)

// Record is the interchange form of an element. The derived payload is
// never written; readers re-derive it after loading.
type Record struct {
	ID              ID      `json:"id"`
	Type            Kind    `json:"type"`
	X1              float64 `json:"x1"`
	Y1              float64 `json:"y1"`
	X2              float64 `json:"x2"`
	Y2              float64 `json:"y2"`
	Points          []Point `json:"points,omitempty"`
	Text            string  `json:"text,omitempty"`
	StrokeColor     string  `json:"strokeColor,omitempty"`
	BackgroundColor string  `json:"backgroundColor,omitempty"`
	StrokeWidth     float64 `json:"strokeWidth,omitempty"`
	FontSize        float64 `json:"fontSize,omitempty"`
	FontFamily      string  `json:"fontFamily,omitempty"`
}

// RecordOf converts el to its interchange record, keeping only the style
// attributes its kind uses.
func RecordOf(el Element) Record {
	switch e := el.(type) {
	case Shape:
		r := Record{
			ID:          e.ID,
			Type:        e.Type,
			X1:          e.Box.X1,
			Y1:          e.Box.Y1,
			X2:          e.Box.X2,
			Y2:          e.Box.Y2,
			StrokeColor: e.Style.StrokeColor,
			StrokeWidth: e.Style.StrokeWidth,
		}
		if e.Type != KindArrow {
			r.BackgroundColor = e.Style.BackgroundColor
		}
		return r
	case Freehand:
		if len(e.Points) == 0 {
			panic(fmt.Sprintf("document: pencil element %d has no points", e.ID))
		}
		return Record{
			ID:          e.ID,
			Type:        KindPencil,
			Points:      append([]Point(nil), e.Points...),
			StrokeColor: e.Style.StrokeColor,
			StrokeWidth: e.Style.StrokeWidth,
		}
	case Text:
		return Record{
			ID:          e.ID,
			Type:        KindText,
			X1:          e.Box.X1,
			Y1:          e.Box.Y1,
			X2:          e.Box.X2,
			Y2:          e.Box.Y2,
			Text:        e.Content,
			StrokeColor: e.Style.StrokeColor,
			FontSize:    e.Style.FontSize,
			FontFamily:  e.Style.FontFamily,
		}
	default:
		panic(fmt.Sprintf("document: unknown element type %T", el))
	}
}

// Style returns the record's style with missing attributes taken from
// DefaultStyle.
func (r Record) Style() Style {
	s := DefaultStyle()
	if r.StrokeColor != "" {
		s.StrokeColor = r.StrokeColor
	}
	if r.BackgroundColor != "" {
		s.BackgroundColor = r.BackgroundColor
	}
	if r.StrokeWidth > 0 {
		s.StrokeWidth = r.StrokeWidth
	}
	if r.FontSize > 0 {
		s.FontSize = r.FontSize
	}
	if r.FontFamily != "" {
		s.FontFamily = r.FontFamily
	}
	return s
}

// Validate checks a single record in isolation.
func (r Record) Validate() error {
	if _, err := ParseKind(string(r.Type)); err != nil {
		return fmt.Errorf("record %d: %w", r.ID, err)
	}
	if r.ID < 0 {
		return fmt.Errorf("%w: negative id %d", ErrInvalidRecord, r.ID)
	}
	if r.Type == KindPencil && len(r.Points) == 0 {
		return fmt.Errorf("%w: pencil record %d has no points", ErrInvalidRecord, r.ID)
	}
	return nil
}

// DecodeRecords parses and validates an interchange payload. Either every
// record is valid and returned, or none is.
func DecodeRecords(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	seen := make(map[ID]struct{}, len(records))
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrInvalidRecord, r.ID)
		}
		seen[r.ID] = struct{}{}
	}

	return records, nil
}

// EncodeElements serializes elements in order as interchange records.
func EncodeElements(elements []Element) ([]byte, error) {
	records := make([]Record, len(elements))
	for i, el := range elements {
		records[i] = RecordOf(el)
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshal records: %w", err)
	}
	return data, nil
}
