package render

import (
	"fmt"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/inamate/sketchboard/internal/document"
)

// FontBook resolves the toolbar font families to embedded Go fonts.
type FontBook struct {
	sources  map[string]*text.FontSource
	fallback *text.FontSource
}

// NewFontBook parses the embedded fonts. Arial maps to Go Regular, Courier
// New to Go Mono and Times New Roman to Go Medium.
func NewFontBook() (*FontBook, error) {
	load := func(name string, data []byte) (*text.FontSource, error) {
		src, err := text.NewFontSource(data)
		if err != nil {
			return nil, fmt.Errorf("parse font %s: %w", name, err)
		}
		return src, nil
	}

	regular, err := load("goregular", goregular.TTF)
	if err != nil {
		return nil, err
	}
	mono, err := load("gomono", gomono.TTF)
	if err != nil {
		return nil, err
	}
	medium, err := load("gomedium", gomedium.TTF)
	if err != nil {
		return nil, err
	}

	return &FontBook{
		sources: map[string]*text.FontSource{
			document.FontArial:         regular,
			document.FontCourierNew:    mono,
			document.FontTimesNewRoman: medium,
		},
		fallback: regular,
	}, nil
}

// Face returns a face for family at size pixels. Unknown families fall back
// to the Arial substitute.
func (b *FontBook) Face(family string, size float64) text.Face {
	src, ok := b.sources[family]
	if !ok {
		src = b.fallback
	}
	return src.Face(size)
}

// Close releases the parsed fonts.
func (b *FontBook) Close() error {
	seen := make(map[*text.FontSource]bool)
	for _, src := range b.sources {
		if seen[src] {
			continue
		}
		seen[src] = true
		if err := src.Close(); err != nil {
			return fmt.Errorf("close font: %w", err)
		}
	}
	return nil
}
