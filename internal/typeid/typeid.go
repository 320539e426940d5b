// Package typeid generates the prefixed, sortable identifiers used for
// stored records, e.g. drw_01h455vb4pex5vsknk084sn02q.
package typeid

import (
	"errors"
	"fmt"

	"go.jetify.com/typeid/v2"
)

type Prefix string

const (
	PrefixUser     Prefix = "user"
	PrefixDrawing  Prefix = "drw"
	PrefixRevision Prefix = "rev"
	PrefixExport   Prefix = "exp"
)

var ErrWrongPrefix = errors.New("wrong id prefix")

func New(prefix Prefix) string {
	return typeid.MustGenerate(string(prefix)).String()
}

func NewUserID() string     { return New(PrefixUser) }
func NewDrawingID() string  { return New(PrefixDrawing) }
func NewRevisionID() string { return New(PrefixRevision) }
func NewExportID() string   { return New(PrefixExport) }

// Validate checks that id parses and carries the given prefix.
func Validate(id string, prefix Prefix) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("parse id %q: %w", id, err)
	}
	if got := parsed.Prefix(); got != string(prefix) {
		return fmt.Errorf("%w: %q is a %q id, want %q", ErrWrongPrefix, id, got, prefix)
	}
	return nil
}
