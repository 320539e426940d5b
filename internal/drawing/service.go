// Package drawing manages users' saved drawings and their revisions.
package drawing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/inamate/sketchboard/internal/db"
	"github.com/inamate/sketchboard/internal/document"
	"github.com/inamate/sketchboard/internal/engine"
	"github.com/inamate/sketchboard/internal/geometry"
	"github.com/inamate/sketchboard/internal/typeid"
)

var (
	ErrNotFound       = errors.New("drawing not found")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidDrawing = errors.New("invalid drawing")
)

type Service struct {
	store         db.Store
	width, height int
}

// NewService creates drawings of width x height by default.
func NewService(store db.Store, width, height int) *Service {
	return &Service{store: store, width: width, height: height}
}

type Drawing struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	OwnerID   string `json:"ownerId"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type Revision struct {
	ID        string `json:"id"`
	Version   int    `json:"version"`
	CreatedAt string `json:"createdAt"`
}

type CreateParams struct {
	Name   string
	Width  int
	Height int
	// Sample seeds the drawing with one element of every kind.
	Sample bool
}

func (s *Service) Create(ctx context.Context, ownerID string, p CreateParams) (*Drawing, error) {
	if p.Width <= 0 {
		p.Width = s.width
	}
	if p.Height <= 0 {
		p.Height = s.height
	}

	dbDrawing, err := s.store.CreateDrawing(ctx, db.Drawing{
		ID:      typeid.NewDrawingID(),
		Name:    p.Name,
		OwnerID: ownerID,
		Width:   p.Width,
		Height:  p.Height,
	})
	if err != nil {
		return nil, fmt.Errorf("create drawing: %w", err)
	}

	initial := []byte("[]")
	if p.Sample {
		initial, err = json.Marshal(document.SampleRecords())
	}
	if err == nil {
		_, err = s.store.CreateRevision(ctx, typeid.NewRevisionID(), dbDrawing.ID, initial)
	}
	if err != nil {
		// A drawing without a revision cannot be opened; drop it.
		if delErr := s.store.DeleteDrawing(ctx, dbDrawing.ID); delErr != nil {
			slog.Error("remove drawing without revision", "drawing", dbDrawing.ID, "error", delErr)
		}
		return nil, fmt.Errorf("create initial revision: %w", err)
	}

	return dbDrawingToDrawing(dbDrawing), nil
}

func (s *Service) Get(ctx context.Context, drawingID, userID string) (*Drawing, error) {
	dbDrawing, err := s.authorize(ctx, drawingID, userID)
	if err != nil {
		return nil, err
	}
	return dbDrawingToDrawing(dbDrawing), nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Drawing, error) {
	dbDrawings, err := s.store.ListDrawingsForOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list drawings: %w", err)
	}

	drawings := make([]Drawing, len(dbDrawings))
	for i, d := range dbDrawings {
		drawings[i] = *dbDrawingToDrawing(d)
	}
	return drawings, nil
}

func (s *Service) Rename(ctx context.Context, drawingID, userID, name string) (*Drawing, error) {
	if _, err := s.authorize(ctx, drawingID, userID); err != nil {
		return nil, err
	}
	dbDrawing, err := s.store.RenameDrawing(ctx, drawingID, name)
	if err != nil {
		return nil, mapStoreError("rename drawing", err)
	}
	return dbDrawingToDrawing(dbDrawing), nil
}

func (s *Service) Delete(ctx context.Context, drawingID, userID string) error {
	if _, err := s.authorize(ctx, drawingID, userID); err != nil {
		return err
	}
	if err := s.store.DeleteDrawing(ctx, drawingID); err != nil {
		return mapStoreError("delete drawing", err)
	}
	return nil
}

// Elements returns the interchange records of the latest revision.
func (s *Service) Elements(ctx context.Context, drawingID, userID string) (json.RawMessage, error) {
	if _, err := s.authorize(ctx, drawingID, userID); err != nil {
		return nil, err
	}
	rev, err := s.store.GetLatestRevision(ctx, drawingID)
	if err != nil {
		return nil, mapStoreError("get revision", err)
	}
	return rev.Elements, nil
}

// Save validates an interchange payload and stores it as the next
// revision. Records are rewritten in canonical form: boxes normalized
// where the kind calls for it and missing style attributes filled in.
func (s *Service) Save(ctx context.Context, drawingID, userID string, data []byte) (*Revision, error) {
	if _, err := s.authorize(ctx, drawingID, userID); err != nil {
		return nil, err
	}

	canonical, err := Canonicalize(data)
	if err != nil {
		return nil, err
	}

	rev, err := s.store.CreateRevision(ctx, typeid.NewRevisionID(), drawingID, canonical)
	if err != nil {
		return nil, mapStoreError("create revision", err)
	}
	return dbRevisionToRevision(rev), nil
}

func (s *Service) Revisions(ctx context.Context, drawingID, userID string) ([]Revision, error) {
	if _, err := s.authorize(ctx, drawingID, userID); err != nil {
		return nil, err
	}
	dbRevs, err := s.store.ListRevisions(ctx, drawingID)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}

	revs := make([]Revision, len(dbRevs))
	for i, r := range dbRevs {
		revs[i] = *dbRevisionToRevision(r)
	}
	return revs, nil
}

// Canonicalize decodes an interchange payload and re-encodes it with
// rectangles and lines normalized. Arrows keep their direction.
func Canonicalize(data []byte) ([]byte, error) {
	s, err := engine.DecodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDrawing, err)
	}
	elements := s.Elements()
	for i, el := range elements {
		if geometry.NeedsNormalize(el.Kind()) {
			elements[i] = geometry.Normalize(el)
		}
	}
	return document.EncodeElements(elements)
}

func (s *Service) authorize(ctx context.Context, drawingID, userID string) (db.Drawing, error) {
	if err := typeid.Validate(drawingID, typeid.PrefixDrawing); err != nil {
		return db.Drawing{}, ErrNotFound
	}
	dbDrawing, err := s.store.GetDrawing(ctx, drawingID)
	if err != nil {
		return db.Drawing{}, mapStoreError("get drawing", err)
	}
	if dbDrawing.OwnerID != userID {
		return db.Drawing{}, ErrForbidden
	}
	return dbDrawing, nil
}

func mapStoreError(op string, err error) error {
	if errors.Is(err, db.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func dbDrawingToDrawing(d db.Drawing) *Drawing {
	return &Drawing{
		ID:        d.ID,
		Name:      d.Name,
		OwnerID:   d.OwnerID,
		Width:     d.Width,
		Height:    d.Height,
		CreatedAt: d.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: d.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func dbRevisionToRevision(r db.Revision) *Revision {
	return &Revision{
		ID:        r.ID,
		Version:   r.Version,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
	}
}
