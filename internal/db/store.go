// Package db persists users, drawings and drawing revisions.
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	DisplayName  string
	CreatedAt    time.Time
}

type Drawing struct {
	ID        string
	Name      string
	OwnerID   string
	Width     int
	Height    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Revision is one saved state of a drawing: its elements as interchange
// records. Versions count up from 1 per drawing.
type Revision struct {
	ID        string
	DrawingID string
	Version   int
	Elements  []byte
	CreatedAt time.Time
}

// Store is implemented by Postgres and SQLite.
type Store interface {
	Migrate(ctx context.Context) error

	CreateUser(ctx context.Context, u User) (User, error)
	GetUserByID(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)

	CreateDrawing(ctx context.Context, d Drawing) (Drawing, error)
	GetDrawing(ctx context.Context, id string) (Drawing, error)
	ListDrawingsForOwner(ctx context.Context, ownerID string) ([]Drawing, error)
	RenameDrawing(ctx context.Context, id, name string) (Drawing, error)
	DeleteDrawing(ctx context.Context, id string) error

	// CreateRevision stores elements as the next version of a drawing and
	// bumps the drawing's update time.
	CreateRevision(ctx context.Context, id, drawingID string, elements []byte) (Revision, error)
	GetLatestRevision(ctx context.Context, drawingID string) (Revision, error)
	// ListRevisions returns revision metadata, oldest first, without
	// elements.
	ListRevisions(ctx context.Context, drawingID string) ([]Revision, error)

	Close() error
}

const sqlitePrefix = "sqlite:"

// Open connects to the store named by url: a postgres:// URL, or
// sqlite:<path> for the embedded database.
func Open(ctx context.Context, url string) (Store, error) {
	if path, ok := strings.CutPrefix(url, sqlitePrefix); ok {
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return s, nil
	}

	pool, err := NewPool(ctx, url)
	if err != nil {
		return nil, err
	}
	return NewPostgres(pool), nil
}
