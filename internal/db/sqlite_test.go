package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	ctx := context.Background()

	s, err := Open(ctx, "sqlite:"+filepath.Join(t.TempDir(), "data", "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	// Migrations are idempotent.
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}
	return s
}

func seedUser(t *testing.T, s Store, id, email string) User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), User{ID: id, Email: email, PasswordHash: "hash", DisplayName: "Ada"})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	return u
}

func TestSQLite_Users(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created := seedUser(t, s, "user_1", "ada@example.com")
	if created.CreatedAt.IsZero() {
		t.Error("CreateUser() CreatedAt is zero")
	}

	_, err := s.CreateUser(ctx, User{ID: "user_2", Email: "ada@example.com", PasswordHash: "x", DisplayName: "Other"})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("CreateUser(duplicate email) error = %v, want ErrDuplicate", err)
	}

	byEmail, err := s.GetUserByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if byEmail.ID != "user_1" || byEmail.PasswordHash != "hash" {
		t.Errorf("GetUserByEmail() = %+v", byEmail)
	}

	byID, err := s.GetUserByID(ctx, "user_1")
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if byID.Email != "ada@example.com" {
		t.Errorf("GetUserByID().Email = %q, want %q", byID.Email, "ada@example.com")
	}

	if _, err := s.GetUserByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUserByID(missing) error = %v, want ErrNotFound", err)
	}
}

func TestSQLite_Drawings(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedUser(t, s, "user_1", "ada@example.com")
	seedUser(t, s, "user_2", "bob@example.com")

	d, err := s.CreateDrawing(ctx, Drawing{ID: "drw_1", Name: "Plan", OwnerID: "user_1", Width: 800, Height: 600})
	if err != nil {
		t.Fatalf("CreateDrawing() error = %v", err)
	}
	if d.CreatedAt.IsZero() || !d.UpdatedAt.Equal(d.CreatedAt) {
		t.Errorf("CreateDrawing() times = %v / %v", d.CreatedAt, d.UpdatedAt)
	}
	if _, err := s.CreateDrawing(ctx, Drawing{ID: "drw_1", Name: "Again", OwnerID: "user_1"}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("CreateDrawing(duplicate id) error = %v, want ErrDuplicate", err)
	}
	if _, err := s.CreateDrawing(ctx, Drawing{ID: "drw_2", Name: "Other", OwnerID: "user_2"}); err != nil {
		t.Fatalf("CreateDrawing() error = %v", err)
	}

	list, err := s.ListDrawingsForOwner(ctx, "user_1")
	if err != nil {
		t.Fatalf("ListDrawingsForOwner() error = %v", err)
	}
	if len(list) != 1 || list[0].ID != "drw_1" || list[0].Width != 800 {
		t.Errorf("ListDrawingsForOwner() = %+v", list)
	}

	renamed, err := s.RenameDrawing(ctx, "drw_1", "Floor plan")
	if err != nil {
		t.Fatalf("RenameDrawing() error = %v", err)
	}
	if renamed.Name != "Floor plan" {
		t.Errorf("RenameDrawing().Name = %q, want %q", renamed.Name, "Floor plan")
	}
	if _, err := s.RenameDrawing(ctx, "missing", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("RenameDrawing(missing) error = %v, want ErrNotFound", err)
	}

	if err := s.DeleteDrawing(ctx, "drw_1"); err != nil {
		t.Fatalf("DeleteDrawing() error = %v", err)
	}
	if _, err := s.GetDrawing(ctx, "drw_1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetDrawing(deleted) error = %v, want ErrNotFound", err)
	}
	if err := s.DeleteDrawing(ctx, "drw_1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteDrawing(deleted) error = %v, want ErrNotFound", err)
	}
}

func TestSQLite_Revisions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedUser(t, s, "user_1", "ada@example.com")
	if _, err := s.CreateDrawing(ctx, Drawing{ID: "drw_1", Name: "Plan", OwnerID: "user_1", Width: 10, Height: 10}); err != nil {
		t.Fatalf("CreateDrawing() error = %v", err)
	}

	if _, err := s.GetLatestRevision(ctx, "drw_1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetLatestRevision(empty) error = %v, want ErrNotFound", err)
	}

	for i, body := range []string{`[]`, `[{"id":0}]`, `[{"id":0},{"id":1}]`} {
		rev, err := s.CreateRevision(ctx, "rev_"+string(rune('a'+i)), "drw_1", []byte(body))
		if err != nil {
			t.Fatalf("CreateRevision(%d) error = %v", i, err)
		}
		if rev.Version != i+1 {
			t.Errorf("CreateRevision(%d).Version = %d, want %d", i, rev.Version, i+1)
		}
	}

	latest, err := s.GetLatestRevision(ctx, "drw_1")
	if err != nil {
		t.Fatalf("GetLatestRevision() error = %v", err)
	}
	if latest.Version != 3 || string(latest.Elements) != `[{"id":0},{"id":1}]` {
		t.Errorf("GetLatestRevision() = v%d %s", latest.Version, latest.Elements)
	}

	revs, err := s.ListRevisions(ctx, "drw_1")
	if err != nil {
		t.Fatalf("ListRevisions() error = %v", err)
	}
	if len(revs) != 3 || revs[0].Version != 1 || revs[2].ID != "rev_c" {
		t.Errorf("ListRevisions() = %+v", revs)
	}

	if _, err := s.CreateRevision(ctx, "rev_x", "missing", []byte(`[]`)); !errors.Is(err, ErrNotFound) {
		t.Errorf("CreateRevision(missing drawing) error = %v, want ErrNotFound", err)
	}

	if err := s.DeleteDrawing(ctx, "drw_1"); err != nil {
		t.Fatalf("DeleteDrawing() error = %v", err)
	}
	revs, err = s.ListRevisions(ctx, "drw_1")
	if err != nil {
		t.Fatalf("ListRevisions() error = %v", err)
	}
	if len(revs) != 0 {
		t.Errorf("ListRevisions(after delete) = %d revisions, want 0", len(revs))
	}
}
