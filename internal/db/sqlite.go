package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Fixed width so that text comparison orders timestamps.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLite is the Store backed by an embedded database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return &SQLite{db: db}, nil
}

func (s *SQLite) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error { return s.db.Close() }

func now() string { return time.Now().UTC().Format(timeLayout) }

func parseTime(v string) (time.Time, error) {
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", v, err)
	}
	return t, nil
}

func sqliteError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// insertUnique runs an INSERT ... ON CONFLICT DO NOTHING and reports a
// skipped row as ErrDuplicate.
func (s *SQLite) insertUnique(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrDuplicate
	}
	return nil
}

func (s *SQLite) CreateUser(ctx context.Context, u User) (User, error) {
	created := now()
	err := s.insertUnique(ctx,
		`INSERT INTO users (id, email, password, display_name, created_at)
		 VALUES (?, ?, ?, ?, ?) ON CONFLICT DO NOTHING`,
		u.ID, u.Email, u.PasswordHash, u.DisplayName, created)
	if err != nil {
		return User{}, fmt.Errorf("insert user: %w", err)
	}
	u.CreatedAt, _ = parseTime(created)
	return u, nil
}

func (s *SQLite) getUser(ctx context.Context, where, arg string) (User, error) {
	var (
		u       User
		created string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, password, display_name, created_at FROM users WHERE `+where+` = ?`, arg,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &created)
	if err != nil {
		return User{}, fmt.Errorf("get user: %w", sqliteError(err))
	}
	if u.CreatedAt, err = parseTime(created); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *SQLite) GetUserByID(ctx context.Context, id string) (User, error) {
	return s.getUser(ctx, "id", id)
}

func (s *SQLite) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return s.getUser(ctx, "email", email)
}

func (s *SQLite) CreateDrawing(ctx context.Context, d Drawing) (Drawing, error) {
	created := now()
	err := s.insertUnique(ctx,
		`INSERT INTO drawings (id, name, owner_id, width, height, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?) ON CONFLICT DO NOTHING`,
		d.ID, d.Name, d.OwnerID, d.Width, d.Height, created, created)
	if err != nil {
		return Drawing{}, fmt.Errorf("insert drawing: %w", err)
	}
	d.CreatedAt, _ = parseTime(created)
	d.UpdatedAt = d.CreatedAt
	return d, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSQLiteDrawing(row scanner) (Drawing, error) {
	var (
		d                Drawing
		created, updated string
	)
	if err := row.Scan(&d.ID, &d.Name, &d.OwnerID, &d.Width, &d.Height, &created, &updated); err != nil {
		return Drawing{}, err
	}
	var err error
	if d.CreatedAt, err = parseTime(created); err != nil {
		return Drawing{}, err
	}
	if d.UpdatedAt, err = parseTime(updated); err != nil {
		return Drawing{}, err
	}
	return d, nil
}

func (s *SQLite) GetDrawing(ctx context.Context, id string) (Drawing, error) {
	d, err := scanSQLiteDrawing(s.db.QueryRowContext(ctx, `SELECT `+drawingColumns+` FROM drawings WHERE id = ?`, id))
	if err != nil {
		return Drawing{}, fmt.Errorf("get drawing: %w", sqliteError(err))
	}
	return d, nil
}

func (s *SQLite) ListDrawingsForOwner(ctx context.Context, ownerID string) ([]Drawing, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+drawingColumns+` FROM drawings WHERE owner_id = ? ORDER BY updated_at DESC, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list drawings: %w", err)
	}
	defer rows.Close()

	drawings := []Drawing{}
	for rows.Next() {
		d, err := scanSQLiteDrawing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan drawing: %w", err)
		}
		drawings = append(drawings, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list drawings: %w", err)
	}
	return drawings, nil
}

func (s *SQLite) RenameDrawing(ctx context.Context, id, name string) (Drawing, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE drawings SET name = ?, updated_at = ? WHERE id = ?`, name, now(), id)
	if err != nil {
		return Drawing{}, fmt.Errorf("rename drawing: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Drawing{}, fmt.Errorf("rename drawing: %w", ErrNotFound)
	}
	return s.GetDrawing(ctx, id)
}

func (s *SQLite) DeleteDrawing(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM revisions WHERE drawing_id = ?`, id); err != nil {
		return fmt.Errorf("delete revisions: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM drawings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete drawing: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

func (s *SQLite) CreateRevision(ctx context.Context, id, drawingID string, elements []byte) (Revision, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Revision{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	created := now()
	res, err := tx.ExecContext(ctx, `UPDATE drawings SET updated_at = ? WHERE id = ?`, created, drawingID)
	if err != nil {
		return Revision{}, fmt.Errorf("touch drawing: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Revision{}, ErrNotFound
	}

	rev := Revision{ID: id, DrawingID: drawingID, Elements: elements}
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) + 1 FROM revisions WHERE drawing_id = ?`, drawingID,
	).Scan(&rev.Version)
	if err != nil {
		return Revision{}, fmt.Errorf("next version: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO revisions (id, drawing_id, version, elements, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, drawingID, rev.Version, elements, created)
	if err != nil {
		return Revision{}, fmt.Errorf("insert revision: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Revision{}, fmt.Errorf("commit: %w", err)
	}
	rev.CreatedAt, _ = parseTime(created)
	return rev, nil
}

func (s *SQLite) GetLatestRevision(ctx context.Context, drawingID string) (Revision, error) {
	var (
		rev     Revision
		created string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, drawing_id, version, elements, created_at FROM revisions
		 WHERE drawing_id = ? ORDER BY version DESC LIMIT 1`, drawingID,
	).Scan(&rev.ID, &rev.DrawingID, &rev.Version, &rev.Elements, &created)
	if err != nil {
		return Revision{}, fmt.Errorf("get latest revision: %w", sqliteError(err))
	}
	if rev.CreatedAt, err = parseTime(created); err != nil {
		return Revision{}, err
	}
	return rev, nil
}

func (s *SQLite) ListRevisions(ctx context.Context, drawingID string) ([]Revision, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, drawing_id, version, created_at FROM revisions
		 WHERE drawing_id = ? ORDER BY version`, drawingID)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	defer rows.Close()

	revs := []Revision{}
	for rows.Next() {
		var (
			rev     Revision
			created string
		)
		if err := rows.Scan(&rev.ID, &rev.DrawingID, &rev.Version, &created); err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		if rev.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		revs = append(revs, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	return revs, nil
}
