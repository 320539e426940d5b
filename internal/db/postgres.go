package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

// NewPool connects to Postgres and verifies the connection.
func NewPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// Postgres is the Store backed by a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func pgError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicate
	}
	return err
}

func (p *Postgres) CreateUser(ctx context.Context, u User) (User, error) {
	err := p.pool.QueryRow(ctx,
		`INSERT INTO users (id, email, password, display_name)
		 VALUES ($1, $2, $3, $4) RETURNING created_at`,
		u.ID, u.Email, u.PasswordHash, u.DisplayName,
	).Scan(&u.CreatedAt)
	if err != nil {
		return User{}, fmt.Errorf("insert user: %w", pgError(err))
	}
	return u, nil
}

func (p *Postgres) getUser(ctx context.Context, where string, arg string) (User, error) {
	var u User
	err := p.pool.QueryRow(ctx,
		`SELECT id, email, password, display_name, created_at FROM users WHERE `+where+` = $1`, arg,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.CreatedAt)
	if err != nil {
		return User{}, fmt.Errorf("get user: %w", pgError(err))
	}
	return u, nil
}

func (p *Postgres) GetUserByID(ctx context.Context, id string) (User, error) {
	return p.getUser(ctx, "id", id)
}

func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return p.getUser(ctx, "email", email)
}

func (p *Postgres) CreateDrawing(ctx context.Context, d Drawing) (Drawing, error) {
	err := p.pool.QueryRow(ctx,
		`INSERT INTO drawings (id, name, owner_id, width, height)
		 VALUES ($1, $2, $3, $4, $5) RETURNING created_at, updated_at`,
		d.ID, d.Name, d.OwnerID, d.Width, d.Height,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return Drawing{}, fmt.Errorf("insert drawing: %w", pgError(err))
	}
	return d, nil
}

const drawingColumns = `id, name, owner_id, width, height, created_at, updated_at`

func scanDrawing(row pgx.Row) (Drawing, error) {
	var d Drawing
	err := row.Scan(&d.ID, &d.Name, &d.OwnerID, &d.Width, &d.Height, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (p *Postgres) GetDrawing(ctx context.Context, id string) (Drawing, error) {
	d, err := scanDrawing(p.pool.QueryRow(ctx, `SELECT `+drawingColumns+` FROM drawings WHERE id = $1`, id))
	if err != nil {
		return Drawing{}, fmt.Errorf("get drawing: %w", pgError(err))
	}
	return d, nil
}

func (p *Postgres) ListDrawingsForOwner(ctx context.Context, ownerID string) ([]Drawing, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+drawingColumns+` FROM drawings WHERE owner_id = $1 ORDER BY updated_at DESC, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list drawings: %w", err)
	}
	defer rows.Close()

	drawings := []Drawing{}
	for rows.Next() {
		d, err := scanDrawing(rows)
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

func (p *Postgres) RenameDrawing(ctx context.Context, id, name string) (Drawing, error) {
	d, err := scanDrawing(p.pool.QueryRow(ctx,
		`UPDATE drawings SET name = $2, updated_at = now() WHERE id = $1 RETURNING `+drawingColumns, id, name))
	if err != nil {
		return Drawing{}, fmt.Errorf("rename drawing: %w", pgError(err))
	}
	return d, nil
}

func (p *Postgres) DeleteDrawing(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM drawings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete drawing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) CreateRevision(ctx context.Context, id, drawingID string, elements []byte) (Revision, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return Revision{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE drawings SET updated_at = now() WHERE id = $1`, drawingID)
	if err != nil {
		return Revision{}, fmt.Errorf("touch drawing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return Revision{}, ErrNotFound
	}

	rev := Revision{ID: id, DrawingID: drawingID, Elements: elements}
	err = tx.QueryRow(ctx,
		`INSERT INTO revisions (id, drawing_id, version, elements)
		 SELECT $1, $2, COALESCE(MAX(version), 0) + 1, $3 FROM revisions WHERE drawing_id = $2
		 RETURNING version, created_at`,
		id, drawingID, elements,
	).Scan(&rev.Version, &rev.CreatedAt)
	if err != nil {
		return Revision{}, fmt.Errorf("insert revision: %w", pgError(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return Revision{}, fmt.Errorf("commit: %w", err)
	}
	return rev, nil
}

func (p *Postgres) GetLatestRevision(ctx context.Context, drawingID string) (Revision, error) {
	var rev Revision
	err := p.pool.QueryRow(ctx,
		`SELECT id, drawing_id, version, elements, created_at FROM revisions
		 WHERE drawing_id = $1 ORDER BY version DESC LIMIT 1`, drawingID,
	).Scan(&rev.ID, &rev.DrawingID, &rev.Version, &rev.Elements, &rev.CreatedAt)
	if err != nil {
		return Revision{}, fmt.Errorf("get latest revision: %w", pgError(err))
	}
	return rev, nil
}

func (p *Postgres) ListRevisions(ctx context.Context, drawingID string) ([]Revision, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, drawing_id, version, created_at FROM revisions
		 WHERE drawing_id = $1 ORDER BY version`, drawingID)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	defer rows.Close()

	revs := []Revision{}
	for rows.Next() {
		var rev Revision
		if err := rows.Scan(&rev.ID, &rev.DrawingID, &rev.Version, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		revs = append(revs, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	return revs, nil
}
