package db

const postgresSchema = `
CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    password      TEXT NOT NULL,
    display_name  TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS drawings (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    owner_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    width       INTEGER NOT NULL,
    height      INTEGER NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS drawings_owner_idx ON drawings (owner_id);

CREATE TABLE IF NOT EXISTS revisions (
    id          TEXT PRIMARY KEY,
    drawing_id  TEXT NOT NULL REFERENCES drawings(id) ON DELETE CASCADE,
    version     INTEGER NOT NULL,
    elements    JSONB NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (drawing_id, version)
);
`

// SQLite keeps timestamps as RFC 3339 text.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    password      TEXT NOT NULL,
    display_name  TEXT NOT NULL,
    created_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS drawings (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    owner_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    width       INTEGER NOT NULL,
    height      INTEGER NOT NULL,
    created_at  TEXT NOT NULL,
    updated_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS drawings_owner_idx ON drawings (owner_id);

CREATE TABLE IF NOT EXISTS revisions (
    id          TEXT PRIMARY KEY,
    drawing_id  TEXT NOT NULL REFERENCES drawings(id) ON DELETE CASCADE,
    version     INTEGER NOT NULL,
    elements    BLOB NOT NULL,
    created_at  TEXT NOT NULL,
    UNIQUE (drawing_id, version)
);
`
