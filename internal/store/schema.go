package store

import "database/sql"

// Schema is the complete history schema.
const Schema = `
-- One row per conversion invocation
CREATE TABLE IF NOT EXISTS conversions (
    id           TEXT PRIMARY KEY,
    source_file  TEXT NOT NULL DEFAULT '',
    title        TEXT NOT NULL DEFAULT '',
    word_count   INTEGER NOT NULL DEFAULT 0,
    char_count   INTEGER NOT NULL DEFAULT 0,
    formats      TEXT NOT NULL DEFAULT '',
    status       TEXT NOT NULL DEFAULT 'ok',
    error        TEXT NOT NULL DEFAULT '',
    duration_ms  INTEGER NOT NULL DEFAULT 0,
    created_at   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_conversions_time ON conversions(created_at DESC);
`

// ApplySchema creates all tables and indexes on the given database.
func ApplySchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}
