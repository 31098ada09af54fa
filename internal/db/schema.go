package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const SchemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    source TEXT,
    catalog_version TEXT,
    analyzed_at TEXT,
    word_count INTEGER,
    sentence_count INTEGER,
    tell_count INTEGER,
    metrics TEXT
);

CREATE TABLE IF NOT EXISTS findings (
    id INTEGER PRIMARY KEY,
    run_id TEXT REFERENCES runs(id),
    position INTEGER,
    category TEXT,
    message TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_analyzed_at ON runs(analyzed_at);
`

func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(SchemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}
