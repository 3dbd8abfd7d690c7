// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported export database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// Open connects to an export database and verifies the connection.
// For sqlite the url is a file path.
func Open(ctx context.Context, dbType, url string) (*sql.DB, error) {
	var driver string
	switch dbType {
	case TypeSQLite:
		driver = "sqlite"
	case TypePostgres:
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dbType, err)
	}
	if dbType == TypeSQLite {
		// one writer at a time
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to reach %s database: %w", dbType, err)
	}
	return conn, nil
}

// CreateSchema creates all tables needed for exports.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Samples, keyed by the service's id within a project
CREATE TABLE IF NOT EXISTS sample (
    project_id TEXT NOT NULL,
    id BIGINT NOT NULL,
    text1 TEXT NOT NULL,
    text2 TEXT NOT NULL,
    source1 TEXT NOT NULL DEFAULT '',
    source2 TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (project_id, id)
);

-- Ratings; sample_id may refer to a sample that no longer exists
CREATE TABLE IF NOT EXISTS rating (
    project_id TEXT NOT NULL,
    id BIGINT NOT NULL,
    sample_id BIGINT NOT NULL,
    rater TEXT NOT NULL,
    rating INTEGER NOT NULL,
    PRIMARY KEY (project_id, id)
);

CREATE INDEX IF NOT EXISTS idx_rating_sample ON rating(project_id, sample_id);
CREATE INDEX IF NOT EXISTS idx_rating_rater ON rating(project_id, rater);

-- One row per export
CREATE TABLE IF NOT EXISTS export_run (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    exported_at TIMESTAMP NOT NULL,
    sample_count INTEGER NOT NULL,
    rating_count INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_export_run_project ON export_run(project_id);
`
