// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types
const (
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
)

// Open connects to the database and verifies the connection.
// SQLite connections get foreign keys enabled and a single connection so
// that in-memory databases are shared across queries.
func Open(ctx context.Context, dbType, url string) (*sql.DB, error) {
	switch dbType {
	case TypePostgres:
	case TypeSQLite:
		url = withSQLitePragmas(url)
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(dbType, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbType == TypeSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

func withSQLitePragmas(url string) string {
	if strings.Contains(url, "foreign_keys") {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "_pragma=foreign_keys(1)"
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// Statements are executed one at a time; keep semicolons out of comments.
const schema = `
-- Projects
CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    team_members TEXT NOT NULL DEFAULT '',
    table_number INTEGER NOT NULL DEFAULT 0,
    is_finalist BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_projects_table_number ON projects(table_number);

-- Judges
CREATE TABLE IF NOT EXISTS judges (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE
);

-- Comparisons (append-only)
CREATE TABLE IF NOT EXISTS comparisons (
    id TEXT PRIMARY KEY,
    judge_id TEXT NOT NULL REFERENCES judges(id) ON DELETE CASCADE,
    project_a_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
    project_b_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
    winner_id TEXT REFERENCES projects(id) ON DELETE CASCADE,
    timestamp BIGINT NOT NULL,
    CHECK (project_a_id <> project_b_id),
    CHECK (winner_id IS NULL OR winner_id = project_a_id OR winner_id = project_b_id)
);

CREATE INDEX IF NOT EXISTS idx_comparisons_judge_id ON comparisons(judge_id);

-- Rubric scores (one per judge and project)
CREATE TABLE IF NOT EXISTS rubric_scores (
    id TEXT PRIMARY KEY,
    judge_id TEXT NOT NULL REFERENCES judges(id) ON DELETE CASCADE,
    project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
    originality INTEGER NOT NULL CHECK (originality BETWEEN 1 AND 10),
    technical_complexity INTEGER NOT NULL CHECK (technical_complexity BETWEEN 1 AND 10),
    impact INTEGER NOT NULL CHECK (impact BETWEEN 1 AND 10),
    learning_collaboration INTEGER NOT NULL CHECK (learning_collaboration BETWEEN 1 AND 10),
    comments TEXT NOT NULL DEFAULT '',
    timestamp BIGINT NOT NULL,
    UNIQUE (judge_id, project_id)
);

CREATE INDEX IF NOT EXISTS idx_rubric_scores_judge_id ON rubric_scores(judge_id);
CREATE INDEX IF NOT EXISTS idx_rubric_scores_project_id ON rubric_scores(project_id);

-- Server-held settings (current phase)
CREATE TABLE IF NOT EXISTS settings (
    name TEXT PRIMARY KEY,
    value TEXT NOT NULL
)
`
