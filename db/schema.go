// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// SQL dialects
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect string) error {
	var ddl string
	switch dialect {
	case DialectPostgres:
		ddl = postgresSchema
	case DialectSQLite:
		ddl = sqliteSchema
	default:
		return fmt.Errorf("unsupported dialect %q", dialect)
	}

	_, err := db.Exec(ddl)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Timestamps are unix milliseconds so both dialects store identical values.
const postgresSchema = `
-- Elections
CREATE TABLE IF NOT EXISTS election (
    seq BIGSERIAL PRIMARY KEY,
    id TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    start_ms BIGINT NOT NULL,
    end_ms BIGINT NOT NULL,
    created_ms BIGINT NOT NULL,
    CHECK (end_ms > start_ms)
);

-- Candidates
CREATE TABLE IF NOT EXISTS candidate (
    election_id TEXT NOT NULL REFERENCES election(id) ON DELETE CASCADE,
    id TEXT NOT NULL,
    ord INTEGER NOT NULL,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (election_id, id)
);

-- Votes (one per user per election)
CREATE TABLE IF NOT EXISTS vote (
    seq BIGSERIAL PRIMARY KEY,
    election_id TEXT NOT NULL REFERENCES election(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL,
    candidate_id TEXT NOT NULL,
    cast_ms BIGINT NOT NULL,
    UNIQUE (election_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_user_id ON vote(user_id);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS election (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    start_ms INTEGER NOT NULL,
    end_ms INTEGER NOT NULL,
    created_ms INTEGER NOT NULL,
    CHECK (end_ms > start_ms)
);

CREATE TABLE IF NOT EXISTS candidate (
    election_id TEXT NOT NULL REFERENCES election(id) ON DELETE CASCADE,
    id TEXT NOT NULL,
    ord INTEGER NOT NULL,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (election_id, id)
);

CREATE TABLE IF NOT EXISTS vote (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    election_id TEXT NOT NULL REFERENCES election(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL,
    candidate_id TEXT NOT NULL,
    cast_ms INTEGER NOT NULL,
    UNIQUE (election_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_user_id ON vote(user_id);
`
