// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// The DDL is restricted to the SQL dialect subset shared by PostgreSQL
// and SQLite: timestamps are always written explicitly by the
// application, never defaulted by the database.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Schools (license holders)
CREATE TABLE IF NOT EXISTS schools (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    city TEXT NOT NULL DEFAULT '',
    state TEXT NOT NULL DEFAULT '',
    region TEXT NOT NULL DEFAULT '',
    cluster TEXT NOT NULL DEFAULT '',
    carteira_saf TEXT NOT NULL DEFAULT '',
    license_limit INTEGER NOT NULL DEFAULT 2 CHECK (license_limit >= 0),
    status TEXT NOT NULL DEFAULT '',
    contact_email TEXT NOT NULL DEFAULT '',
    contact_phone TEXT NOT NULL DEFAULT '',
    address TEXT NOT NULL DEFAULT '',
    neighborhood TEXT NOT NULL DEFAULT ''
);

-- License subjects; each user belongs to exactly one school
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    school_id TEXT NOT NULL REFERENCES schools(id) ON DELETE CASCADE,
    email TEXT NOT NULL,
    name TEXT NOT NULL DEFAULT '',
    has_canva BOOLEAN NOT NULL DEFAULT FALSE,
    is_compliant BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE UNIQUE INDEX IF NOT EXISTS uq_users_email_lower ON users (LOWER(email));
CREATE INDEX IF NOT EXISTS idx_users_school_id ON users(school_id);
CREATE INDEX IF NOT EXISTS idx_users_has_canva ON users(has_canva);

-- History of limit changes; the authoritative current limit lives on schools
CREATE TABLE IF NOT EXISTS school_limits (
    id TEXT PRIMARY KEY,
    school_id TEXT NOT NULL REFERENCES schools(id) ON DELETE CASCADE,
    limit_value INTEGER NOT NULL CHECK (limit_value >= 0),
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_school_limits_school_id ON school_limits(school_id);

-- Append-only audit trail; rows are never updated or deleted
CREATE TABLE IF NOT EXISTS audit_logs (
    id TEXT PRIMARY KEY,
    action TEXT NOT NULL,
    school_id TEXT,
    actor TEXT NOT NULL,
    payload TEXT NOT NULL DEFAULT '{}',
    ts TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_audit_logs_school_id ON audit_logs(school_id);
CREATE INDEX IF NOT EXISTS idx_audit_logs_ts ON audit_logs(ts);

-- Staff credentials for the dashboard
CREATE TABLE IF NOT EXISTS staff (
    username TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    role TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    password_salt TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);
`
