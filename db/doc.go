// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and
indexes. The SQL is kept to the dialect subset shared by PostgreSQL and
sqlite so either driver works.

# Tables

The schema includes:

  - schools: School registry with the per-school license limit
  - users: License subjects, keyed to their school
  - school_limits: History of limit changes
  - audit_logs: Append-only record of every mutation
  - staff: Backoffice credentials and roles

# Relationships

	schools 1──* users
	schools 1──* school_limits
	schools 1──* audit_logs (school_id may also be "system")

users cascade on school deletion; audit rows are never deleted.

# Indexes

  - users.email (unique, case-insensitive)
  - users.school_id, users.has_canva
  - audit_logs.school_id, audit_logs.ts
*/
package db
