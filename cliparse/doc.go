// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p             Server port
	-d             Database URL
	-t             Database type (sqlite or postgres)
	-jwt-secret    JWT signing secret
	-domains       Comma-separated allowed email domains
	-schools-csv   Path to the schools reference CSV
	-snapshot      Path for the allocation snapshot
	-sync-interval Refresh job interval (Go duration)
	-collector-url Base URL of the external scraper

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	JWT_SECRET       → -jwt-secret
	ALLOWED_DOMAINS  → -domains
	SCHOOLS_CSV_PATH → -schools-csv
	SNAPSHOT_PATH    → -snapshot
	SYNC_INTERVAL    → -sync-interval
	COLLECTOR_URL    → -collector-url

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing or invalid:

  - DATABASE_URL must be provided
  - JWT_SECRET must be provided
  - DATABASE_TYPE must be sqlite or postgres
  - SYNC_INTERVAL must be a positive Go duration
*/
package cliparse
