// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the SAF Maple Bear API server.

The server manages Canva license allocation for the Maple Bear franchise
network: per-school license limits, assign/revoke/transfer operations with
a mandatory audit trail, staff authentication with role-based access, and
a daily refresh job that integrates data from an external collector.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... JWT_SECRET=... go run main.go

Or with flags:

	go run main.go -p 3340 -d "postgres://..." -jwt-secret "..."

A .env file in the working directory is loaded automatically.

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string
  - JWT_SECRET (-jwt-secret): session token signing secret

Optional settings:

  - PORT (-p): server port (default: 3340)
  - DATABASE_TYPE (-t): sqlite or postgres (default: postgres)
  - ALLOWED_DOMAINS (-domains): compliant email domains
  - SCHOOLS_CSV_PATH (-schools-csv): schools reference base
  - SNAPSHOT_PATH (-snapshot): allocation snapshot location
  - SYNC_INTERVAL (-sync-interval): refresh job interval (default: 24h)
  - COLLECTOR_URL (-collector-url): external scraper base URL

The refresh job only runs when COLLECTOR_URL and SCHOOLS_CSV_PATH are set.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (auth, licenses, schools, audit, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON envelope, role enforcement
  - models: Request/response and domain types
  - auth: Staff credentials, JWT sessions, role hierarchy
  - license: License operations and the audit ledger
  - allocation: Schools CSV, domain matching, snapshot building
  - refresh: Scheduled collector → snapshot pipeline
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
