// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the SAF Maple Bear API.

# Handler Types

Each handler is a struct with its service dependencies, created via a
constructor:

  - AuthHandler: Staff login
  - SchoolHandler: School overview and per-school user listing
  - LicenseHandler: Assign, revoke and transfer operations
  - LimitHandler: Per-school and global license limits
  - AuditHandler: Audit log queries and CSV export
  - AdminHandler: Staff management and manual data reload
  - MetricsHandler: Latest allocation snapshot

	licenseHandler := handlers.NewLicenseHandler(svc)

# Response Envelope

Every endpoint answers with the uniform envelope:

	{"success": true, "message": "...", "data": ...}

Business failures map to HTTP status codes: missing school or user is
404, violated preconditions (limit reached, already licensed, domain
not allowed) are 400, authentication failures are 401/403.

# License Operations

License mutations read the actor from the verified token claims, so
every audit row names the staff member who performed the change:

	POST /licenses/assign   → Assign
	POST /licenses/revoke   → Revoke
	POST /licenses/transfer → Transfer

All three take school_id plus the affected email(s), an optional motivo
and ticket reference.

# Audit Export

GET /audit accepts start, end, schoolId, action and actor filters.
With export=csv the same query streams a CSV attachment instead of the
JSON envelope.
*/
package handlers
