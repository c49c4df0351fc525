// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the SAF Maple Bear API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, authSvc, job)

# Endpoints

Health and login (public):

	GET  /health
	POST /auth/login

Schools and licenses (agent or above):

	GET  /schools                 - Overview with usage and badges
	GET  /schools/{id}/users      - Users of one school
	POST /licenses/assign         - Grant a license
	POST /licenses/revoke         - Remove a license
	POST /licenses/transfer       - Move a license between users
	GET  /metrics/latest          - Latest allocation snapshot

Limits and audit (coordinator or above):

	POST /schools/{id}/limit      - Change one school's limit
	GET  /license_limit           - Effective global limit
	POST /license_limit           - Apply a limit to every school
	GET  /audit                   - Query the audit log (export=csv for CSV)
	POST /admin/reload-data       - Trigger a manual refresh

Staff management (admin only):

	GET  /admin/users
	POST /admin/users
	PUT  /admin/users/password
	PUT  /admin/users/role

# Role Enforcement

Routes are wrapped with middleware.RequireRole against the
agent < coordinator < admin hierarchy; the verified claims provide the
actor recorded in every audit row.
*/
package router
