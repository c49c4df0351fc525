// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - LoginRequest: username, password
  - LicenseActionRequest: school_id, user_email / from_email+to_email, motivo, ticket
  - ChangeLimitRequest: newLimit, motivo
  - CreateStaffRequest / UpdatePasswordRequest / UpdateRoleRequest

# Response Types

  - APIResponse: the uniform success/message/data envelope
  - LoginResponse: token plus the authenticated StaffInfo
  - SchoolOverview: per-school usage with status label and badge
  - SchoolUser: per-school user row with its license status
  - AuditLog: one audit entry with the decoded payload

# Constants

Audit actions:

	ActionAssign     = "assign"
	ActionRevoke     = "revoke"
	ActionTransfer   = "transfer"
	ActionAlterLimit = "alter_limit"
	ActionReloadData = "reload_data"

Staff roles (ordered agent < coordinator < admin):

	RoleAgent       = "agent"
	RoleCoordinator = "coordinator"
	RoleAdmin       = "admin"

Usage status labels:

	SchoolStatusEmpty   = "empty"
	SchoolStatusPartial = "partial"
	SchoolStatusFull    = "full"
	SchoolStatusExcess  = "excess"

# Badges

GenerateBadge derives the dashboard badge from a used/limit pair: gray
for unused, blue for partial, green "(Completa)" at the limit and red
"(Excesso)" above it.
*/
package models
