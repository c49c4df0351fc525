// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package license implements the license ledger: assign, revoke and
transfer operations, per-school limits and the audit trail.

# Transactional Mutations

Every mutation re-checks its preconditions and writes exactly one audit
row inside the same transaction, so a committed change always has its
audit entry and a failed one leaves no trace:

	err := svc.Assign(schoolID, userEmail, motivo, ticket, actor)

Preconditions (user exists in the school, not already licensed, email
domain compliant, limit not reached) surface as sentinel errors whose
text is the user-facing message. IsNotFound and IsConflict classify
them for the HTTP layer.

# Limits

Each school has its own license limit (default 2). ChangeSchoolLimit
updates one school and appends to the school_limits history;
SetGlobalLimit applies one value to every school with one audit row per
school. GetGlobalLimit reports the most common configured limit.

# Audit Queries

AuditLogs filters by time range, school, action and actor substring,
newest first. WriteAuditCSV renders the same entries in the flat export
format consumed by the spreadsheet tooling.
*/
package license
