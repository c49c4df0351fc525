// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides staff authentication, session tokens and the role
hierarchy.

# Passwords

Passwords are stored as PBKDF2-SHA256 hashes (100k iterations) with a
per-user random salt, both hex encoded:

	hash, salt, err := auth.HashPassword(password)
	ok := auth.VerifyPassword(password, hash, salt)

Verification uses a constant-time compare.

# Authentication and Lockout

Service.Authenticate validates a username/password pair against the
staff table. Five failed attempts lock the account for five minutes; the
counters live in process memory:

	info, err := svc.Authenticate(username, password)
	var locked *auth.LockedError
	if errors.As(err, &locked) {
		// account is locked for locked.Remaining
	}

# Session Tokens

Sessions are HS256-signed JWTs valid for eight hours, carrying the
staff member's name and role:

	token, err := svc.IssueToken(info)
	claims, err := svc.VerifyToken(token)

VerifyToken enforces issuer, audience and expiry, and rejects tokens
whose subject no longer exists in the staff table, so deleting a staff
account immediately invalidates its sessions.

# Roles

Roles form the hierarchy agent < coordinator < admin. Legacy aliases
(Portuguese and English spellings) normalize to the canonical forms:

	canonical, ok := auth.NormalizeRole("coordenadora") // "coordinator", true
	auth.HasRole("admin", "agent")                      // true

Unknown roles never satisfy any requirement.
*/
package auth
