// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"

	"github.com/maplebear-saf/saf-server/models"
)

// Role strings arrive from several legacy aliases (Portuguese and
// English). Anything not in this table is treated as invalid, never as a
// default role.
var roleAliases = map[string]string{
	"agent":         models.RoleAgent,
	"agente":        models.RoleAgent,
	"coordinator":   models.RoleCoordinator,
	"coordenador":   models.RoleCoordinator,
	"coordenadora":  models.RoleCoordinator,
	"admin":         models.RoleAdmin,
	"administrator": models.RoleAdmin,
	"administrador": models.RoleAdmin,
}

var roleLevels = map[string]int{
	models.RoleAgent:       1,
	models.RoleCoordinator: 2,
	models.RoleAdmin:       3,
}

// NormalizeRole maps a legacy role alias to its canonical form.
func NormalizeRole(role string) (string, bool) {
	canonical, ok := roleAliases[strings.ToLower(strings.TrimSpace(role))]
	return canonical, ok
}

// HasRole reports whether actual satisfies required in the
// agent < coordinator < admin hierarchy. Unknown roles never satisfy
// anything.
func HasRole(actual, required string) bool {
	canonical, ok := NormalizeRole(actual)
	if !ok {
		return false
	}
	requiredCanonical, ok := NormalizeRole(required)
	if !ok {
		return false
	}
	return roleLevels[canonical] >= roleLevels[requiredCanonical]
}
