package models

import (
	"fmt"
	"time"
)

// Audit action constants
const (
	ActionAssign     = "assign"
	ActionRevoke     = "revoke"
	ActionTransfer   = "transfer"
	ActionAlterLimit = "alter_limit"
	ActionReloadData = "reload_data"
)

// Canonical staff roles, ordered agent < coordinator < admin
const (
	RoleAgent       = "agent"
	RoleCoordinator = "coordinator"
	RoleAdmin       = "admin"
)

// School usage status labels derived from used count vs. limit
const (
	SchoolStatusEmpty   = "empty"
	SchoolStatusPartial = "partial"
	SchoolStatusFull    = "full"
	SchoolStatusExcess  = "excess"
)

// Request types

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LicenseActionRequest struct {
	SchoolID  string `json:"school_id"`
	UserEmail string `json:"user_email,omitempty"`
	FromEmail string `json:"from_email,omitempty"`
	ToEmail   string `json:"to_email,omitempty"`
	Motivo    string `json:"motivo"`
	Ticket    string `json:"ticket,omitempty"`
}

type ChangeLimitRequest struct {
	NewLimit *int   `json:"newLimit"`
	Motivo   string `json:"motivo"`
}

type CreateStaffRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UpdatePasswordRequest struct {
	Username    string `json:"username"`
	NewPassword string `json:"new_password"`
}

type UpdateRoleRequest struct {
	Username string `json:"username"`
	NewRole  string `json:"new_role"`
}

// Response types

type LoginResponse struct {
	Token string    `json:"token"`
	User  StaffInfo `json:"user"`
}

type StaffInfo struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// APIResponse is the uniform envelope returned by every endpoint.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Domain types

type School struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	City         string `json:"city"`
	State        string `json:"state"`
	Region       string `json:"region"`
	Cluster      string `json:"cluster"`
	CarteiraSAF  string `json:"carteira_saf"`
	LicenseLimit int    `json:"license_limit"`
	Status       string `json:"status"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Address      string `json:"address"`
	Neighborhood string `json:"neighborhood"`
}

type User struct {
	ID          string `json:"id"`
	SchoolID    string `json:"school_id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	HasCanva    bool   `json:"has_canva"`
	IsCompliant bool   `json:"is_compliant"`
}

// SchoolUser is the per-school user listing shape the dashboard expects.
type SchoolUser struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	SchoolName    string `json:"school_name"`
	SchoolID      string `json:"school_id"`
	StatusLicenca string `json:"status_licenca"`
	HasCanva      bool   `json:"has_canva"`
	IsCompliant   bool   `json:"is_compliant"`
}

type Badge struct {
	Tone string `json:"tone"`
	Text string `json:"text"`
}

type Contact struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type SchoolOverview struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Status      string  `json:"status"`
	Cluster     string  `json:"cluster"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Region      string  `json:"region"`
	CarteiraSAF string  `json:"carteira_saf"`
	Used        int     `json:"used"`
	Limit       int     `json:"limit"`
	UsageStatus string  `json:"usage_status"`
	Badge       Badge   `json:"badge"`
	Contact     Contact `json:"contact"`
}

type AuditLog struct {
	ID         string                 `json:"id"`
	Action     string                 `json:"action"`
	SchoolID   string                 `json:"school_id"`
	SchoolName string                 `json:"school_name"`
	Actor      string                 `json:"actor"`
	Payload    map[string]interface{} `json:"payload"`
	TS         time.Time              `json:"ts"`
}

// GenerateBadge builds the dashboard badge for a school's usage.
func GenerateBadge(used, limit int) Badge {
	switch {
	case used == 0:
		return Badge{Tone: "gray", Text: formatBadgeText(used, limit, "")}
	case used < limit:
		return Badge{Tone: "blue", Text: formatBadgeText(used, limit, "")}
	case used == limit:
		return Badge{Tone: "green", Text: formatBadgeText(used, limit, " (Completa)")}
	default:
		return Badge{Tone: "red", Text: formatBadgeText(used, limit, " (Excesso)")}
	}
}

// UsageStatus maps a used/limit pair to its status label.
func UsageStatus(used, limit int) string {
	switch {
	case used == 0:
		return SchoolStatusEmpty
	case used < limit:
		return SchoolStatusPartial
	case used == limit:
		return SchoolStatusFull
	default:
		return SchoolStatusExcess
	}
}

func formatBadgeText(used, limit int, suffix string) string {
	return fmt.Sprintf("%d/%d Licenças%s", used, limit, suffix)
}
