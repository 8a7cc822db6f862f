package model

import "strings"

const (
	RoleAdmin      = "ADMIN"
	RoleAdminAlt   = "ROLE_ADMIN"
	RoleEmployee   = "EMPLOYEE"
	SystemUserID   = "system"
	SystemUsername = "system"
)

// Scope is the authenticated principal a request runs as.
type Scope struct {
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// IsAdmin reports whether the role grants organization-wide access.
func (s Scope) IsAdmin() bool {
	return IsAdminRole(s.Role)
}

// IsAuthenticated reports whether the scope carries an identity.
func (s Scope) IsAuthenticated() bool {
	return strings.TrimSpace(s.UserID) != ""
}

func IsAdminRole(role string) bool {
	r := strings.TrimSpace(role)
	return strings.EqualFold(r, RoleAdmin) || strings.EqualFold(r, RoleAdminAlt)
}

// SystemScope is the principal used for internally triggered generations.
func SystemScope() Scope {
	return Scope{
		UserID:   SystemUserID,
		Username: SystemUsername,
		Role:     RoleAdmin,
	}
}
