package models

import "strings"

// Role is one of the closed set of roles a principal can hold
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENT"
)

// ParseRole maps a token role name to a Role.
// The account service issues Spanish names (ADMINISTRADOR, CLIENTE); both spellings are accepted.
func ParseRole(name string) (Role, bool) {
	switch strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(name, "ROLE_"))) {
	case "ADMIN", "ADMINISTRADOR":
		return RoleAdmin, true
	case "CLIENT", "CLIENTE":
		return RoleClient, true
	default:
		return "", false
	}
}

// Principal is the authenticated caller resolved by the identity gate
type Principal struct {
	ID    string `json:"id"`
	Roles []Role `json:"roles"`
}

// HasRole reports whether the principal holds the role
func (p *Principal) HasRole(role Role) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the principal bypasses account membership checks
func (p *Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}
