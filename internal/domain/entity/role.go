package entity

import (
	"errors"
	"strings"
)

// ErrInvalidRole is returned when a role token does not name one of the four roles
var ErrInvalidRole = errors.New("invalid role")

// Role represents a user category of the dashboard
type Role string

// Role constants
const (
	RoleStaff    Role = "STAFF"
	RoleAdmin    Role = "ADMIN"
	RoleInvestor Role = "INVESTOR"
	RolePartner  Role = "PARTNER"
)

// AllRoles returns every role in display order
func AllRoles() []Role {
	return []Role{RoleStaff, RoleAdmin, RoleInvestor, RolePartner}
}

// Valid reports whether r is one of the enumerated roles
func (r Role) Valid() bool {
	switch r {
	case RoleStaff, RoleAdmin, RoleInvestor, RolePartner:
		return true
	}
	return false
}

// Label returns the human readable role name shown on the login screen
func (r Role) Label() string {
	switch r {
	case RoleStaff:
		return "Healthcare Professional"
	case RoleAdmin:
		return "System Administrator"
	case RoleInvestor:
		return "Investor / Stakeholder"
	case RolePartner:
		return "Academic Partner"
	}
	return string(r)
}

// ParseRole parses a role token case-insensitively.
func ParseRole(token string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(token)))
	if !role.Valid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// ResolveRole maps the externally supplied role token to a Role.
//
// An absent token resolves to STAFF. A present but unrecognized token is an
// error rather than a silent fallback.
func ResolveRole(token string) (Role, error) {
	if strings.TrimSpace(token) == "" {
		return RoleStaff, nil
	}
	return ParseRole(token)
}
