package auth

import "strings"

// Role is the permission tier carried in tokens: viewers read the roster
// and calendars, operators run imports, admins manage talents and perform
// destructive calendar writes.
type Role string

const (
	RoleViewer   Role = "viewer"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

// NormalizeRole folds case and whitespace and validates against the
// closed set.
func NormalizeRole(value string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(value)))
	switch role {
	case RoleViewer, RoleOperator, RoleAdmin:
		return role, true
	}
	return "", false
}

// RoleAtLeast reports whether role meets the required tier.
func RoleAtLeast(role, required Role) bool {
	return role.rank() >= required.rank()
}

func (r Role) rank() int {
	switch r {
	case RoleAdmin:
		return 3
	case RoleOperator:
		return 2
	case RoleViewer:
		return 1
	}
	return 0
}
