package domain

import "errors"

// RoleName identifies one of the canonical roles persisted in the roles
// collection. The set is closed: every customer or clinic ends up with a
// subset of these three.
type RoleName string

const (
	RoleUser      RoleName = "ROLE_USER"
	RoleModerator RoleName = "ROLE_MODERATOR"
	RoleAdmin     RoleName = "ROLE_ADMIN"
)

// CanonicalRoles lists every role the backing store must contain. Verified at
// startup so a missing role is caught before the first request.
var CanonicalRoles = []RoleName{RoleUser, RoleModerator, RoleAdmin}

var ErrRoleNotFound = errors.New("role not found")

// Role is the persisted reference entity behind a RoleName. Shared data,
// not owned by any clinic or customer.
type Role struct {
	ID   string   `json:"id"`
	Name RoleName `json:"name"`
}

// RoleNameForToken maps a request-supplied role token to a canonical role.
// The mapping is total: "admin" and "mod" select the elevated roles, any
// other token falls through to the basic user role.
func RoleNameForToken(token string) RoleName {
	switch token {
	case "admin":
		return RoleAdmin
	case "mod":
		return RoleModerator
	default:
		return RoleUser
	}
}

// RoleNames extracts the names from a role set, preserving order.
func RoleNames(roles []Role) []string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, string(r.Name))
	}
	return names
}
