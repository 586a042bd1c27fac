package domain

import "strings"

// Role is a foodcourt account role as exposed to the client.
type Role string

const (
	RoleMember  Role = "MEMBER"
	RoleManager Role = "MANAGER"
	RoleAdmin   Role = "ADMIN"
)

// rolePrefix is the namespace the backend puts on role claims.
const rolePrefix = "ROLE_"

// Roles lists the known roles, lowest rank first.
var Roles = []Role{RoleMember, RoleManager, RoleAdmin}

// ParseRole strips the backend's ROLE_ namespace from a role claim.
// The result is not checked against Roles; use Valid for that.
func ParseRole(claim string) Role {
	return Role(strings.TrimPrefix(strings.TrimSpace(claim), rolePrefix))
}

// Valid returns true if r is one of the known roles.
func (r Role) Valid() bool {
	return r.Rank() > 0
}

// Rank orders roles MEMBER < MANAGER < ADMIN. Unknown roles rank 0.
func (r Role) Rank() int {
	switch r {
	case RoleMember:
		return 1
	case RoleManager:
		return 2
	case RoleAdmin:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether r ranks at or above min.
// An unknown role satisfies nothing, not even another unknown role.
func (r Role) AtLeast(min Role) bool {
	if !r.Valid() {
		return false
	}
	return r.Rank() >= min.Rank()
}

func (r Role) String() string {
	return string(r)
}
