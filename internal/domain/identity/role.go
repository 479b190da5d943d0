package identity

import "strings"

// Role is the single role a user holds. Roles do not inherit from each other.
type Role string

const (
	RoleSuperAdmin    Role = "SUPER_ADMIN"
	RoleAdmin         Role = "ADMIN"
	RoleManager       Role = "MANAGER"
	RoleBusinessOwner Role = "BUSINESS_OWNER"
	RoleEmployee      Role = "EMPLOYEE"
	RoleUser          Role = "USER"
)

// AllRoles returns every known role
func AllRoles() []Role {
	return []Role{
		RoleSuperAdmin,
		RoleAdmin,
		RoleManager,
		RoleBusinessOwner,
		RoleEmployee,
		RoleUser,
	}
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// IsValid returns true if the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleManager, RoleBusinessOwner, RoleEmployee, RoleUser:
		return true
	default:
		return false
	}
}

// ParseRole parses a role name, case-insensitively
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.IsValid()
}

// RoleSet is an explicit allow-list of roles for a protected operation
type RoleSet map[Role]struct{}

// NewRoleSet builds an allow-list from the given roles
func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Allows reports whether r is in the allow-list
func (s RoleSet) Allows(r Role) bool {
	_, ok := s[r]
	return ok
}

// Roles returns the roles of the set in declaration order of AllRoles
func (s RoleSet) Roles() []Role {
	out := make([]Role, 0, len(s))
	for _, r := range AllRoles() {
		if s.Allows(r) {
			out = append(out, r)
		}
	}
	return out
}
