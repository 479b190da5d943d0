package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_IsValid(t *testing.T) {
	for _, r := range AllRoles() {
		assert.True(t, r.IsValid(), r)
	}
	assert.False(t, Role("").IsValid())
	assert.False(t, Role("super_admin").IsValid())
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" business_owner ")
	assert.True(t, ok)
	assert.Equal(t, RoleBusinessOwner, r)

	_, ok = ParseRole("owner")
	assert.False(t, ok)
}

func TestRoleSet_NoImpliedHierarchy(t *testing.T) {
	admins := NewRoleSet(RoleAdmin)

	assert.True(t, admins.Allows(RoleAdmin))
	assert.False(t, admins.Allows(RoleSuperAdmin), "super admin must be listed explicitly")
	assert.False(t, admins.Allows(RoleManager))
}

func TestRoleSet_Roles(t *testing.T) {
	set := NewRoleSet(RoleUser, RoleSuperAdmin, RoleUser)
	assert.Equal(t, []Role{RoleSuperAdmin, RoleUser}, set.Roles())
}
