package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleAtLeast(t *testing.T) {
	t.Run("super admin satisfies every check", func(t *testing.T) {
		for _, min := range []Role{RoleUser, RoleManager, RoleAdmin, RoleSuperAdmin} {
			assert.True(t, RoleSuperAdmin.AtLeast(min), "super admin should satisfy %s", min)
		}
	})

	t.Run("ordering", func(t *testing.T) {
		assert.True(t, RoleAdmin.AtLeast(RoleManager))
		assert.True(t, RoleManager.AtLeast(RoleUser))
		assert.False(t, RoleUser.AtLeast(RoleManager))
		assert.False(t, RoleManager.AtLeast(RoleAdmin))
		assert.False(t, RoleAdmin.AtLeast(RoleSuperAdmin))
	})

	t.Run("unknown roles never satisfy", func(t *testing.T) {
		assert.False(t, Role("Owner").AtLeast(RoleUser))
		assert.False(t, RoleUser.AtLeast(Role("Owner")))
	})
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleSuperAdmin.Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("superadmin").Valid())
}
