package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleTypes_ClosedSet(t *testing.T) {
	all := AllRoleTypes()
	assert.Len(t, all, 26)
	assert.Equal(t, RoleDeveloper, all[0], "Developer has highest priority")
	assert.Equal(t, RoleOther, all[len(all)-1], "Other closes the set")

	seen := map[RoleType]bool{}
	for _, role := range all {
		assert.True(t, role.Valid())
		assert.False(t, seen[role], "duplicate role %s", role)
		seen[role] = true
	}

	assert.False(t, RoleType("Astronaut").Valid())
	assert.False(t, RoleType("").Valid())
}

func TestTechRoles_SubsetOfClosedSet(t *testing.T) {
	for role := range TechRoles {
		assert.True(t, role.Valid(), "tech role %s must be in the closed set", role)
	}
	assert.False(t, TechRoles[RoleSales])
	assert.False(t, TechRoles[RoleOther])
}

func TestSeniorityLevels(t *testing.T) {
	all := AllSeniorityLevels()
	assert.Len(t, all, 5)
	assert.Equal(t, SeniorityExecutive, all[0])
	assert.Equal(t, SeniorityMid, all[len(all)-1], "Mid is the default, checked last")
}

func TestContractTypes_CanonicalSpelling(t *testing.T) {
	assert.Equal(t, ContractType("Brigáda"), ContractBrigada)
	assert.Equal(t, ContractType("IČO"), ContractICO)
	assert.Len(t, AllContractTypes(), 4)
}

func TestIntPtr(t *testing.T) {
	p := IntPtr(SalaryNegotiable)
	assert.Equal(t, -1, *p)
}
