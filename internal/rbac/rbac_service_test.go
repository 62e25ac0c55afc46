package rbac

import (
	"path/filepath"
	"testing"

	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer(filepath.Join("infra", "model.conf"))
	assert.NoError(t, err)
	svc, err := NewService(enforcer)
	assert.NoError(t, err)
	return svc
}

func TestEnforce_AdminGrants(t *testing.T) {
	svc := newTestService(t)

	allowed, err := svc.Enforce("admin", "payroll", "run")
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, _ = svc.Enforce("admin", "ledger", "adjust")
	assert.True(t, allowed)
}

func TestEnforce_StaffLimits(t *testing.T) {
	svc := newTestService(t)

	allowed, _ := svc.Enforce("staff", "occurrences", "read")
	assert.True(t, allowed)

	allowed, _ = svc.Enforce("staff", "payroll", "run")
	assert.False(t, allowed)

	allowed, _ = svc.Enforce("staff", "ledger", "adjust")
	assert.False(t, allowed)
}

func TestEnforce_RoleInheritance(t *testing.T) {
	svc := newTestService(t)

	// admin inherits staff grants.
	allowed, _ := svc.Enforce("admin", "occurrences", "complete")
	assert.True(t, allowed)

	// super_admin matches everything through the wildcard policy.
	allowed, _ = svc.Enforce("super_admin", "anything", "at-all")
	assert.True(t, allowed)
}

func TestEnforce_UnknownRole(t *testing.T) {
	svc := newTestService(t)

	allowed, err := svc.Enforce("visitor", "occurrences", "read")
	assert.NoError(t, err)
	assert.False(t, allowed)
}
