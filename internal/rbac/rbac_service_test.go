package rbac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gmi-gj-dev-krushna/employcentric/internal/domain"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/rbac"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/rbac/infra"
)

func newService(t *testing.T) rbac.Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)
	return rbac.NewService(enforcer)
}

func TestRBACService_LeaveDecide(t *testing.T) {
	svc := newService(t)

	t.Run("admin and hr may decide leaves", func(t *testing.T) {
		for _, role := range []string{domain.RoleAdmin, domain.RoleHR} {
			allowed, err := svc.Enforce(domain.EnforceRequest{
				Role:     role,
				Resource: rbac.ResourceLeave,
				Action:   rbac.ActionDecide,
			})
			assert.NoError(t, err)
			assert.True(t, allowed, role)
		}
	})

	t.Run("manager and employee may not decide leaves", func(t *testing.T) {
		for _, role := range []string{domain.RoleManager, domain.RoleEmployee} {
			allowed, err := svc.Enforce(domain.EnforceRequest{
				Role:     role,
				Resource: rbac.ResourceLeave,
				Action:   rbac.ActionDecide,
			})
			assert.NoError(t, err)
			assert.False(t, allowed, role)
		}
	})
}

func TestRBACService_LeaveVisibility(t *testing.T) {
	svc := newService(t)

	t.Run("read_all restricted to admin and hr", func(t *testing.T) {
		cases := map[string]bool{
			domain.RoleAdmin:    true,
			domain.RoleHR:       true,
			domain.RoleManager:  false,
			domain.RoleEmployee: false,
		}
		for role, want := range cases {
			allowed, err := svc.Enforce(domain.EnforceRequest{
				Role:     role,
				Resource: rbac.ResourceLeave,
				Action:   rbac.ActionReadAll,
			})
			assert.NoError(t, err)
			assert.Equal(t, want, allowed, role)
		}
	})

	t.Run("every role may create and read own leaves", func(t *testing.T) {
		for _, role := range []string{domain.RoleAdmin, domain.RoleHR, domain.RoleManager, domain.RoleEmployee} {
			for _, action := range []string{rbac.ActionCreate, rbac.ActionRead} {
				allowed, err := svc.Enforce(domain.EnforceRequest{
					Role:     role,
					Resource: rbac.ResourceLeave,
					Action:   action,
				})
				assert.NoError(t, err)
				assert.True(t, allowed, role+"/"+action)
			}
		}
	})
}

func TestRBACService_RoleInheritance(t *testing.T) {
	svc := newService(t)

	t.Run("admin inherits hr permissions", func(t *testing.T) {
		allowed, err := svc.Enforce(domain.EnforceRequest{
			Role:     domain.RoleAdmin,
			Resource: rbac.ResourceEmployee,
			Action:   rbac.ActionCreate,
		})
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("hr may not delete employees", func(t *testing.T) {
		allowed, err := svc.Enforce(domain.EnforceRequest{
			Role:     domain.RoleHR,
			Resource: rbac.ResourceEmployee,
			Action:   rbac.ActionDelete,
		})
		assert.NoError(t, err)
		assert.False(t, allowed)
	})
}
