package infra

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/gmi-gj-dev-krushna/employcentric/internal/domain"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Role permissions are static: the product ships with the four fixed
// roles and there is no per-tenant policy editing surface.
var policies = [][]string{
	{domain.RoleEmployee, "leave", "read"},
	{domain.RoleEmployee, "leave", "create"},
	{domain.RoleEmployee, "attendance", "read"},
	{domain.RoleEmployee, "attendance", "clock"},
	{domain.RoleEmployee, "payroll", "read"},

	{domain.RoleManager, "recruitment", "read"},

	{domain.RoleHR, "leave", "read_all"},
	{domain.RoleHR, "leave", "decide"},
	{domain.RoleHR, "employee", "read"},
	{domain.RoleHR, "employee", "read_all"},
	{domain.RoleHR, "employee", "create"},
	{domain.RoleHR, "employee", "update"},
	{domain.RoleHR, "attendance", "read_all"},
	{domain.RoleHR, "payroll", "read_all"},
	{domain.RoleHR, "recruitment", "manage"},

	{domain.RoleAdmin, "employee", "delete"},
}

// Role inheritance: manager extends employee, hr extends manager,
// admin extends hr.
var groupings = [][]string{
	{domain.RoleManager, domain.RoleEmployee},
	{domain.RoleHR, domain.RoleManager},
	{domain.RoleAdmin, domain.RoleHR},
}

func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range groupings {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return enforcer, nil
}
