package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"

	"github.com/gmi-gj-dev-krushna/employcentric/internal/domain"
)

// Resources and actions known to the policy. Services consult Enforce
// with these instead of checking roles inline, so there is exactly one
// authorization decision point in the whole application.
const (
	ResourceLeave       = "leave"
	ResourceEmployee    = "employee"
	ResourceAttendance  = "attendance"
	ResourcePayroll     = "payroll"
	ResourceRecruitment = "recruitment"

	ActionRead    = "read"
	ActionReadAll = "read_all"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionDecide  = "decide"
	ActionClock   = "clock"
	ActionManage  = "manage"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
}

func NewService(enforcer *casbin.Enforcer) Service {
	return &service{enforcer: enforcer}
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.enforcer.Enforce(req.Role, req.Resource, req.Action)
}
