package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gmi-gj-dev-krushna/employcentric/internal/domain"
	payrollerrors "github.com/gmi-gj-dev-krushna/employcentric/internal/payroll/errors"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/rbac"
)

const (
	StatusProcessed = "processed"
	StatusPaid      = "paid"
)

const payslipCacheTTL = 10 * time.Minute

func payslipCacheKey(companyID, employeeID string) string {
	return "payslips:" + companyID + ":" + employeeID
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, companyID string, actor domain.Principal) ([]PayslipResponse, error)
	GetByID(ctx context.Context, companyID string, actor domain.Principal, id string) (PayslipResponse, error)
}

type service struct {
	repo   Repository
	policy rbac.Service
	rdb    *redis.Client
	logger *zap.Logger
}

func NewService(repo Repository, policy rbac.Service, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{repo: repo, policy: policy, rdb: rdb, logger: l}
}

func (s *service) GetAll(ctx context.Context, companyID string, actor domain.Principal) ([]PayslipResponse, error) {
	readAll, err := s.policy.Enforce(domain.EnforceRequest{
		Role:     actor.Role,
		Resource: rbac.ResourcePayroll,
		Action:   rbac.ActionReadAll,
	})
	if err != nil {
		return nil, err
	}

	if readAll {
		rows, err := s.repo.FindAllByCompany(ctx, companyID)
		if err != nil {
			return nil, err
		}
		return mapToListResponse(rows), nil
	}

	// Own payslips change rarely; cache the list per employee.
	cacheKey := payslipCacheKey(companyID, actor.ID)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []PayslipResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	rows, err := s.repo.FindAllByCompanyAndEmployee(ctx, companyID, actor.ID)
	if err != nil {
		return nil, err
	}
	resp := mapToListResponse(rows)

	if s.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			s.rdb.Set(ctx, cacheKey, payload, payslipCacheTTL)
		}
	}

	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID string, actor domain.Principal, id string) (PayslipResponse, error) {
	row, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, payrollerrors.ErrPayslipNotFound
		}
		return PayslipResponse{}, err
	}

	if row.EmployeeID.String() != actor.ID {
		readAll, err := s.policy.Enforce(domain.EnforceRequest{
			Role:     actor.Role,
			Resource: rbac.ResourcePayroll,
			Action:   rbac.ActionReadAll,
		})
		if err != nil {
			return PayslipResponse{}, err
		}
		if !readAll {
			return PayslipResponse{}, payrollerrors.ErrPayslipAccessDenied
		}
	}

	return mapToResponse(*row), nil
}

func mapToResponse(p Payslip) PayslipResponse {
	resp := PayslipResponse{
		ID:          p.ID.String(),
		CompanyID:   p.CompanyID.String(),
		EmployeeID:  p.EmployeeID.String(),
		PeriodStart: p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   p.PeriodEnd.Format("2006-01-02"),
		BaseSalary:  p.BaseSalary,
		Allowance:   p.Allowance,
		Deduction:   p.Deduction,
		NetSalary:   p.NetSalary,
		Status:      p.Status,
	}
	if p.PaidAt != nil {
		v := p.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}
	return resp
}

func mapToListResponse(rows []Payslip) []PayslipResponse {
	res := make([]PayslipResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res
}
