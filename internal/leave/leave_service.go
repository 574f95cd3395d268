package leave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gmi-gj-dev-krushna/employcentric/internal/domain"
	leaveerrors "github.com/gmi-gj-dev-krushna/employcentric/internal/leave/errors"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/notification"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/rbac"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	TypeAnnual      = "annual"
	TypeSick        = "sick"
	TypePersonal    = "personal"
	TypeBereavement = "bereavement"
	TypeParental    = "parental"
	TypeUnpaid      = "unpaid"
)

func validLeaveType(t string) bool {
	switch t {
	case TypeAnnual, TypeSick, TypePersonal, TypeBereavement, TypeParental, TypeUnpaid:
		return true
	}
	return false
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, companyID string, actor domain.Principal, req CreateLeaveRequest) (LeaveResponse, error)
	Approve(ctx context.Context, companyID string, actor domain.Principal, id string) (LeaveResponse, error)
	Reject(ctx context.Context, companyID string, actor domain.Principal, id, reason string) (LeaveResponse, error)
	GetAll(ctx context.Context, companyID string, actor domain.Principal) ([]LeaveResponse, error)
	GetByID(ctx context.Context, companyID string, actor domain.Principal, id string) (LeaveResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	policy   rbac.Service
	notifier notification.Notifier
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, policy rbac.Service, notifier notification.Notifier, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if notifier == nil {
		notifier = notification.NewNopNotifier()
	}
	return &service{db: db, repo: repo, policy: policy, notifier: notifier, logger: l}
}

func (s *service) Submit(ctx context.Context, companyID string, actor domain.Principal, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("submit leave requested",
		zap.String("company_id", companyID),
		zap.String("requester_id", actor.ID),
		zap.String("leave_type", req.LeaveType),
	)

	companyUUID, requesterUUID, startDate, endDate, err := validateSubmitRequest(companyID, actor, req)
	if err != nil {
		s.logger.Warn("submit leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	totalDays := int(endDate.Sub(startDate).Hours()/24) + 1
	l := &Leave{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		RequesterID:   requesterUUID,
		RequesterName: actor.Name,
		LeaveType:     req.LeaveType,
		StartDate:     startDate,
		EndDate:       endDate,
		TotalDays:     totalDays,
		Reason:        req.Reason,
		Status:        StatusPending,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("submit leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("company_id", companyID),
		zap.String("requester_id", actor.ID),
	)

	// Fan-out happens strictly after commit; it can neither fail nor
	// block the response.
	s.notifier.LeaveRequested(l.ID.String(), l.RequesterName)

	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, companyID string, actor domain.Principal, id string) (LeaveResponse, error) {
	return s.decide(ctx, companyID, actor, id, StatusApproved, nil)
}

func (s *service) Reject(ctx context.Context, companyID string, actor domain.Principal, id, reason string) (LeaveResponse, error) {
	if strings.TrimSpace(reason) == "" {
		return LeaveResponse{}, leaveerrors.ErrDecisionReasonRequired
	}
	return s.decide(ctx, companyID, actor, id, StatusRejected, &reason)
}

func (s *service) decide(ctx context.Context, companyID string, actor domain.Principal, id, targetStatus string, decisionReason *string) (LeaveResponse, error) {
	s.logger.Debug("decide leave requested",
		zap.String("leave_id", id),
		zap.String("company_id", companyID),
		zap.String("actor_id", actor.ID),
		zap.String("target_status", targetStatus),
	)

	allowed, err := s.policy.Enforce(domain.EnforceRequest{
		Role:     actor.Role,
		Resource: rbac.ResourceLeave,
		Action:   rbac.ActionDecide,
	})
	if err != nil {
		return LeaveResponse{}, err
	}
	if !allowed {
		s.logger.Warn("decide leave forbidden",
			zap.String("leave_id", id),
			zap.String("actor_role", actor.Role),
		)
		return LeaveResponse{}, leaveerrors.ErrDecisionForbidden
	}

	if _, err := uuid.Parse(companyID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actor.ID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidRequesterID
	}

	decidedAt := time.Now().UTC()
	applied, err := s.repo.Transition(ctx, companyID, id, targetStatus, actorUUID, decisionReason, decidedAt)
	if err != nil {
		s.logger.Error("decide leave transition failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if !applied {
		// The guard lost: either the id never existed or another decider
		// got there first. Re-read to tell the two apart.
		if _, err := s.repo.FindByIDAndCompany(ctx, companyID, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
			}
			return LeaveResponse{}, err
		}
		s.logger.Warn("decide leave lost to earlier decision",
			zap.String("leave_id", id),
			zap.String("target_status", targetStatus),
		)
		return LeaveResponse{}, leaveerrors.ErrAlreadyDecided
	}

	l, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("decide leave success",
		zap.String("leave_id", id),
		zap.String("status", targetStatus),
		zap.String("decided_by", actor.ID),
	)

	s.notifier.LeaveDecided(l.RequesterID.String(), l.ID.String(), l.Status, decisionMessage(l.Status))

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, actor domain.Principal) ([]LeaveResponse, error) {
	readAll, err := s.policy.Enforce(domain.EnforceRequest{
		Role:     actor.Role,
		Resource: rbac.ResourceLeave,
		Action:   rbac.ActionReadAll,
	})
	if err != nil {
		return nil, err
	}

	var leaves []Leave
	if readAll {
		leaves, err = s.repo.FindAllByCompany(ctx, companyID)
	} else {
		leaves, err = s.repo.FindAllByCompanyAndRequester(ctx, companyID, actor.ID)
	}
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, companyID string, actor domain.Principal, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	if l.RequesterID.String() != actor.ID {
		readAll, err := s.policy.Enforce(domain.EnforceRequest{
			Role:     actor.Role,
			Resource: rbac.ResourceLeave,
			Action:   rbac.ActionReadAll,
		})
		if err != nil {
			return LeaveResponse{}, err
		}
		if !readAll {
			return LeaveResponse{}, leaveerrors.ErrLeaveAccessDenied
		}
	}

	return mapToResponse(*l), nil
}

func decisionMessage(status string) string {
	if status == StatusApproved {
		return "Your leave request has been approved"
	}
	return "Your leave request has been rejected"
}

func validateSubmitRequest(companyID string, actor domain.Principal, req CreateLeaveRequest) (uuid.UUID, uuid.UUID, time.Time, time.Time, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidCompanyID
	}
	requesterUUID, err := uuid.Parse(actor.ID)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidRequesterID
	}
	if !validLeaveType(req.LeaveType) {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidLeaveType
	}
	if strings.TrimSpace(req.Reason) == "" {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrReasonRequired
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	if endDate.Before(startDate) {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return companyUUID, requesterUUID, startDate, endDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:            l.ID.String(),
		CompanyID:     l.CompanyID.String(),
		RequesterID:   l.RequesterID.String(),
		RequesterName: l.RequesterName,
		LeaveType:     l.LeaveType,
		StartDate:     l.StartDate.Format("2006-01-02"),
		EndDate:       l.EndDate.Format("2006-01-02"),
		TotalDays:     l.TotalDays,
		Reason:        l.Reason,
		Status:        l.Status,
		CreatedAt:     l.CreatedAt.Format(time.RFC3339),
	}
	if l.DecidedBy != nil {
		v := l.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if l.DecidedAt != nil {
		v := l.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	resp.DecisionReason = l.DecisionReason
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
