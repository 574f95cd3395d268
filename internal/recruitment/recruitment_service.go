package recruitment

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gmi-gj-dev-krushna/employcentric/internal/shared/apperror"
)

const (
	StageApplied   = "applied"
	StageScreening = "screening"
	StageInterview = "interview"
	StageOffer     = "offer"
	StageHired     = "hired"
	StageRejected  = "rejected"
)

var (
	ErrCandidateNotFound = apperror.New(
		apperror.CodeNotFound,
		"candidate not found",
		http.StatusNotFound,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
)

//go:generate mockgen -source=recruitment_service.go -destination=mock/recruitment_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateCandidateRequest) (CandidateResponse, error)
	GetAll(ctx context.Context, companyID string) ([]CandidateResponse, error)
	GetByID(ctx context.Context, companyID, id string) (CandidateResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateCandidateRequest) (CandidateResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("recruitment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("recruitment.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateCandidateRequest) (CandidateResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return CandidateResponse{}, ErrInvalidCompanyID
	}

	stage := req.Stage
	if stage == "" {
		stage = StageApplied
	}

	row := &Candidate{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		Role:      req.Role,
		Stage:     stage,
		Notes:     req.Notes,
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("create candidate failed", zap.Error(err))
		return CandidateResponse{}, err
	}

	s.logger.Info("candidate created",
		zap.String("candidate_id", row.ID.String()),
		zap.String("stage", row.Stage),
	)
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]CandidateResponse, error) {
	rows, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	res := make([]CandidateResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (CandidateResponse, error) {
	row, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CandidateResponse{}, ErrCandidateNotFound
		}
		return CandidateResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateCandidateRequest) (CandidateResponse, error) {
	row, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CandidateResponse{}, ErrCandidateNotFound
		}
		return CandidateResponse{}, err
	}

	row.FullName = req.FullName
	row.Email = req.Email
	row.Phone = req.Phone
	row.Role = req.Role
	row.Stage = req.Stage
	row.Notes = req.Notes

	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("update candidate failed", zap.Error(err))
		return CandidateResponse{}, err
	}

	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	if _, err := s.repo.FindByIDAndCompany(ctx, companyID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCandidateNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, companyID, id)
}

func mapToResponse(c Candidate) CandidateResponse {
	return CandidateResponse{
		ID:        c.ID.String(),
		CompanyID: c.CompanyID.String(),
		FullName:  c.FullName,
		Email:     c.Email,
		Phone:     c.Phone,
		Role:      c.Role,
		Stage:     c.Stage,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
