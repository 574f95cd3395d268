package recruitment_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/gmi-gj-dev-krushna/employcentric/internal/recruitment"
)

type memCandidateRepository struct {
	rows []*recruitment.Candidate
}

func (m *memCandidateRepository) Create(ctx context.Context, c *recruitment.Candidate) error {
	cp := *c
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *memCandidateRepository) FindAllByCompany(ctx context.Context, companyID string) ([]recruitment.Candidate, error) {
	var out []recruitment.Candidate
	for _, r := range m.rows {
		if r.CompanyID.String() == companyID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memCandidateRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*recruitment.Candidate, error) {
	for _, r := range m.rows {
		if r.CompanyID.String() == companyID && r.ID.String() == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memCandidateRepository) Update(ctx context.Context, c *recruitment.Candidate) error {
	for i, r := range m.rows {
		if r.ID == c.ID {
			cp := *c
			m.rows[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memCandidateRepository) Delete(ctx context.Context, companyID, id string) error {
	for i, r := range m.rows {
		if r.CompanyID.String() == companyID && r.ID.String() == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func TestRecruitmentService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("defaults to the applied stage", func(t *testing.T) {
		repo := &memCandidateRepository{}
		svc := recruitment.NewService(repo)

		resp, err := svc.Create(ctx, companyID, recruitment.CreateCandidateRequest{
			FullName: "Dana Kim",
			Email:    "dana@applicants.test",
			Role:     "Backend Engineer",
		})

		assert.NoError(t, err)
		assert.Equal(t, recruitment.StageApplied, resp.Stage)
		assert.Len(t, repo.rows, 1)
	})

	t.Run("negative bad company id", func(t *testing.T) {
		svc := recruitment.NewService(&memCandidateRepository{})

		_, err := svc.Create(ctx, "not-a-uuid", recruitment.CreateCandidateRequest{
			FullName: "Dana Kim",
			Email:    "dana@applicants.test",
			Role:     "Backend Engineer",
		})

		assert.ErrorIs(t, err, recruitment.ErrInvalidCompanyID)
	})
}

func TestRecruitmentService_Update(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("stage moves freely in any direction", func(t *testing.T) {
		repo := &memCandidateRepository{}
		svc := recruitment.NewService(repo)

		created, err := svc.Create(ctx, companyID, recruitment.CreateCandidateRequest{
			FullName: "Dana Kim",
			Email:    "dana@applicants.test",
			Role:     "Backend Engineer",
			Stage:    recruitment.StageOffer,
		})
		assert.NoError(t, err)

		// Back to screening; no transition rules apply here.
		updated, err := svc.Update(ctx, companyID, created.ID, recruitment.UpdateCandidateRequest{
			FullName: "Dana Kim",
			Email:    "dana@applicants.test",
			Role:     "Backend Engineer",
			Stage:    recruitment.StageScreening,
		})
		assert.NoError(t, err)
		assert.Equal(t, recruitment.StageScreening, updated.Stage)
	})

	t.Run("negative unknown candidate", func(t *testing.T) {
		svc := recruitment.NewService(&memCandidateRepository{})

		_, err := svc.Update(ctx, companyID, uuid.NewString(), recruitment.UpdateCandidateRequest{
			FullName: "X",
			Email:    "x@applicants.test",
			Role:     "Y",
			Stage:    recruitment.StageHired,
		})
		assert.ErrorIs(t, err, recruitment.ErrCandidateNotFound)
	})
}

func TestRecruitmentService_Delete(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("tenant isolation holds on delete", func(t *testing.T) {
		repo := &memCandidateRepository{}
		svc := recruitment.NewService(repo)

		created, err := svc.Create(ctx, companyID, recruitment.CreateCandidateRequest{
			FullName: "Dana Kim",
			Email:    "dana@applicants.test",
			Role:     "Backend Engineer",
		})
		assert.NoError(t, err)

		otherCompany := uuid.New().String()
		err = svc.Delete(ctx, otherCompany, created.ID)
		assert.ErrorIs(t, err, recruitment.ErrCandidateNotFound)

		err = svc.Delete(ctx, companyID, created.ID)
		assert.NoError(t, err)
		assert.Empty(t, repo.rows)
	})
}
