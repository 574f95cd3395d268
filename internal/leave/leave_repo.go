package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gmi-gj-dev-krushna/employcentric/internal/tenant"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Leave, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]Leave, error)
	FindAllByCompanyAndRequester(ctx context.Context, companyID, requesterID string) ([]Leave, error)
	// Transition flips one pending record to a terminal status. It
	// reports whether the guarded update applied; false means the record
	// was missing or already decided.
	Transition(ctx context.Context, companyID, id, targetStatus string, decidedBy uuid.UUID, decisionReason *string, decidedAt time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at DESC, id DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindAllByCompanyAndRequester(ctx context.Context, companyID, requesterID string) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC, id DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) Transition(ctx context.Context, companyID, id, targetStatus string, decidedBy uuid.UUID, decisionReason *string, decidedAt time.Time) (bool, error) {
	// Single guarded UPDATE: the status check and the write are one
	// statement, so two racing deciders cannot both win.
	res := r.db.WithContext(ctx).
		Model(&Leave{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]any{
			"status":          targetStatus,
			"decided_by":      decidedBy,
			"decision_reason": decisionReason,
			"decided_at":      decidedAt,
			"updated_at":      decidedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
