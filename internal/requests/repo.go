package requests

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/moonjaehyun/shiftroster-backend/pkg/db/models"
	"github.com/moonjaehyun/shiftroster-backend/pkg/enums"
)

// Repository owns ChangeRequest persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, req *models.ChangeRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ChangeRequest, error)
	ListByStoreStatus(ctx context.Context, storeID uuid.UUID, status enums.ChangeRequestStatus) ([]models.ChangeRequest, error)
	CountPending(ctx context.Context, storeID uuid.UUID) (int64, error)
	MarkResolved(ctx context.Context, id uuid.UUID, outcome enums.ChangeRequestStatus, reviewedBy string, reviewedAt time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a change-request repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, req *models.ChangeRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.ChangeRequest, error) {
	var req models.ChangeRequest
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) ListByStoreStatus(ctx context.Context, storeID uuid.UUID, status enums.ChangeRequestStatus) ([]models.ChangeRequest, error) {
	var reqs []models.ChangeRequest
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND status = ?", storeID, status).
		Order("created_at ASC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *repository) CountPending(ctx context.Context, storeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ChangeRequest{}).
		Where("store_id = ? AND status = ?", storeID, enums.ChangeRequestStatusPending).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// MarkResolved flips a pending request to its terminal status. The
// WHERE guard on the pending status makes concurrent resolutions lose
// with zero rows affected instead of double-applying.
func (r *repository) MarkResolved(ctx context.Context, id uuid.UUID, outcome enums.ChangeRequestStatus, reviewedBy string, reviewedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.ChangeRequest{}).
		Where("id = ? AND status = ?", id, enums.ChangeRequestStatusPending).
		Updates(map[string]any{
			"status":      outcome,
			"reviewed_by": reviewedBy,
			"reviewed_at": reviewedAt,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
