package schedules

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/moonjaehyun/shiftroster-backend/pkg/db/models"
)

// Repository owns ScheduleEntry persistence. Uniqueness of
// (store_id, staff_name, schedule_date) is enforced by the upsert
// conflict target, not by in-memory locking.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id uuid.UUID) (*models.ScheduleEntry, error)
	FindByCell(ctx context.Context, storeID uuid.UUID, staffName string, date time.Time) (*models.ScheduleEntry, error)
	Upsert(ctx context.Context, entry *models.ScheduleEntry) error
	DeleteByID(ctx context.Context, id uuid.UUID) (int64, error)
	ListRange(ctx context.Context, storeID uuid.UUID, from, to time.Time) ([]models.ScheduleEntry, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a schedules repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.ScheduleEntry, error) {
	var entry models.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) FindByCell(ctx context.Context, storeID uuid.UUID, staffName string, date time.Time) (*models.ScheduleEntry, error) {
	var entry models.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND staff_name = ? AND schedule_date = ?", storeID, staffName, date).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Upsert replaces the whole record for the cell. Unspecified fields from a
// prior record are never preserved; the version column increments on every
// overwrite.
func (r *repository) Upsert(ctx context.Context, entry *models.ScheduleEntry) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "store_id"},
			{Name: "staff_name"},
			{Name: "schedule_date"},
		},
		DoUpdates: clause.Assignments(map[string]any{
			"status":     entry.Status,
			"position":   entry.Position,
			"note":       entry.Note,
			"version":    gorm.Expr("schedule_entries.version + 1"),
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(entry).Error
}

func (r *repository) DeleteByID(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.ScheduleEntry{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *repository) ListRange(ctx context.Context, storeID uuid.UUID, from, to time.Time) ([]models.ScheduleEntry, error) {
	var entries []models.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND schedule_date >= ? AND schedule_date <= ?", storeID, from, to).
		Order("schedule_date ASC, staff_name ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
