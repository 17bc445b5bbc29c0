package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/moonjaehyun/shiftroster-backend/pkg/enums"
)

// ScheduleEntry is one shift assignment for one staff member on one date.
// The (store_id, staff_name, schedule_date) key is unique; writes replace
// the whole record. Version increments on every write so racing writers
// surface as explicit conflicts instead of silent overwrites.
type ScheduleEntry struct {
	ID           uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID      uuid.UUID            `gorm:"column:store_id;type:uuid;not null;uniqueIndex:idx_schedule_entries_cell"`
	StaffName    string               `gorm:"column:staff_name;not null;uniqueIndex:idx_schedule_entries_cell"`
	ScheduleDate time.Time            `gorm:"column:schedule_date;type:date;not null;uniqueIndex:idx_schedule_entries_cell"`
	Status       enums.ShiftStatus    `gorm:"column:status;type:text;not null"`
	Position     *enums.ShiftPosition `gorm:"column:position;type:text"`
	Note         *string              `gorm:"column:note;type:text"`
	Version      int64                `gorm:"column:version;not null;default:1"`
	CreatedAt    time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
