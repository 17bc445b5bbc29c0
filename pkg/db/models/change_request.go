package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/moonjaehyun/shiftroster-backend/pkg/enums"
)

// ChangeRequest is a proposed status change for a roster cell, awaiting
// owner resolution. Once approved or rejected it is immutable.
type ChangeRequest struct {
	ID              uuid.UUID                 `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID         uuid.UUID                 `gorm:"column:store_id;type:uuid;not null;index"`
	RequesterName   string                    `gorm:"column:requester_name;not null"`
	StaffName       string                    `gorm:"column:staff_name;not null"`
	ScheduleDate    time.Time                 `gorm:"column:schedule_date;type:date;not null"`
	RequestedStatus enums.ShiftStatus         `gorm:"column:requested_status;type:text;not null"`
	CurrentStatus   *enums.ShiftStatus        `gorm:"column:current_status;type:text"`
	Note            *string                   `gorm:"column:note;type:text"`
	Status          enums.ChangeRequestStatus `gorm:"column:status;type:text;not null;default:'pending';index"`
	ReviewedBy      *string                   `gorm:"column:reviewed_by"`
	ReviewedAt      *time.Time                `gorm:"column:reviewed_at"`
	CreatedAt       time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}
