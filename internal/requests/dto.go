package requests

import (
	"time"

	"github.com/google/uuid"

	"github.com/moonjaehyun/shiftroster-backend/internal/schedules"
	"github.com/moonjaehyun/shiftroster-backend/pkg/db/models"
	"github.com/moonjaehyun/shiftroster-backend/pkg/enums"
)

// ChangeRequestDTO is the API representation of one change request.
type ChangeRequestDTO struct {
	ID              uuid.UUID                 `json:"id"`
	StoreID         uuid.UUID                 `json:"store_id"`
	RequesterName   string                    `json:"requester_name"`
	StaffName       string                    `json:"staff_name"`
	ScheduleDate    string                    `json:"schedule_date"`
	RequestedStatus enums.ShiftStatus         `json:"requested_status"`
	CurrentStatus   *enums.ShiftStatus        `json:"current_status,omitempty"`
	Note            *string                   `json:"note,omitempty"`
	Status          enums.ChangeRequestStatus `json:"status"`
	ReviewedBy      *string                   `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time                `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time                 `json:"created_at"`
}

// CreateInput carries a new change-request submission.
type CreateInput struct {
	StoreID         uuid.UUID
	StaffName       string
	ScheduleDate    time.Time
	RequestedStatus enums.ShiftStatus
	Note            *string
}

// PendingListDTO is the pending queue for a store plus its depth.
type PendingListDTO struct {
	Requests []ChangeRequestDTO `json:"requests"`
	Count    int64              `json:"count"`
}

// FromModel maps the persistence record onto the DTO.
func FromModel(req *models.ChangeRequest) *ChangeRequestDTO {
	if req == nil {
		return nil
	}
	return &ChangeRequestDTO{
		ID:              req.ID,
		StoreID:         req.StoreID,
		RequesterName:   req.RequesterName,
		StaffName:       req.StaffName,
		ScheduleDate:    req.ScheduleDate.Format(schedules.DateLayout),
		RequestedStatus: req.RequestedStatus,
		CurrentStatus:   req.CurrentStatus,
		Note:            req.Note,
		Status:          req.Status,
		ReviewedBy:      req.ReviewedBy,
		ReviewedAt:      req.ReviewedAt,
		CreatedAt:       req.CreatedAt,
	}
}
