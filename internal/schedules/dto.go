package schedules

import (
	"time"

	"github.com/google/uuid"

	"github.com/moonjaehyun/shiftroster-backend/pkg/db/models"
	"github.com/moonjaehyun/shiftroster-backend/pkg/enums"
)

// DateLayout is the wire format for schedule dates.
const DateLayout = "2006-01-02"

// ScheduleEntryDTO is the API representation of one roster cell.
type ScheduleEntryDTO struct {
	ID           uuid.UUID            `json:"id"`
	StoreID      uuid.UUID            `json:"store_id"`
	StaffName    string               `json:"staff_name"`
	ScheduleDate string               `json:"schedule_date"`
	Status       enums.ShiftStatus    `json:"status"`
	Position     *enums.ShiftPosition `json:"position,omitempty"`
	Note         *string              `json:"note,omitempty"`
	Version      int64                `json:"version"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// UpsertInput is the full desired record for one cell. Writes replace the
// whole record; callers must pass every field they want kept.
type UpsertInput struct {
	StoreID      uuid.UUID
	StaffName    string
	ScheduleDate time.Time
	Status       enums.ShiftStatus
	Position     *enums.ShiftPosition
	Note         *string
}

// FromModel maps the persistence record onto the DTO.
func FromModel(entry *models.ScheduleEntry) *ScheduleEntryDTO {
	if entry == nil {
		return nil
	}
	return &ScheduleEntryDTO{
		ID:           entry.ID,
		StoreID:      entry.StoreID,
		StaffName:    entry.StaffName,
		ScheduleDate: entry.ScheduleDate.Format(DateLayout),
		Status:       entry.Status,
		Position:     entry.Position,
		Note:         entry.Note,
		Version:      entry.Version,
		UpdatedAt:    entry.UpdatedAt,
	}
}
