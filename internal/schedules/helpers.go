package schedules

import (
	"github.com/moonjaehyun/shiftroster-backend/pkg/db/models"
	"github.com/moonjaehyun/shiftroster-backend/pkg/enums"
	"github.com/moonjaehyun/shiftroster-backend/pkg/types"
)

func newEntryFromInput(input UpsertInput) *models.ScheduleEntry {
	return &models.ScheduleEntry{
		StoreID:      input.StoreID,
		StaffName:    input.StaffName,
		ScheduleDate: input.ScheduleDate,
		Status:       input.Status,
		Position:     clonePositionPtr(input.Position),
		Note:         cloneStringPtr(input.Note),
		Version:      1,
	}
}

// visibleRows applies row-level visibility: staff callers only ever see
// their own row, owners and managers see everything.
func visibleRows(actor types.Actor, entries []models.ScheduleEntry) []models.ScheduleEntry {
	switch actor.Role {
	case enums.MemberRoleOwner, enums.MemberRoleManager:
		return entries
	case enums.MemberRoleStaff:
		out := make([]models.ScheduleEntry, 0, 8)
		for _, entry := range entries {
			if entry.StaffName == actor.Name {
				out = append(out, entry)
			}
		}
		return out
	default:
		return nil
	}
}

func positionEqual(a, b *enums.ShiftPosition) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func stringPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}

func clonePositionPtr(value *enums.ShiftPosition) *enums.ShiftPosition {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}
