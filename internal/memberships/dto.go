package memberships

import (
	"time"

	"github.com/google/uuid"

	"github.com/moonjaehyun/shiftroster-backend/pkg/enums"
)

// MemberDTO is one store member with identity metadata attached.
type MemberDTO struct {
	UserID      uuid.UUID              `json:"user_id"`
	DisplayName string                 `json:"display_name"`
	Email       string                 `json:"email"`
	Role        enums.MemberRole       `json:"role"`
	Status      enums.MembershipStatus `json:"status"`
	CreatedAt   time.Time              `json:"created_at"`
}

type memberRow struct {
	UserID      uuid.UUID
	DisplayName string
	Email       string
	Role        enums.MemberRole
	Status      enums.MembershipStatus
	CreatedAt   time.Time
}

func membersFromRows(rows []memberRow) []MemberDTO {
	out := make([]MemberDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, MemberDTO{
			UserID:      row.UserID,
			DisplayName: row.DisplayName,
			Email:       row.Email,
			Role:        row.Role,
			Status:      row.Status,
			CreatedAt:   row.CreatedAt,
		})
	}
	return out
}
