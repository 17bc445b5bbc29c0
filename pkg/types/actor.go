package types

import (
	"github.com/google/uuid"

	"github.com/moonjaehyun/shiftroster-backend/pkg/enums"
)

// Actor identifies the caller of a roster operation within one store
// context. The role comes from the store membership record, never from
// client-side state.
type Actor struct {
	UserID uuid.UUID
	Name   string
	Role   enums.MemberRole
}
