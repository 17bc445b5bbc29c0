package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/moonjaehyun/shiftroster-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID        uuid.UUID
	DisplayName   string
	ActiveStoreID *uuid.UUID
	Role          enums.MemberRole
	JTI           string
}

// AccessTokenClaims represents the typed JWT issued to clients. The role
// claim is advisory; mutating routes re-check the membership role in the
// database before writing.
type AccessTokenClaims struct {
	UserID        uuid.UUID        `json:"user_id"`
	DisplayName   string           `json:"display_name"`
	ActiveStoreID *uuid.UUID       `json:"active_store_id,omitempty"`
	Role          enums.MemberRole `json:"role"`
	jwt.RegisteredClaims
}
