package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/moonjaehyun/shiftroster-backend/api/responses"
	"github.com/moonjaehyun/shiftroster-backend/internal/memberships"
	pkgerrors "github.com/moonjaehyun/shiftroster-backend/pkg/errors"
	"github.com/moonjaehyun/shiftroster-backend/pkg/logger"
)

// MemberLister exposes the membership listing the admin surface needs.
type MemberLister interface {
	ListMembers(ctx context.Context, storeID uuid.UUID) ([]memberships.MemberDTO, error)
}

type memberListDTO struct {
	Members []memberships.MemberDTO `json:"members"`
	Count   int                     `json:"count"`
}

// ListMembers returns every membership of the active store, newest last.
// Route-level role gating keeps this off the staff surface.
func ListMembers(repo MemberLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, storeID, err := actorAndStore(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		members, err := repo.ListMembers(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to list store members"))
			return
		}
		responses.WriteSuccess(w, memberListDTO{Members: members, Count: len(members)})
	}
}
