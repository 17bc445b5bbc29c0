package controllers

import (
	"net/http"
	"strings"

	"github.com/moonjaehyun/shiftroster-backend/api/responses"
	"github.com/moonjaehyun/shiftroster-backend/api/validators"
	"github.com/moonjaehyun/shiftroster-backend/internal/staffprefs"
	"github.com/moonjaehyun/shiftroster-backend/pkg/logger"
)

type saveStaffOrderRequest struct {
	Staff []string `json:"staff" validate:"required,max=200,dive,required,max=120"`
}

// ListStaff returns the staff column in display order, filtered by the
// caller's visibility.
func ListStaff(svc staffprefs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, storeID, err := actorAndStore(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.ListStaff(r.Context(), actor, storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// SaveStaffOrder persists the store's staff display order.
func SaveStaffOrder(svc staffprefs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, storeID, err := actorAndStore(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body saveStaffOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		names := make([]string, 0, len(body.Staff))
		for _, name := range body.Staff {
			names = append(names, strings.TrimSpace(name))
		}

		view, err := svc.SaveOrder(r.Context(), actor, storeID, names)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}
