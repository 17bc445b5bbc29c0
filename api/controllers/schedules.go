package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/moonjaehyun/shiftroster-backend/api/middleware"
	"github.com/moonjaehyun/shiftroster-backend/api/responses"
	"github.com/moonjaehyun/shiftroster-backend/api/validators"
	"github.com/moonjaehyun/shiftroster-backend/internal/schedules"
	"github.com/moonjaehyun/shiftroster-backend/pkg/enums"
	pkgerrors "github.com/moonjaehyun/shiftroster-backend/pkg/errors"
	"github.com/moonjaehyun/shiftroster-backend/pkg/logger"
	"github.com/moonjaehyun/shiftroster-backend/pkg/types"
)

type upsertScheduleRequest struct {
	StaffName    string  `json:"staff_name" validate:"required,max=120"`
	ScheduleDate string  `json:"schedule_date" validate:"required,datetime=2006-01-02"`
	Status       string  `json:"status" validate:"required,oneof=work off half"`
	Position     *string `json:"position" validate:"omitempty,oneof=K H KH"`
	Note         *string `json:"note" validate:"omitempty,max=500"`
}

// ListSchedules returns the caller's visible slice of the roster for a
// date range.
func ListSchedules(svc schedules.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, storeID, err := actorAndStore(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		from, err := validators.ParseQueryDate(r, "from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		to, err := validators.ParseQueryDate(r, "to")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), actor, storeID, from, to)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// UpsertSchedule writes the full record for one roster cell.
func UpsertSchedule(svc schedules.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, storeID, err := actorAndStore(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body upsertScheduleRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := buildUpsertInput(storeID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.Upsert(r.Context(), actor, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entry)
	}
}

// DeleteSchedule removes one roster cell outright.
func DeleteSchedule(svc schedules.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, _, err := actorAndStore(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entryID, err := parsePathUUID(r, "entryId", "entry id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), actor, entryID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func buildUpsertInput(storeID uuid.UUID, body upsertScheduleRequest) (schedules.UpsertInput, error) {
	date, err := time.Parse(schedules.DateLayout, body.ScheduleDate)
	if err != nil {
		return schedules.UpsertInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid schedule date")
	}
	status, err := enums.ParseShiftStatus(body.Status)
	if err != nil {
		return schedules.UpsertInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
	}

	var position *enums.ShiftPosition
	if body.Position != nil {
		parsed, err := enums.ParseShiftPosition(*body.Position)
		if err != nil {
			return schedules.UpsertInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid position")
		}
		position = &parsed
	}

	return schedules.UpsertInput{
		StoreID:      storeID,
		StaffName:    strings.TrimSpace(body.StaffName),
		ScheduleDate: date,
		Status:       status,
		Position:     position,
		Note:         body.Note,
	}, nil
}

func actorAndStore(r *http.Request) (types.Actor, uuid.UUID, error) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		return types.Actor{}, uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor context missing")
	}
	storeID, err := uuid.Parse(middleware.StoreIDFromContext(r.Context()))
	if err != nil {
		return types.Actor{}, uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "store context required")
	}
	return actor, storeID, nil
}

func parsePathUUID(r *http.Request, param, label string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, param))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, label+" is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+label)
	}
	return id, nil
}
