package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/moonjaehyun/shiftroster-backend/api/responses"
	"github.com/moonjaehyun/shiftroster-backend/api/validators"
	"github.com/moonjaehyun/shiftroster-backend/internal/requests"
	"github.com/moonjaehyun/shiftroster-backend/internal/schedules"
	"github.com/moonjaehyun/shiftroster-backend/pkg/enums"
	pkgerrors "github.com/moonjaehyun/shiftroster-backend/pkg/errors"
	"github.com/moonjaehyun/shiftroster-backend/pkg/logger"
)

type createRequestBody struct {
	StaffName       string  `json:"staff_name" validate:"required,max=120"`
	ScheduleDate    string  `json:"schedule_date" validate:"required,datetime=2006-01-02"`
	RequestedStatus string  `json:"requested_status" validate:"required,oneof=work off half"`
	Note            *string `json:"note" validate:"omitempty,max=500"`
}

// CreateRequest submits a change request for a roster cell.
func CreateRequest(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, storeID, err := actorAndStore(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createRequestBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		date, err := time.Parse(schedules.DateLayout, body.ScheduleDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid schedule date"))
			return
		}
		status, err := enums.ParseShiftStatus(body.RequestedStatus)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid requested status"))
			return
		}

		created, err := svc.Create(r.Context(), actor, requests.CreateInput{
			StoreID:         storeID,
			StaffName:       strings.TrimSpace(body.StaffName),
			ScheduleDate:    date,
			RequestedStatus: status,
			Note:            body.Note,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// ListPendingRequests returns the store's pending queue.
func ListPendingRequests(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, storeID, err := actorAndStore(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListPending(r.Context(), actor, storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ListRequests returns the store's request history filtered by status.
func ListRequests(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, storeID, err := actorAndStore(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseChangeRequestStatus(r.URL.Query().Get("status"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
			return
		}

		list, err := svc.ListByStatus(r.Context(), actor, storeID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ApproveRequest resolves a pending request and applies it to the roster.
func ApproveRequest(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return resolveRequest(svc, logg, true)
}

// RejectRequest resolves a pending request without touching the roster.
func RejectRequest(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return resolveRequest(svc, logg, false)
}

func resolveRequest(svc requests.Service, logg *logger.Logger, approve bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, storeID, err := actorAndStore(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		requestID, err := parsePathUUID(r, "requestId", "request id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var resolved *requests.ChangeRequestDTO
		if approve {
			resolved, err = svc.Approve(r.Context(), actor, requestID, storeID)
		} else {
			resolved, err = svc.Reject(r.Context(), actor, requestID, storeID)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resolved)
	}
}
