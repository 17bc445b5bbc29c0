package requests

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/moonjaehyun/shiftroster-backend/internal/schedules"
	"github.com/moonjaehyun/shiftroster-backend/pkg/db/models"
	"github.com/moonjaehyun/shiftroster-backend/pkg/enums"
	pkgerrors "github.com/moonjaehyun/shiftroster-backend/pkg/errors"
	"github.com/moonjaehyun/shiftroster-backend/pkg/metrics"
	"github.com/moonjaehyun/shiftroster-backend/pkg/permissions"
	"github.com/moonjaehyun/shiftroster-backend/pkg/types"
)

// TxRunner executes fn inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service drives the change-request workflow: managers submit status
// change proposals, owners resolve them. Approval applies the change
// to the roster cell in the same transaction that retires the request.
type Service interface {
	Create(ctx context.Context, actor types.Actor, input CreateInput) (*ChangeRequestDTO, error)
	ListPending(ctx context.Context, actor types.Actor, storeID uuid.UUID) (*PendingListDTO, error)
	ListByStatus(ctx context.Context, actor types.Actor, storeID uuid.UUID, status enums.ChangeRequestStatus) ([]ChangeRequestDTO, error)
	Approve(ctx context.Context, actor types.Actor, requestID, storeID uuid.UUID) (*ChangeRequestDTO, error)
	Reject(ctx context.Context, actor types.Actor, requestID, storeID uuid.UUID) (*ChangeRequestDTO, error)
}

type service struct {
	repo      Repository
	schedRepo schedules.Repository
	tx        TxRunner
	workflow  *metrics.WorkflowMetrics
	now       func() time.Time
}

// NewService wires the change-request service. The metrics collector
// may be nil.
func NewService(repo Repository, schedRepo schedules.Repository, tx TxRunner, workflow *metrics.WorkflowMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("requests repository required")
	}
	if schedRepo == nil {
		return nil, fmt.Errorf("schedules repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:      repo,
		schedRepo: schedRepo,
		tx:        tx,
		workflow:  workflow,
		now:       time.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, actor types.Actor, input CreateInput) (*ChangeRequestDTO, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}
	if !permissions.For(actor.Role, true).CanRequest {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role cannot submit change requests")
	}

	// Snapshot the cell's current status for the reviewer. The snapshot
	// is advisory: approval overwrites whatever is in the cell then.
	var current *enums.ShiftStatus
	existing, err := s.schedRepo.FindByCell(ctx, input.StoreID, input.StaffName, input.ScheduleDate)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load schedule entry")
	}
	if existing != nil {
		status := existing.Status
		current = &status
	}

	req := &models.ChangeRequest{
		StoreID:         input.StoreID,
		RequesterName:   actor.Name,
		StaffName:       input.StaffName,
		ScheduleDate:    input.ScheduleDate,
		RequestedStatus: input.RequestedStatus,
		CurrentStatus:   current,
		Note:            input.Note,
		Status:          enums.ChangeRequestStatusPending,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create change request")
	}

	s.workflow.IncCreated(input.StoreID.String())
	s.refreshPendingGauge(ctx, input.StoreID)

	return FromModel(req), nil
}

func (s *service) ListPending(ctx context.Context, actor types.Actor, storeID uuid.UUID) (*PendingListDTO, error) {
	if storeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id required")
	}
	if !permissions.For(actor.Role, true).CanApprove {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role cannot view pending requests")
	}

	reqs, err := s.repo.ListByStoreStatus(ctx, storeID, enums.ChangeRequestStatusPending)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pending requests")
	}

	out := &PendingListDTO{
		Requests: make([]ChangeRequestDTO, 0, len(reqs)),
		Count:    int64(len(reqs)),
	}
	for i := range reqs {
		out.Requests = append(out.Requests, *FromModel(&reqs[i]))
	}
	s.workflow.SetPending(storeID.String(), float64(out.Count))
	return out, nil
}

// ListByStatus returns the store's request history for one status,
// oldest first. Review surface only.
func (s *service) ListByStatus(ctx context.Context, actor types.Actor, storeID uuid.UUID, status enums.ChangeRequestStatus) ([]ChangeRequestDTO, error) {
	if storeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status must be pending, approved or rejected")
	}
	if !permissions.For(actor.Role, true).CanApprove {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role cannot view request history")
	}

	reqs, err := s.repo.ListByStoreStatus(ctx, storeID, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list change requests")
	}

	out := make([]ChangeRequestDTO, 0, len(reqs))
	for i := range reqs {
		out = append(out, *FromModel(&reqs[i]))
	}
	return out, nil
}

func (s *service) Approve(ctx context.Context, actor types.Actor, requestID, storeID uuid.UUID) (*ChangeRequestDTO, error) {
	return s.resolve(ctx, actor, requestID, storeID, enums.ChangeRequestStatusApproved)
}

func (s *service) Reject(ctx context.Context, actor types.Actor, requestID, storeID uuid.UUID) (*ChangeRequestDTO, error) {
	return s.resolve(ctx, actor, requestID, storeID, enums.ChangeRequestStatusRejected)
}

func (s *service) resolve(ctx context.Context, actor types.Actor, requestID, storeID uuid.UUID, outcome enums.ChangeRequestStatus) (*ChangeRequestDTO, error) {
	if requestID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request id required")
	}
	if !permissions.For(actor.Role, true).CanApprove {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only owners resolve change requests")
	}

	var resolved *models.ChangeRequest
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		req, err := repo.FindByID(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "change request not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load change request")
		}
		if req.StoreID != storeID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "change request not found")
		}
		if req.Status.IsTerminal() {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("change request already %s", req.Status)).
				WithDetails(map[string]string{"status": string(req.Status)})
		}

		reviewedAt := s.now().UTC()
		rows, err := repo.MarkResolved(ctx, requestID, outcome, actor.Name, reviewedAt)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve change request")
		}
		if rows == 0 {
			// Another reviewer got there between our read and the update.
			return pkgerrors.New(pkgerrors.CodeConflict, "change request was resolved concurrently")
		}

		if outcome == enums.ChangeRequestStatusApproved {
			// Full-record replace: the approved status lands with position
			// cleared and the request's note carried onto the entry.
			entry := &models.ScheduleEntry{
				StoreID:      req.StoreID,
				StaffName:    req.StaffName,
				ScheduleDate: req.ScheduleDate,
				Status:       req.RequestedStatus,
				Note:         req.Note,
				Version:      1,
			}
			if err := s.schedRepo.WithTx(tx).Upsert(ctx, entry); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply approved change")
			}
		}

		req.Status = outcome
		reviewer := actor.Name
		req.ReviewedBy = &reviewer
		req.ReviewedAt = &reviewedAt
		resolved = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.workflow.IncResolved(storeID.String(), string(outcome))
	s.refreshPendingGauge(ctx, storeID)

	return FromModel(resolved), nil
}

func (s *service) refreshPendingGauge(ctx context.Context, storeID uuid.UUID) {
	if s.workflow == nil {
		return
	}
	count, err := s.repo.CountPending(ctx, storeID)
	if err != nil {
		return
	}
	s.workflow.SetPending(storeID.String(), float64(count))
}

func validateCreateInput(input CreateInput) error {
	details := map[string]string{}
	if input.StoreID == uuid.Nil {
		details["store_id"] = "is required"
	}
	if strings.TrimSpace(input.StaffName) == "" {
		details["staff_name"] = "is required"
	}
	if input.ScheduleDate.IsZero() {
		details["schedule_date"] = "is required"
	}
	if !input.RequestedStatus.IsValid() {
		details["requested_status"] = "must be work, off or half"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}
