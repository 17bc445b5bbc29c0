package schedules

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/moonjaehyun/shiftroster-backend/pkg/errors"
	"github.com/moonjaehyun/shiftroster-backend/pkg/permissions"
	"github.com/moonjaehyun/shiftroster-backend/pkg/types"
)

// Service exposes roster operations. Every mutation re-derives the
// caller's capability set server-side before touching storage.
type Service interface {
	Upsert(ctx context.Context, actor types.Actor, input UpsertInput) (*ScheduleEntryDTO, error)
	Delete(ctx context.Context, actor types.Actor, entryID uuid.UUID) error
	List(ctx context.Context, actor types.Actor, storeID uuid.UUID, from, to time.Time) ([]ScheduleEntryDTO, error)
}

type service struct {
	repo Repository
}

// NewService builds a schedules service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("schedules repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Upsert(ctx context.Context, actor types.Actor, input UpsertInput) (*ScheduleEntryDTO, error) {
	if err := validateUpsertInput(input); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByCell(ctx, input.StoreID, input.StaffName, input.ScheduleDate)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load schedule entry")
	}

	caps := permissions.For(actor.Role, existing != nil)
	if existing == nil {
		if !caps.CanCreate {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role cannot create roster entries")
		}
	} else {
		if !caps.CanEditStatus && !caps.CanEditPosition {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role cannot edit roster entries")
		}
		if existing.Status != input.Status && !caps.CanEditStatus {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role cannot change shift status")
		}
		positionChanged := !positionEqual(existing.Position, input.Position)
		noteChanged := !stringPtrEqual(existing.Note, input.Note)
		if (positionChanged || noteChanged) && !caps.CanEditPosition {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role cannot change position or note")
		}
	}

	entry := newEntryFromInput(input)
	if err := s.repo.Upsert(ctx, entry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert schedule entry")
	}

	// Re-read so the returned version reflects a conflict-path overwrite.
	stored, err := s.repo.FindByCell(ctx, input.StoreID, input.StaffName, input.ScheduleDate)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload schedule entry")
	}
	return FromModel(stored), nil
}

func (s *service) Delete(ctx context.Context, actor types.Actor, entryID uuid.UUID) error {
	if entryID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "entry id required")
	}

	if !permissions.For(actor.Role, true).CanDelete {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only owners delete roster entries")
	}

	rows, err := s.repo.DeleteByID(ctx, entryID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete schedule entry")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "schedule entry not found")
	}
	return nil
}

func (s *service) List(ctx context.Context, actor types.Actor, storeID uuid.UUID, from, to time.Time) ([]ScheduleEntryDTO, error) {
	if storeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id required")
	}
	if from.IsZero() || to.IsZero() || to.Before(from) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid date range")
	}

	entries, err := s.repo.ListRange(ctx, storeID, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list schedule entries")
	}

	visible := visibleRows(actor, entries)
	out := make([]ScheduleEntryDTO, 0, len(visible))
	for i := range visible {
		out = append(out, *FromModel(&visible[i]))
	}
	return out, nil
}

func validateUpsertInput(input UpsertInput) error {
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
	if !input.Status.IsValid() {
		details["status"] = "must be work, off or half"
	}
	if input.Position != nil && !input.Position.IsValid() {
		details["position"] = "must be K, H or KH"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}
