package staffprefs

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/moonjaehyun/shiftroster-backend/pkg/enums"
	pkgerrors "github.com/moonjaehyun/shiftroster-backend/pkg/errors"
	"github.com/moonjaehyun/shiftroster-backend/pkg/types"
	"github.com/moonjaehyun/shiftroster-backend/pkg/visibility"
)

// StaffLister yields the live staff names for a store.
type StaffLister interface {
	ListStaffNames(ctx context.Context, storeID uuid.UUID) ([]string, error)
}

// StaffViewDTO is the staff column as one caller should render it.
type StaffViewDTO struct {
	Staff []string `json:"staff"`
}

// Service serves the staff column: the live staff set filtered by
// visibility and arranged by the store's saved display order. The order
// is advisory display state, never an input to roster writes.
type Service interface {
	ListStaff(ctx context.Context, actor types.Actor, storeID uuid.UUID) (*StaffViewDTO, error)
	SaveOrder(ctx context.Context, actor types.Actor, storeID uuid.UUID, names []string) (*StaffViewDTO, error)
}

type service struct {
	staff StaffLister
	order OrderStore
}

// NewService wires the staff-preferences service.
func NewService(staff StaffLister, order OrderStore) (Service, error) {
	if staff == nil {
		return nil, fmt.Errorf("staff lister required")
	}
	if order == nil {
		return nil, fmt.Errorf("order store required")
	}
	return &service{staff: staff, order: order}, nil
}

func (s *service) ListStaff(ctx context.Context, actor types.Actor, storeID uuid.UUID) (*StaffViewDTO, error) {
	if storeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id required")
	}

	live, err := s.staff.ListStaffNames(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list staff")
	}

	preference, err := s.order.GetOrder(ctx, storeID.String())
	if err != nil {
		// Order is a nicety; fall back to the live set on store trouble.
		preference = nil
	}

	ordered := visibility.MergeOrder(preference, live)
	return &StaffViewDTO{
		Staff: visibility.VisibleStaff(actor.Role, actor.Name, ordered),
	}, nil
}

func (s *service) SaveOrder(ctx context.Context, actor types.Actor, storeID uuid.UUID, names []string) (*StaffViewDTO, error) {
	if storeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id required")
	}
	if actor.Role != enums.MemberRoleOwner && actor.Role != enums.MemberRoleManager {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role cannot reorder the staff column")
	}
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "staff names must be non-empty")
		}
	}

	live, err := s.staff.ListStaffNames(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list staff")
	}

	// Persist the merged result rather than the raw submission, so
	// departed names never accumulate in the stored preference.
	merged := visibility.MergeOrder(names, live)
	if err := s.order.SetOrder(ctx, storeID.String(), merged); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save staff order")
	}

	return &StaffViewDTO{Staff: merged}, nil
}
