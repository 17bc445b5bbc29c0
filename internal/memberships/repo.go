package memberships

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/moonjaehyun/shiftroster-backend/pkg/db/models"
	"github.com/moonjaehyun/shiftroster-backend/pkg/enums"
)

// Repository exposes membership persistence operations. It is the
// identity collaborator for the roster: given a caller and a store it
// yields the caller's display name and role.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetMembership retrieves a membership by user and store.
func (r *Repository) GetMembership(ctx context.Context, userID, storeID uuid.UUID) (*models.StoreMembership, error) {
	var membership models.StoreMembership
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// UserHasRole reports whether the user holds one of the provided roles for the store.
func (r *Repository) UserHasRole(ctx context.Context, userID, storeID uuid.UUID, roles ...enums.MemberRole) (bool, error) {
	if len(roles) == 0 {
		return false, nil
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.StoreMembership{}).
		Where("user_id = ? AND store_id = ? AND role IN ? AND status = ?", userID, storeID, roles, enums.MembershipStatusActive).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ResolveActor returns the caller's display name and role for the store.
func (r *Repository) ResolveActor(ctx context.Context, userID, storeID uuid.UUID) (string, enums.MemberRole, error) {
	var row struct {
		DisplayName string
		Role        enums.MemberRole
	}
	err := r.db.WithContext(ctx).
		Model(&models.StoreMembership{}).
		Select("users.display_name, store_memberships.role").
		Joins("JOIN users ON users.id = store_memberships.user_id").
		Where("store_memberships.user_id = ? AND store_memberships.store_id = ? AND store_memberships.status = ?",
			userID, storeID, enums.MembershipStatusActive).
		Scan(&row).Error
	if err != nil {
		return "", "", err
	}
	if row.DisplayName == "" && row.Role == "" {
		return "", "", gorm.ErrRecordNotFound
	}
	return row.DisplayName, row.Role, nil
}

// ListStaffNames returns the display names of staff-role members of the
// store, the live staff set that roster rows are keyed against.
func (r *Repository) ListStaffNames(ctx context.Context, storeID uuid.UUID) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.StoreMembership{}).
		Select("users.display_name").
		Joins("JOIN users ON users.id = store_memberships.user_id").
		Where("store_memberships.store_id = ? AND store_memberships.role = ? AND store_memberships.status = ?",
			storeID, enums.MemberRoleStaff, enums.MembershipStatusActive).
		Order("users.display_name").
		Scan(&names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// ListMembers returns all memberships for the store with user metadata.
func (r *Repository) ListMembers(ctx context.Context, storeID uuid.UUID) ([]MemberDTO, error) {
	var rows []memberRow
	err := r.db.WithContext(ctx).
		Model(&models.StoreMembership{}).
		Select("store_memberships.user_id, store_memberships.role, store_memberships.status, store_memberships.created_at, users.display_name, users.email").
		Joins("JOIN users ON users.id = store_memberships.user_id").
		Where("store_memberships.store_id = ?", storeID).
		Order("store_memberships.created_at").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return membersFromRows(rows), nil
}

// CreateMembership persists a new membership record.
func (r *Repository) CreateMembership(ctx context.Context, storeID, userID uuid.UUID, role enums.MemberRole, invitedBy *uuid.UUID, status enums.MembershipStatus) (*models.StoreMembership, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid member role %q", role)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid membership status %q", status)
	}

	membership := &models.StoreMembership{
		StoreID:         storeID,
		UserID:          userID,
		Role:            role,
		Status:          status,
		InvitedByUserID: invitedBy,
	}

	if err := r.db.WithContext(ctx).Create(membership).Error; err != nil {
		return nil, err
	}
	return membership, nil
}
