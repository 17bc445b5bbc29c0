package permissions

import "github.com/moonjaehyun/shiftroster-backend/pkg/enums"

// Capabilities is the set of mutating actions a role may perform on a
// roster cell. Derived purely from the role and whether the cell already
// holds an entry; callers must re-evaluate it server-side before any write.
type Capabilities struct {
	CanCreate       bool
	CanEditStatus   bool
	CanEditPosition bool
	CanDelete       bool
	CanRequest      bool
	CanApprove      bool
}

// For maps {role, cellExists} to the allowed capability set.
//
// Owners edit everything directly and resolve requests. Managers may only
// touch position/note on cells that already exist, but may always file a
// status change request. Staff are read-only.
func For(role enums.MemberRole, cellExists bool) Capabilities {
	switch role {
	case enums.MemberRoleOwner:
		return Capabilities{
			CanCreate:       true,
			CanEditStatus:   true,
			CanEditPosition: true,
			CanDelete:       true,
			CanRequest:      false,
			CanApprove:      true,
		}
	case enums.MemberRoleManager:
		return Capabilities{
			CanEditPosition: cellExists,
			CanRequest:      true,
		}
	default:
		return Capabilities{}
	}
}

// AnyMutation reports whether the set allows any direct or request-path
// mutation of a cell.
func (c Capabilities) AnyMutation() bool {
	return c.CanCreate || c.CanEditStatus || c.CanEditPosition || c.CanRequest
}
