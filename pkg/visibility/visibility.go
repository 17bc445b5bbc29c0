package visibility

import (
	"sort"

	"github.com/moonjaehyun/shiftroster-backend/pkg/enums"
	"github.com/moonjaehyun/shiftroster-backend/pkg/permissions"
)

// VisibleStaff derives which roster rows a caller may see. Owners and
// managers see the whole staff set; staff callers see only their own row,
// or nothing if they are not on the roster.
func VisibleStaff(role enums.MemberRole, callerName string, allStaff []string) []string {
	switch role {
	case enums.MemberRoleOwner, enums.MemberRoleManager:
		out := make([]string, len(allStaff))
		copy(out, allStaff)
		return out
	case enums.MemberRoleStaff:
		for _, name := range allStaff {
			if name == callerName {
				return []string{callerName}
			}
		}
		return []string{}
	default:
		return []string{}
	}
}

// CanClickCell reports whether a cell is interactive for the caller.
// Staff never click; managers click existing cells for direct position
// edits and any cell for the request path; owners click everything.
func CanClickCell(role enums.MemberRole, cellExists bool) bool {
	return permissions.For(role, cellExists).AnyMutation()
}

// MergeOrder merges a client-held display-order preference with the live
// staff set. Names in the preference keep their relative order; live staff
// missing from the preference are appended in lexicographic order. Names in
// the preference that are no longer on the roster are dropped. The result
// is advisory display state only.
func MergeOrder(preference []string, liveStaff []string) []string {
	live := make(map[string]bool, len(liveStaff))
	for _, name := range liveStaff {
		live[name] = true
	}

	out := make([]string, 0, len(liveStaff))
	seen := make(map[string]bool, len(liveStaff))
	for _, name := range preference {
		if live[name] && !seen[name] {
			out = append(out, name)
			seen[name] = true
		}
	}

	rest := make([]string, 0, len(liveStaff))
	for _, name := range liveStaff {
		if !seen[name] {
			rest = append(rest, name)
			seen[name] = true
		}
	}
	sort.Strings(rest)

	return append(out, rest...)
}
