package enums

import "fmt"

// ChangeRequestStatus tracks the resolution state of a change request.
// Approved and rejected are terminal.
type ChangeRequestStatus string

const (
	ChangeRequestStatusPending  ChangeRequestStatus = "pending"
	ChangeRequestStatusApproved ChangeRequestStatus = "approved"
	ChangeRequestStatusRejected ChangeRequestStatus = "rejected"
)

var validChangeRequestStatuses = []ChangeRequestStatus{
	ChangeRequestStatusPending,
	ChangeRequestStatusApproved,
	ChangeRequestStatusRejected,
}

// String implements fmt.Stringer.
func (s ChangeRequestStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ChangeRequestStatus.
func (s ChangeRequestStatus) IsValid() bool {
	for _, candidate := range validChangeRequestStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status permits no further transitions.
func (s ChangeRequestStatus) IsTerminal() bool {
	return s == ChangeRequestStatusApproved || s == ChangeRequestStatusRejected
}

// ParseChangeRequestStatus converts raw input into a ChangeRequestStatus.
func ParseChangeRequestStatus(value string) (ChangeRequestStatus, error) {
	for _, candidate := range validChangeRequestStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid change request status %q", value)
}
