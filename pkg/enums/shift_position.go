package enums

import "fmt"

// ShiftPosition is the in-shift role assignment. Entries without an
// assignment carry a NULL position rather than a sentinel value.
type ShiftPosition string

const (
	ShiftPositionKitchen     ShiftPosition = "K"
	ShiftPositionHall        ShiftPosition = "H"
	ShiftPositionKitchenHall ShiftPosition = "KH"
)

var validShiftPositions = []ShiftPosition{
	ShiftPositionKitchen,
	ShiftPositionHall,
	ShiftPositionKitchenHall,
}

// String implements fmt.Stringer.
func (p ShiftPosition) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ShiftPosition.
func (p ShiftPosition) IsValid() bool {
	for _, candidate := range validShiftPositions {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseShiftPosition converts raw input into a ShiftPosition.
func ParseShiftPosition(value string) (ShiftPosition, error) {
	for _, candidate := range validShiftPositions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shift position %q", value)
}
