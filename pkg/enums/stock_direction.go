package enums

import "fmt"

// StockDirection is the sign of a manual stock adjustment.
type StockDirection string

const (
	StockDirectionIn  StockDirection = "in"
	StockDirectionOut StockDirection = "out"
)

var validStockDirections = []StockDirection{
	StockDirectionIn,
	StockDirectionOut,
}

// String implements fmt.Stringer.
func (d StockDirection) String() string {
	return string(d)
}

// IsValid reports whether the value is a known StockDirection.
func (d StockDirection) IsValid() bool {
	for _, candidate := range validStockDirections {
		if candidate == d {
			return true
		}
	}
	return false
}

// MovementType maps the direction to the movement row it produces.
func (d StockDirection) MovementType() StockMovementType {
	if d == StockDirectionIn {
		return StockMovementEntry
	}
	return StockMovementExit
}

// ParseStockDirection converts raw input into a StockDirection.
func ParseStockDirection(value string) (StockDirection, error) {
	for _, candidate := range validStockDirections {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock direction %q", value)
}
