package enums

import "fmt"

// StockMovementType identifies what produced a stock movement row.
type StockMovementType string

const (
	StockMovementEntry       StockMovementType = "entry"
	StockMovementExit        StockMovementType = "exit"
	StockMovementReservation StockMovementType = "reservation"
)

var validStockMovementTypes = []StockMovementType{
	StockMovementEntry,
	StockMovementExit,
	StockMovementReservation,
}

// String implements fmt.Stringer.
func (m StockMovementType) String() string {
	return string(m)
}

// IsValid reports whether the value is a known StockMovementType.
func (m StockMovementType) IsValid() bool {
	for _, candidate := range validStockMovementTypes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseStockMovementType converts raw input into a StockMovementType.
func ParseStockMovementType(value string) (StockMovementType, error) {
	for _, candidate := range validStockMovementTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock movement type %q", value)
}
