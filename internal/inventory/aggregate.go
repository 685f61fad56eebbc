package inventory

import (
	"github.com/mgoulart/sellerdesk-backend/pkg/db/models"
	"github.com/mgoulart/sellerdesk-backend/pkg/enums"
)

// lowStockThreshold is the available quantity at or below which a product
// is flagged low. Status derivation lives here and nowhere else.
const lowStockThreshold = 10

// Summary is the aggregate stock position of one product across all of
// its storage locations.
type Summary struct {
	Current   int `json:"current"`
	Reserved  int `json:"reserved"`
	Available int `json:"available"`
}

// Aggregate reduces the stock records of one product into totals.
// Available is computed from the aggregate, never trusted per-row.
// An empty input yields a zero summary.
func Aggregate(records []models.StockRecord) Summary {
	var s Summary
	for _, record := range records {
		s.Current += record.CurrentQty
		s.Reserved += record.ReservedQty
	}
	s.Available = s.Current - s.Reserved
	return s
}

// Status classifies the summary for alerting.
func (s Summary) Status() enums.StockStatus {
	return StatusFor(s.Current, s.Reserved)
}

// StatusFor derives the stock health status from current and reserved
// quantities. Every display or gating decision on stock health goes
// through this function.
func StatusFor(current, reserved int) enums.StockStatus {
	available := current - reserved
	switch {
	case available <= 0:
		return enums.StockStatusCritical
	case available <= lowStockThreshold:
		return enums.StockStatusLow
	default:
		return enums.StockStatusNormal
	}
}
