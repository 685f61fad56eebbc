package models

import (
	"time"

	"github.com/google/uuid"
)

// StockRecord is the quantity bookkeeping row for one product at one
// storage location. Every persisted row satisfies
// current >= reserved >= 0; the conditional updates in the inventory
// repository are the only writers.
type StockRecord struct {
	ProductID    uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
	StorageID    uuid.UUID `gorm:"column:storage_id;type:uuid;primaryKey"`
	CurrentQty   int       `gorm:"column:current_qty;not null;default:0"`
	ReservedQty  int       `gorm:"column:reserved_qty;not null;default:0"`
	InTransitQty int       `gorm:"column:in_transit_qty;not null;default:0"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// Available is the only quantity that may be offered against new demand.
func (r StockRecord) Available() int {
	return r.CurrentQty - r.ReservedQty
}
