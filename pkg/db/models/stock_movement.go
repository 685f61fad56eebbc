package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mgoulart/sellerdesk-backend/pkg/enums"
)

// StockMovement is an append-only audit row describing one change to a
// stock record.
type StockMovement struct {
	ID        uuid.UUID               `gorm:"column:id;type:uuid;primaryKey"`
	ProductID uuid.UUID               `gorm:"column:product_id;type:uuid;not null;index"`
	StorageID uuid.UUID               `gorm:"column:storage_id;type:uuid;not null"`
	Type      enums.StockMovementType `gorm:"column:type;not null"`
	Quantity  int                     `gorm:"column:quantity;not null"`
	Actor     *string                 `gorm:"column:actor"`
	Note      *string                 `gorm:"column:note"`
	CreatedAt time.Time               `gorm:"column:created_at;autoCreateTime"`
}
