package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is one line of a marketplace order. BoundProductID starts
// unset and is written only by a successful binding commit.
type OrderItem struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	OrderID        uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	BoundProductID *uuid.UUID      `gorm:"column:bound_product_id;type:uuid"`
	Name           string          `gorm:"column:name;not null"`
	SKU            string          `gorm:"column:sku;not null"`
	Quantity       int             `gorm:"column:quantity;not null"`
	UnitValue      decimal.Decimal `gorm:"column:unit_value;type:numeric(12,2);not null;default:0"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
