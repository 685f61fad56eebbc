package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// ProductVariant holds the generated attribute tuple for a variant_item
// product. Canonical attribute types (color, size, voltage) get their own
// columns; exactly one non-canonical attribute pair is representable.
type ProductVariant struct {
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`

	Color   *string `gorm:"column:color"`
	Size    *string `gorm:"column:size"`
	Voltage *string `gorm:"column:voltage"`

	CustomName  *string `gorm:"column:custom_name"`
	CustomValue *string `gorm:"column:custom_value"`

	CostPrice decimal.Decimal `gorm:"column:cost_price;type:numeric(12,2);not null;default:0"`
	Images    pq.StringArray  `gorm:"column:images;type:text[]"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
