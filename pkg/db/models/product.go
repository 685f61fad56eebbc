package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mgoulart/sellerdesk-backend/pkg/enums"
)

// Product is a catalog entry. Identity (id, sku, kind) is immutable once
// created; only descriptive fields may change.
type Product struct {
	ID       uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	SKU      string            `gorm:"column:sku;not null;uniqueIndex:idx_products_sku"`
	Name     string            `gorm:"column:name;not null"`
	Kind     enums.ProductKind `gorm:"column:kind;not null"`
	ParentID *uuid.UUID        `gorm:"column:parent_id;type:uuid;index"`
	IsActive bool              `gorm:"column:is_active;not null;default:true"`

	Variant       *ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	KitComponents []KitComponent  `gorm:"foreignKey:KitID;constraint:OnDelete:CASCADE"`
	Stock         []StockRecord   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
