package models

import (
	"github.com/google/uuid"
)

// KitComponent links a kit product to one of its component products.
type KitComponent struct {
	KitID              uuid.UUID `gorm:"column:kit_id;type:uuid;primaryKey"`
	ComponentProductID uuid.UUID `gorm:"column:component_product_id;type:uuid;primaryKey"`
	Quantity           int       `gorm:"column:quantity;not null;default:1"`
}
