package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mgoulart/sellerdesk-backend/internal/inventory"
	"github.com/mgoulart/sellerdesk-backend/internal/variants"
	"github.com/mgoulart/sellerdesk-backend/pkg/db/models"
	"github.com/mgoulart/sellerdesk-backend/pkg/enums"
)

// CreateProductInput carries a new catalog entry. Kind and SKU are
// immutable after creation.
type CreateProductInput struct {
	SKU  string `json:"sku" validate:"required"`
	Name string `json:"name" validate:"required"`
	Kind string `json:"kind" validate:"required"`

	// KitComponents is required when kind is kit and ignored otherwise.
	KitComponents []KitComponentInput `json:"kit_components,omitempty" validate:"dive"`
}

// KitComponentInput is one component line of a kit product.
type KitComponentInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// UpdateProductInput carries the mutable descriptive fields.
type UpdateProductInput struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// GenerateVariantsInput selects the attribute axes to expand under a
// variant parent. SKUPrefix seeds the generated item SKUs.
type GenerateVariantsInput struct {
	Types     []variants.AttributeType `json:"types" validate:"required,min=1,dive"`
	SKUPrefix string                   `json:"sku_prefix"`
	CostPrice decimal.Decimal          `json:"cost_price"`
}

// ProductView is the API shape of a catalog entry.
type ProductView struct {
	ID       uuid.UUID         `json:"id"`
	SKU      string            `json:"sku"`
	Name     string            `json:"name"`
	Kind     enums.ProductKind `json:"kind"`
	ParentID *uuid.UUID        `json:"parent_id,omitempty"`
	IsActive bool              `json:"is_active"`

	Variant       *VariantView       `json:"variant,omitempty"`
	KitComponents []KitComponentView `json:"kit_components,omitempty"`
}

// VariantView exposes the attribute tuple of a variant item.
type VariantView struct {
	Color       *string         `json:"color,omitempty"`
	Size        *string         `json:"size,omitempty"`
	Voltage     *string         `json:"voltage,omitempty"`
	CustomName  *string         `json:"custom_name,omitempty"`
	CustomValue *string         `json:"custom_value,omitempty"`
	CostPrice   decimal.Decimal `json:"cost_price"`
}

// KitComponentView is one component line of a kit.
type KitComponentView struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// Candidate is a search hit for the binding screen: identity plus the
// aggregate stock position the picker gates on.
type Candidate struct {
	ID     uuid.UUID         `json:"id"`
	SKU    string            `json:"sku"`
	Name   string            `json:"name"`
	Kind   enums.ProductKind `json:"kind"`
	Stock  inventory.Summary `json:"stock"`
	Status enums.StockStatus `json:"status"`
}

func toProductView(product *models.Product) ProductView {
	view := ProductView{
		ID:       product.ID,
		SKU:      product.SKU,
		Name:     product.Name,
		Kind:     product.Kind,
		ParentID: product.ParentID,
		IsActive: product.IsActive,
	}
	if product.Variant != nil {
		view.Variant = &VariantView{
			Color:       product.Variant.Color,
			Size:        product.Variant.Size,
			Voltage:     product.Variant.Voltage,
			CustomName:  product.Variant.CustomName,
			CustomValue: product.Variant.CustomValue,
			CostPrice:   product.Variant.CostPrice,
		}
	}
	for _, component := range product.KitComponents {
		view.KitComponents = append(view.KitComponents, KitComponentView{
			ProductID: component.ComponentProductID,
			Quantity:  component.Quantity,
		})
	}
	return view
}
