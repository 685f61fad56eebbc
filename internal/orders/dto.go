package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mgoulart/sellerdesk-backend/pkg/db/models"
)

// IngestOrderInput carries an order pulled from a sales channel.
type IngestOrderInput struct {
	Channel      string            `json:"channel" validate:"required"`
	ExternalRef  string            `json:"external_ref" validate:"required"`
	CustomerName string            `json:"customer_name"`
	Items        []IngestItemInput `json:"items" validate:"required,min=1,dive"`
}

// IngestItemInput is one line of an ingested order. Name and SKU are the
// channel's own description of the listing, not catalog identifiers.
type IngestItemInput struct {
	Name      string          `json:"name" validate:"required"`
	SKU       string          `json:"sku"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitValue decimal.Decimal `json:"unit_value"`
}

// OrderItemView is the API shape for a single order line.
type OrderItemView struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	SKU            string          `json:"sku"`
	Quantity       int             `json:"quantity"`
	UnitValue      decimal.Decimal `json:"unit_value"`
	BoundProductID *uuid.UUID      `json:"bound_product_id,omitempty"`
}

// OrderDetail is the API shape for an order plus its binding progress.
type OrderDetail struct {
	ID           uuid.UUID       `json:"id"`
	Channel      string          `json:"channel"`
	ExternalRef  string          `json:"external_ref"`
	CustomerName string          `json:"customer_name,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	Items        []OrderItemView `json:"items"`
	BoundItems   int             `json:"bound_items"`
	TotalItems   int             `json:"total_items"`
}

func toOrderDetail(order *models.Order) OrderDetail {
	detail := OrderDetail{
		ID:           order.ID,
		Channel:      order.Channel,
		ExternalRef:  order.ExternalRef,
		CustomerName: order.CustomerName,
		CreatedAt:    order.CreatedAt,
		Items:        make([]OrderItemView, 0, len(order.Items)),
		TotalItems:   len(order.Items),
	}
	for _, item := range order.Items {
		if item.BoundProductID != nil {
			detail.BoundItems++
		}
		detail.Items = append(detail.Items, OrderItemView{
			ID:             item.ID,
			Name:           item.Name,
			SKU:            item.SKU,
			Quantity:       item.Quantity,
			UnitValue:      item.UnitValue,
			BoundProductID: item.BoundProductID,
		})
	}
	return detail
}

// OrderPage is one page of order summaries for listings.
type OrderPage struct {
	Orders     []OrderDetail `json:"orders"`
	NextCursor string        `json:"next_cursor,omitempty"`
}
