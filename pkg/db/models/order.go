package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is a marketplace order imported for binding. The channel/reference
// pair identifies the order at its source.
type Order struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Channel      string    `gorm:"column:channel;not null;uniqueIndex:idx_orders_channel_ref"`
	ExternalRef  string    `gorm:"column:external_ref;not null;uniqueIndex:idx_orders_channel_ref"`
	CustomerName string    `gorm:"column:customer_name;not null"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
