package models

import (
	"time"

	"github.com/google/uuid"
)

// StorageLocation is a physical or logical place stock is kept.
type StorageLocation struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null;uniqueIndex:idx_storage_locations_name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
