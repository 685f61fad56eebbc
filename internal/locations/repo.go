package locations

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mgoulart/sellerdesk-backend/pkg/db/models"
)

// Repository defines persistence operations for storage locations.
type Repository interface {
	Create(ctx context.Context, location *models.StorageLocation) (*models.StorageLocation, error)
	FindByID(ctx context.Context, locationID uuid.UUID) (*models.StorageLocation, error)
	List(ctx context.Context) ([]models.StorageLocation, error)
	Rename(ctx context.Context, locationID uuid.UUID, name string) error
	Delete(ctx context.Context, locationID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a storage location repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, location *models.StorageLocation) (*models.StorageLocation, error) {
	if err := r.db.WithContext(ctx).Create(location).Error; err != nil {
		return nil, err
	}
	return location, nil
}

func (r *repository) FindByID(ctx context.Context, locationID uuid.UUID) (*models.StorageLocation, error) {
	var location models.StorageLocation
	if err := r.db.WithContext(ctx).First(&location, "id = ?", locationID).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *repository) List(ctx context.Context) ([]models.StorageLocation, error) {
	var locations []models.StorageLocation
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *repository) Rename(ctx context.Context, locationID uuid.UUID, name string) error {
	return r.db.WithContext(ctx).
		Model(&models.StorageLocation{}).
		Where("id = ?", locationID).
		UpdateColumn("name", name).Error
}

func (r *repository) Delete(ctx context.Context, locationID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", locationID).
		Delete(&models.StorageLocation{}).Error
}
