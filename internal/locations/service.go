package locations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mgoulart/sellerdesk-backend/internal/inventory"
	"github.com/mgoulart/sellerdesk-backend/pkg/db"
	"github.com/mgoulart/sellerdesk-backend/pkg/db/models"
	pkgerrors "github.com/mgoulart/sellerdesk-backend/pkg/errors"
)

// Service exposes storage location management.
type Service interface {
	Create(ctx context.Context, name string) (*models.StorageLocation, error)
	Get(ctx context.Context, locationID uuid.UUID) (*models.StorageLocation, error)
	List(ctx context.Context) ([]models.StorageLocation, error)
	Rename(ctx context.Context, locationID uuid.UUID, name string) (*models.StorageLocation, error)
	Delete(ctx context.Context, locationID uuid.UUID) error
}

type service struct {
	repo  Repository
	stock inventory.Repository
}

// NewService wires the storage location service.
func NewService(repo Repository, stock inventory.Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("locations repository required")
	}
	if stock == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{repo: repo, stock: stock}, nil
}

func (s *service) Create(ctx context.Context, name string) (*models.StorageLocation, error) {
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "location name required")
	}
	location, err := s.repo.Create(ctx, &models.StorageLocation{ID: uuid.New(), Name: name})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "location name already in use").
				WithDetails(map[string]any{"name": name})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create location")
	}
	return location, nil
}

func (s *service) Get(ctx context.Context, locationID uuid.UUID) (*models.StorageLocation, error) {
	return s.find(ctx, locationID)
}

func (s *service) List(ctx context.Context) ([]models.StorageLocation, error) {
	locations, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list locations")
	}
	return locations, nil
}

func (s *service) Rename(ctx context.Context, locationID uuid.UUID, name string) (*models.StorageLocation, error) {
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "location name required")
	}
	if _, err := s.find(ctx, locationID); err != nil {
		return nil, err
	}
	if err := s.repo.Rename(ctx, locationID, name); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "location name already in use").
				WithDetails(map[string]any{"name": name})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rename location")
	}
	return s.find(ctx, locationID)
}

// Delete removes a location. A location still holding stock records with
// any quantity is refused; the stock must be moved or drained first.
func (s *service) Delete(ctx context.Context, locationID uuid.UUID) error {
	if _, err := s.find(ctx, locationID); err != nil {
		return err
	}
	held, err := s.stock.CountByStorage(ctx, locationID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count stock at location")
	}
	if held > 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "location still holds stock").
			WithDetails(map[string]any{"location_id": locationID, "records": held})
	}
	if err := s.repo.Delete(ctx, locationID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete location")
	}
	return nil
}

func (s *service) find(ctx context.Context, locationID uuid.UUID) (*models.StorageLocation, error) {
	if locationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "location id required")
	}
	location, err := s.repo.FindByID(ctx, locationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "location not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load location")
	}
	return location, nil
}
