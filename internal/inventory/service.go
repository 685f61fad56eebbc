package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mgoulart/sellerdesk-backend/pkg/db/models"
	"github.com/mgoulart/sellerdesk-backend/pkg/enums"
	pkgerrors "github.com/mgoulart/sellerdesk-backend/pkg/errors"
	"github.com/mgoulart/sellerdesk-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes stock operations to controllers and the binding flow.
type Service interface {
	AdjustStock(ctx context.Context, input AdjustStockInput) (*StockView, error)
	GetProductStock(ctx context.Context, productID uuid.UUID) (*ProductStock, error)
	ListMovements(ctx context.Context, productID uuid.UUID) ([]models.StockMovement, error)
}

// AdjustStockInput captures one manual entry/exit against a location.
type AdjustStockInput struct {
	ProductID uuid.UUID
	StorageID uuid.UUID
	Direction enums.StockDirection
	Magnitude int
	Actor     *string
	Note      *string
}

// StockView is the post-adjustment state of the touched record.
type StockView struct {
	Record    models.StockRecord `json:"record"`
	Available int                `json:"available"`
	Status    enums.StockStatus  `json:"status"`
}

// ProductStock is the aggregate position of a product plus its rows.
type ProductStock struct {
	Records []models.StockRecord `json:"records"`
	Summary Summary              `json:"summary"`
	Status  enums.StockStatus    `json:"status"`
}

type service struct {
	repo    Repository
	tx      txRunner
	metrics *metrics.StockMetrics
}

// NewService wires the inventory service.
func NewService(repo Repository, tx txRunner, m *metrics.StockMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, metrics: m}, nil
}

func (s *service) AdjustStock(ctx context.Context, input AdjustStockInput) (*StockView, error) {
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if input.StorageID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storage id required")
	}

	var view *StockView
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if err := repo.EnsureRecord(ctx, input.ProductID, input.StorageID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "ensure stock record")
		}
		record, err := repo.FindRecord(ctx, input.ProductID, input.StorageID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock record")
		}

		// Validated in memory first for a precise error, then re-checked by
		// the guarded update at the point of write.
		next, err := Adjust(*record, input.Direction, input.Magnitude)
		if err != nil {
			return err
		}

		delta := next.CurrentQty - record.CurrentQty
		if err := repo.ApplyDelta(ctx, input.ProductID, input.StorageID, delta); err != nil {
			if err == ErrGuardFailed {
				return pkgerrors.New(pkgerrors.CodeInsufficientAvailable, "concurrent update left insufficient stock").
					WithDetails(map[string]any{"product_id": input.ProductID, "storage_id": input.StorageID})
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply stock delta")
		}

		movement := &models.StockMovement{
			ID:        uuid.New(),
			ProductID: input.ProductID,
			StorageID: input.StorageID,
			Type:      input.Direction.MovementType(),
			Quantity:  input.Magnitude,
			Actor:     input.Actor,
			Note:      input.Note,
		}
		if err := repo.CreateMovement(ctx, movement); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record stock movement")
		}

		updated, err := repo.FindRecord(ctx, input.ProductID, input.StorageID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload stock record")
		}
		view = &StockView{
			Record:    *updated,
			Available: updated.Available(),
			Status:    StatusFor(updated.CurrentQty, updated.ReservedQty),
		}
		return nil
	})
	if err != nil {
		s.metrics.IncAdjustment(input.Direction.String(), false)
		return nil, err
	}
	s.metrics.IncAdjustment(input.Direction.String(), true)
	return view, nil
}

func (s *service) GetProductStock(ctx context.Context, productID uuid.UUID) (*ProductStock, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	records, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stock records")
	}
	summary := Aggregate(records)
	return &ProductStock{
		Records: records,
		Summary: summary,
		Status:  summary.Status(),
	}, nil
}

func (s *service) ListMovements(ctx context.Context, productID uuid.UUID) ([]models.StockMovement, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	movements, err := s.repo.ListMovementsByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stock movements")
	}
	return movements, nil
}
