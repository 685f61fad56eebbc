package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mgoulart/sellerdesk-backend/pkg/db/models"
)

// ErrGuardFailed is returned when a conditional stock update matches no
// row, meaning the write would have violated the stock invariant.
var ErrGuardFailed = errors.New("stock invariant guard rejected update")

// Repository defines persistence operations on stock records and
// movements. The conditional updates re-check the invariant inside the
// database so concurrent writers cannot jointly break it.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.StockRecord, error)
	FindRecord(ctx context.Context, productID, storageID uuid.UUID) (*models.StockRecord, error)
	EnsureRecord(ctx context.Context, productID, storageID uuid.UUID) error
	ApplyDelta(ctx context.Context, productID, storageID uuid.UUID, delta int) error
	Reserve(ctx context.Context, productID, storageID uuid.UUID, qty int) error
	CreateMovement(ctx context.Context, movement *models.StockMovement) error
	ListMovementsByProduct(ctx context.Context, productID uuid.UUID) ([]models.StockMovement, error)
	CountByStorage(ctx context.Context, storageID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a stock repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.StockRecord, error) {
	var records []models.StockRecord
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("storage_id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) FindRecord(ctx context.Context, productID, storageID uuid.UUID) (*models.StockRecord, error) {
	var record models.StockRecord
	if err := r.db.WithContext(ctx).
		First(&record, "product_id = ? AND storage_id = ?", productID, storageID).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// EnsureRecord creates the zeroed (product, location) row if it does not
// exist yet. Rows come into being the first time a product touches a
// location and persist afterwards.
func (r *repository) EnsureRecord(ctx context.Context, productID, storageID uuid.UUID) error {
	record := models.StockRecord{ProductID: productID, StorageID: storageID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&record).Error
}

// ApplyDelta shifts current_qty by delta under the invariant guard
// (current stays >= reserved and >= 0) in one statement.
func (r *repository) ApplyDelta(ctx context.Context, productID, storageID uuid.UUID, delta int) error {
	result := r.db.WithContext(ctx).
		Model(&models.StockRecord{}).
		Where("product_id = ? AND storage_id = ?", productID, storageID).
		Where("current_qty + ? >= reserved_qty AND current_qty + ? >= 0", delta, delta).
		UpdateColumn("current_qty", gorm.Expr("current_qty + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGuardFailed
	}
	return nil
}

// Reserve claims qty units of available stock in one guarded statement.
func (r *repository) Reserve(ctx context.Context, productID, storageID uuid.UUID, qty int) error {
	result := r.db.WithContext(ctx).
		Model(&models.StockRecord{}).
		Where("product_id = ? AND storage_id = ?", productID, storageID).
		Where("current_qty - reserved_qty >= ?", qty).
		UpdateColumn("reserved_qty", gorm.Expr("reserved_qty + ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGuardFailed
	}
	return nil
}

func (r *repository) CreateMovement(ctx context.Context, movement *models.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

func (r *repository) ListMovementsByProduct(ctx context.Context, productID uuid.UUID) ([]models.StockMovement, error) {
	var movements []models.StockMovement
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

func (r *repository) CountByStorage(ctx context.Context, storageID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.StockRecord{}).
		Where("storage_id = ? AND (current_qty > 0 OR reserved_qty > 0)", storageID).
		Count(&count).Error
	return count, err
}
