package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mgoulart/sellerdesk-backend/pkg/db/models"
	"github.com/mgoulart/sellerdesk-backend/pkg/enums"
	pkgerrors "github.com/mgoulart/sellerdesk-backend/pkg/errors"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:inventory_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.StockRecord{}, &models.StockMovement{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db), gormTxRunner{db: db}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestAdjustStockEntryCreatesRecordAndMovement(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	productID := uuid.New()
	storageID := uuid.New()

	view, err := svc.AdjustStock(context.Background(), AdjustStockInput{
		ProductID: productID,
		StorageID: storageID,
		Direction: enums.StockDirectionIn,
		Magnitude: 7,
	})
	if err != nil {
		t.Fatalf("AdjustStock: %v", err)
	}
	if view.Record.CurrentQty != 7 || view.Available != 7 {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.Status != enums.StockStatusLow {
		t.Fatalf("expected low status at 7 available, got %s", view.Status)
	}

	var movements []models.StockMovement
	if err := db.Find(&movements, "product_id = ?", productID).Error; err != nil {
		t.Fatalf("load movements: %v", err)
	}
	if len(movements) != 1 || movements[0].Type != enums.StockMovementEntry || movements[0].Quantity != 7 {
		t.Fatalf("unexpected movements: %+v", movements)
	}
	if movements[0].ID == uuid.Nil {
		t.Fatalf("expected movement id to be assigned")
	}
}

func TestAdjustStockExitBlockedByReservation(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	productID := uuid.New()
	storageID := uuid.New()

	record := models.StockRecord{ProductID: productID, StorageID: storageID, CurrentQty: 10, ReservedQty: 4}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("seed stock: %v", err)
	}

	_, err := svc.AdjustStock(context.Background(), AdjustStockInput{
		ProductID: productID,
		StorageID: storageID,
		Direction: enums.StockDirectionOut,
		Magnitude: 7,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInsufficientAvailable {
		t.Fatalf("expected insufficient available, got %v", err)
	}

	// A rejected exit leaves the record and the audit trail untouched.
	var current models.StockRecord
	if err := db.First(&current, "product_id = ?", productID).Error; err != nil {
		t.Fatalf("load stock: %v", err)
	}
	if current.CurrentQty != 10 || current.ReservedQty != 4 {
		t.Fatalf("record mutated by rejected exit: %+v", current)
	}
	var count int64
	if err := db.Model(&models.StockMovement{}).Count(&count).Error; err != nil {
		t.Fatalf("count movements: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no movements, got %d", count)
	}
}

func TestGetProductStockAggregates(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	productID := uuid.New()

	for _, record := range []models.StockRecord{
		{ProductID: productID, StorageID: uuid.New(), CurrentQty: 20, ReservedQty: 2},
		{ProductID: productID, StorageID: uuid.New(), CurrentQty: 5, ReservedQty: 5},
	} {
		if err := db.Create(&record).Error; err != nil {
			t.Fatalf("seed stock: %v", err)
		}
	}

	stock, err := svc.GetProductStock(context.Background(), productID)
	if err != nil {
		t.Fatalf("GetProductStock: %v", err)
	}
	if len(stock.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(stock.Records))
	}
	if stock.Summary.Current != 25 || stock.Summary.Reserved != 7 || stock.Summary.Available != 18 {
		t.Fatalf("unexpected summary: %+v", stock.Summary)
	}
	if stock.Status != enums.StockStatusNormal {
		t.Fatalf("unexpected status: %s", stock.Status)
	}
}

func TestReserveGuardRejectsOverdraw(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	productID := uuid.New()
	storageID := uuid.New()

	record := models.StockRecord{ProductID: productID, StorageID: storageID, CurrentQty: 3, ReservedQty: 1}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("seed stock: %v", err)
	}

	if err := repo.Reserve(ctx, productID, storageID, 2); err != nil {
		t.Fatalf("Reserve within bounds: %v", err)
	}
	if err := repo.Reserve(ctx, productID, storageID, 1); err != ErrGuardFailed {
		t.Fatalf("expected guard failure, got %v", err)
	}

	var current models.StockRecord
	if err := db.First(&current, "product_id = ?", productID).Error; err != nil {
		t.Fatalf("load stock: %v", err)
	}
	if current.ReservedQty != 3 {
		t.Fatalf("unexpected reserved: %d", current.ReservedQty)
	}
}
