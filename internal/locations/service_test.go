package locations

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mgoulart/sellerdesk-backend/internal/inventory"
	"github.com/mgoulart/sellerdesk-backend/pkg/db/models"
	pkgerrors "github.com/mgoulart/sellerdesk-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:locations_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.StorageLocation{}, &models.StockRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db), inventory.NewRepository(db))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestCreateAndRenameLocation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newTestDB(t))
	ctx := context.Background()

	location, err := svc.Create(ctx, "Prateleira A")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	renamed, err := svc.Rename(ctx, location.ID, "Prateleira B")
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if renamed.Name != "Prateleira B" {
		t.Fatalf("unexpected name %q", renamed.Name)
	}
}

func TestCreateLocationDuplicateName(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newTestDB(t))
	ctx := context.Background()

	if _, err := svc.Create(ctx, "Galpao"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := svc.Create(ctx, "Galpao")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestDeleteLocationWithStockRefused(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	location, err := svc.Create(ctx, "Galpao")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	record := models.StockRecord{ProductID: uuid.New(), StorageID: location.ID, CurrentQty: 3}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("seed stock: %v", err)
	}

	err = svc.Delete(ctx, location.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}

	// Draining the stock unblocks the delete; a zeroed record does not
	// count as held stock.
	if err := db.Model(&models.StockRecord{}).Where("storage_id = ?", location.ID).
		UpdateColumn("current_qty", 0).Error; err != nil {
		t.Fatalf("drain stock: %v", err)
	}
	if err := svc.Delete(ctx, location.ID); err != nil {
		t.Fatalf("Delete after drain: %v", err)
	}

	if _, err := svc.Get(ctx, location.ID); pkgerrors.As(err) == nil {
		t.Fatal("expected location gone")
	}
}
