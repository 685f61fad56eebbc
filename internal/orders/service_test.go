package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mgoulart/sellerdesk-backend/pkg/db/models"
	pkgerrors "github.com/mgoulart/sellerdesk-backend/pkg/errors"
	"github.com/mgoulart/sellerdesk-backend/pkg/pagination"
)

type stubOrdersRepo struct {
	createOrder        func(ctx context.Context, order *models.Order) (*models.Order, error)
	findOrderWithItems func(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	listOrders         func(ctx context.Context, params pagination.Params) (*OrderList, error)
}

func (s *stubOrdersRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubOrdersRepo) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if s.createOrder != nil {
		return s.createOrder(ctx, order)
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for i := range order.Items {
		if order.Items[i].ID == uuid.Nil {
			order.Items[i].ID = uuid.New()
		}
	}
	return order, nil
}

func (s *stubOrdersRepo) FindOrderWithItems(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if s.findOrderWithItems != nil {
		return s.findOrderWithItems(ctx, orderID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrdersRepo) FindItem(ctx context.Context, itemID uuid.UUID) (*models.OrderItem, error) {
	panic("not implemented")
}

func (s *stubOrdersRepo) SetBoundProduct(ctx context.Context, itemID, productID uuid.UUID) error {
	panic("not implemented")
}

func (s *stubOrdersRepo) ListOrders(ctx context.Context, params pagination.Params) (*OrderList, error) {
	if s.listOrders != nil {
		return s.listOrders(ctx, params)
	}
	return &OrderList{}, nil
}

func TestIngestCreatesOrderWithItems(t *testing.T) {
	svc, err := NewService(&stubOrdersRepo{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	detail, err := svc.Ingest(context.Background(), IngestOrderInput{
		Channel:     "mercadolivre",
		ExternalRef: "ML-1001",
		Items: []IngestItemInput{
			{Name: "Camiseta Vermelha M", SKU: "CAM-VERM-M", Quantity: 2},
			{Name: "Caneca Azul", Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if detail.TotalItems != 2 {
		t.Fatalf("expected 2 items, got %d", detail.TotalItems)
	}
	if detail.BoundItems != 0 {
		t.Fatalf("freshly ingested order must have no bound items, got %d", detail.BoundItems)
	}
	for _, item := range detail.Items {
		if item.ID == uuid.Nil {
			t.Fatal("expected item IDs to be assigned")
		}
	}
}

func TestIngestDuplicateExternalRefReturnsConflict(t *testing.T) {
	repo := &stubOrdersRepo{
		createOrder: func(ctx context.Context, order *models.Order) (*models.Order, error) {
			return nil, errors.New("UNIQUE constraint failed: orders.channel, orders.external_ref")
		},
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.Ingest(context.Background(), IngestOrderInput{
		Channel:     "shopee",
		ExternalRef: "SH-42",
		Items:       []IngestItemInput{{Name: "Copo", Quantity: 1}},
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestGetCountsBoundItems(t *testing.T) {
	orderID := uuid.New()
	productID := uuid.New()
	repo := &stubOrdersRepo{
		findOrderWithItems: func(ctx context.Context, id uuid.UUID) (*models.Order, error) {
			return &models.Order{
				ID:          orderID,
				Channel:     "shopee",
				ExternalRef: "SH-7",
				CreatedAt:   time.Now(),
				Items: []models.OrderItem{
					{ID: uuid.New(), Name: "a", Quantity: 1, BoundProductID: &productID},
					{ID: uuid.New(), Name: "b", Quantity: 3},
				},
			}, nil
		},
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	detail, err := svc.Get(context.Background(), orderID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if detail.BoundItems != 1 || detail.TotalItems != 2 {
		t.Fatalf("expected 1/2 bound, got %d/%d", detail.BoundItems, detail.TotalItems)
	}
}

func TestGetUnknownOrderReturnsNotFound(t *testing.T) {
	svc, err := NewService(&stubOrdersRepo{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.Get(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}
