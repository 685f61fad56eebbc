package binding

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mgoulart/sellerdesk-backend/internal/inventory"
	"github.com/mgoulart/sellerdesk-backend/internal/orders"
	"github.com/mgoulart/sellerdesk-backend/pkg/db/models"
	"github.com/mgoulart/sellerdesk-backend/pkg/enums"
	pkgerrors "github.com/mgoulart/sellerdesk-backend/pkg/errors"
	"github.com/mgoulart/sellerdesk-backend/pkg/pagination"
)

type stubOrderRepo struct {
	order *models.Order
}

func (s *stubOrderRepo) WithTx(tx *gorm.DB) orders.Repository { return s }

func (s *stubOrderRepo) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	panic("not implemented")
}

func (s *stubOrderRepo) FindOrderWithItems(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if s.order == nil || s.order.ID != orderID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.order, nil
}

func (s *stubOrderRepo) FindItem(ctx context.Context, itemID uuid.UUID) (*models.OrderItem, error) {
	panic("not implemented")
}

func (s *stubOrderRepo) SetBoundProduct(ctx context.Context, itemID, productID uuid.UUID) error {
	return nil
}

func (s *stubOrderRepo) ListOrders(ctx context.Context, params pagination.Params) (*orders.OrderList, error) {
	panic("not implemented")
}

type stubStockRepo struct {
	inventory.Repository
	records map[uuid.UUID][]models.StockRecord
}

func (s *stubStockRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.StockRecord, error) {
	return s.records[productID], nil
}

type fakeCommitter struct {
	err     error
	batches [][]CommitItem
}

func (f *fakeCommitter) CommitBindings(ctx context.Context, orderID, storageID uuid.UUID, items []CommitItem, actor *string) error {
	f.batches = append(f.batches, items)
	return f.err
}

func newTestCoordinator(t *testing.T, order *models.Order, stock *stubStockRepo, committer Committer) Coordinator {
	t.Helper()
	c, err := NewCoordinator(NewMemorySessionStore(), &stubOrderRepo{order: order}, stock, committer, nil)
	if err != nil {
		t.Fatalf("NewCoordinator: %v", err)
	}
	return c
}

func testOrder(quantities ...int) *models.Order {
	order := &models.Order{ID: uuid.New(), Channel: "mercadolivre", ExternalRef: "ML-1"}
	for _, qty := range quantities {
		order.Items = append(order.Items, models.OrderItem{
			ID:       uuid.New(),
			OrderID:  order.ID,
			Name:     "item",
			Quantity: qty,
		})
	}
	return order
}

func stockFor(productID uuid.UUID, current, reserved int) *stubStockRepo {
	return &stubStockRepo{records: map[uuid.UUID][]models.StockRecord{
		productID: {{ProductID: productID, StorageID: uuid.New(), CurrentQty: current, ReservedQty: reserved}},
	}}
}

func TestCoordinatorBindChecksAvailability(t *testing.T) {
	t.Parallel()

	order := testOrder(5)
	product := uuid.New()
	coord := newTestCoordinator(t, order, stockFor(product, 6, 3), &fakeCommitter{})
	ctx := context.Background()

	if _, err := coord.SelectItem(ctx, order.ID, order.Items[0].ID); err != nil {
		t.Fatalf("SelectItem: %v", err)
	}

	_, err := coord.BindProduct(ctx, order.ID, order.Items[0].ID, product)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInsufficientStock {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	details, ok := typed.Details().(map[string]any)
	if !ok || details["available"] != 3 || details["required"] != 5 {
		t.Fatalf("unexpected details: %+v", typed.Details())
	}
}

func TestCoordinatorBindWithoutSelectionIsValidation(t *testing.T) {
	t.Parallel()

	// Selection state is checked before availability: binding with no
	// item selected is a validation error even when the product could
	// never cover the quantity.
	order := testOrder(5)
	product := uuid.New()
	coord := newTestCoordinator(t, order, stockFor(product, 1, 0), &fakeCommitter{})

	_, err := coord.BindProduct(context.Background(), order.ID, order.Items[0].ID, product)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCoordinatorCommitRequiresFullResolution(t *testing.T) {
	t.Parallel()

	order := testOrder(1, 2)
	product := uuid.New()
	coord := newTestCoordinator(t, order, stockFor(product, 10, 0), &fakeCommitter{})
	ctx := context.Background()

	if _, err := coord.SelectItem(ctx, order.ID, order.Items[0].ID); err != nil {
		t.Fatalf("SelectItem: %v", err)
	}
	if _, err := coord.BindProduct(ctx, order.ID, order.Items[0].ID, product); err != nil {
		t.Fatalf("BindProduct: %v", err)
	}

	_, err := coord.Commit(ctx, CommitInput{OrderID: order.ID, StorageID: uuid.New()})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for unresolved items, got %v", err)
	}
}

func TestCoordinatorCommitSuccess(t *testing.T) {
	t.Parallel()

	order := testOrder(2, 1)
	productA := uuid.New()
	productB := uuid.New()
	stock := &stubStockRepo{records: map[uuid.UUID][]models.StockRecord{
		productA: {{ProductID: productA, CurrentQty: 10}},
		productB: {{ProductID: productB, CurrentQty: 10}},
	}}
	committer := &fakeCommitter{}
	coord := newTestCoordinator(t, order, stock, committer)
	ctx := context.Background()

	for i, product := range []uuid.UUID{productA, productB} {
		if _, err := coord.SelectItem(ctx, order.ID, order.Items[i].ID); err != nil {
			t.Fatalf("SelectItem: %v", err)
		}
		if _, err := coord.BindProduct(ctx, order.ID, order.Items[i].ID, product); err != nil {
			t.Fatalf("BindProduct: %v", err)
		}
	}

	view, err := coord.Commit(ctx, CommitInput{OrderID: order.ID, StorageID: uuid.New()})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if view.State != enums.BindingStateCommitted {
		t.Fatalf("state after commit = %s", view.State)
	}
	if len(committer.batches) != 1 || len(committer.batches[0]) != 2 {
		t.Fatalf("expected one batch with two items, got %+v", committer.batches)
	}

	// A second commit on the same order is a state conflict.
	_, err = coord.Commit(ctx, CommitInput{OrderID: order.ID, StorageID: uuid.New()})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestCoordinatorCommitFailurePreservesWorkingSet(t *testing.T) {
	t.Parallel()

	order := testOrder(1)
	product := uuid.New()
	committer := &fakeCommitter{err: errors.New("connection reset")}
	coord := newTestCoordinator(t, order, stockFor(product, 10, 0), committer)
	ctx := context.Background()

	if _, err := coord.SelectItem(ctx, order.ID, order.Items[0].ID); err != nil {
		t.Fatalf("SelectItem: %v", err)
	}
	if _, err := coord.BindProduct(ctx, order.ID, order.Items[0].ID, product); err != nil {
		t.Fatalf("BindProduct: %v", err)
	}

	_, err := coord.Commit(ctx, CommitInput{OrderID: order.ID, StorageID: uuid.New()})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeCommitFailure {
		t.Fatalf("expected commit failure, got %v", err)
	}

	view, err := coord.GetSession(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if view.State != enums.BindingStateFailed {
		t.Fatalf("state after failed commit = %s", view.State)
	}
	if view.Bindings[order.Items[0].ID] != product {
		t.Fatal("working set must survive a failed commit")
	}

	// Retry goes through once the committer recovers.
	committer.err = nil
	view, err = coord.Commit(ctx, CommitInput{OrderID: order.ID, StorageID: uuid.New()})
	if err != nil {
		t.Fatalf("retry commit: %v", err)
	}
	if view.State != enums.BindingStateCommitted {
		t.Fatalf("state after retry = %s", view.State)
	}
}

func TestCoordinatorUnknownOrder(t *testing.T) {
	t.Parallel()

	coord := newTestCoordinator(t, testOrder(1), stockFor(uuid.New(), 1, 0), &fakeCommitter{})
	_, err := coord.GetSession(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
