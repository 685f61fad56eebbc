package binding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mgoulart/sellerdesk-backend/internal/inventory"
	"github.com/mgoulart/sellerdesk-backend/internal/orders"
	"github.com/mgoulart/sellerdesk-backend/pkg/db/models"
	"github.com/mgoulart/sellerdesk-backend/pkg/enums"
	pkgerrors "github.com/mgoulart/sellerdesk-backend/pkg/errors"
	"github.com/mgoulart/sellerdesk-backend/pkg/metrics"
)

// Coordinator drives an order-binding session from first item selection
// through the atomic commit. All pre-commit checks are optimistic; only
// CommitBindings touches persistent stock.
type Coordinator interface {
	GetSession(ctx context.Context, orderID uuid.UUID) (*SessionView, error)
	SelectItem(ctx context.Context, orderID, itemID uuid.UUID) (*SessionView, error)
	BindProduct(ctx context.Context, orderID, itemID, productID uuid.UUID) (*SessionView, error)
	Unbind(ctx context.Context, orderID, itemID uuid.UUID) (*SessionView, error)
	Commit(ctx context.Context, input CommitInput) (*SessionView, error)
}

// CommitInput identifies the session to commit and the location the
// reservations land on.
type CommitInput struct {
	OrderID   uuid.UUID
	StorageID uuid.UUID
	Actor     *string
}

// SessionView is the API shape of a session plus derived progress.
type SessionView struct {
	OrderID        uuid.UUID               `json:"order_id"`
	State          enums.BindingState      `json:"state"`
	SelectedItemID *uuid.UUID              `json:"selected_item_id,omitempty"`
	Bindings       map[uuid.UUID]uuid.UUID `json:"bindings"`
	Unresolved     []uuid.UUID             `json:"unresolved_item_ids,omitempty"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

type coordinator struct {
	sessions  SessionStore
	orders    orders.Repository
	stock     inventory.Repository
	committer Committer
	metrics   *metrics.StockMetrics
}

// NewCoordinator wires the binding coordinator.
func NewCoordinator(sessions SessionStore, orderRepo orders.Repository, stock inventory.Repository, committer Committer, m *metrics.StockMetrics) (Coordinator, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	if orderRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if stock == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if committer == nil {
		return nil, fmt.Errorf("committer required")
	}
	return &coordinator{
		sessions:  sessions,
		orders:    orderRepo,
		stock:     stock,
		committer: committer,
		metrics:   m,
	}, nil
}

func (c *coordinator) GetSession(ctx context.Context, orderID uuid.UUID) (*SessionView, error) {
	order, err := c.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	session, err := c.loadOrStart(ctx, order)
	if err != nil {
		return nil, err
	}
	return c.view(session, order), nil
}

func (c *coordinator) SelectItem(ctx context.Context, orderID, itemID uuid.UUID) (*SessionView, error) {
	order, err := c.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if _, err := itemOnOrder(order, itemID); err != nil {
		return nil, err
	}
	session, err := c.loadOrStart(ctx, order)
	if err != nil {
		return nil, err
	}
	if err := session.SelectItem(itemID); err != nil {
		return nil, err
	}
	if err := c.sessions.Save(ctx, session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist binding session")
	}
	return c.view(session, order), nil
}

func (c *coordinator) BindProduct(ctx context.Context, orderID, itemID, productID uuid.UUID) (*SessionView, error) {
	order, err := c.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	item, err := itemOnOrder(order, itemID)
	if err != nil {
		return nil, err
	}
	session, err := c.loadOrStart(ctx, order)
	if err != nil {
		return nil, err
	}
	if err := session.CanBind(itemID); err != nil {
		return nil, err
	}

	// Optimistic availability check for immediate feedback. The commit
	// boundary rechecks under the database guard, so a stale read here
	// cannot oversell.
	records, err := c.stock.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stock records")
	}
	summary := inventory.Aggregate(records)
	if summary.Available < item.Quantity {
		return nil, pkgerrors.New(pkgerrors.CodeInsufficientStock, "product does not cover the order item quantity").
			WithDetails(map[string]any{
				"product_id": productID,
				"available":  summary.Available,
				"required":   item.Quantity,
			})
	}

	if err := session.Bind(itemID, productID, len(order.Items)); err != nil {
		return nil, err
	}
	if err := c.sessions.Save(ctx, session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist binding session")
	}
	return c.view(session, order), nil
}

func (c *coordinator) Unbind(ctx context.Context, orderID, itemID uuid.UUID) (*SessionView, error) {
	order, err := c.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	session, err := c.loadOrStart(ctx, order)
	if err != nil {
		return nil, err
	}
	if err := session.Unbind(itemID); err != nil {
		return nil, err
	}
	if err := c.sessions.Save(ctx, session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist binding session")
	}
	return c.view(session, order), nil
}

func (c *coordinator) Commit(ctx context.Context, input CommitInput) (*SessionView, error) {
	order, err := c.findOrder(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	session, err := c.loadOrStart(ctx, order)
	if err != nil {
		return nil, err
	}
	if session.State == enums.BindingStateCommitted {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "binding session already committed").
			WithDetails(map[string]any{"order_id": input.OrderID})
	}

	if unresolved := session.Unresolved(itemIDs(order)); len(unresolved) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order items remain unbound").
			WithDetails(map[string]any{"unresolved_item_ids": unresolved})
	}

	batch := make([]CommitItem, 0, len(order.Items))
	for _, item := range order.Items {
		batch = append(batch, CommitItem{
			OrderItemID: item.ID,
			ProductID:   session.Bindings[item.ID],
			Quantity:    item.Quantity,
		})
	}

	start := time.Now()
	commitErr := c.committer.CommitBindings(ctx, input.OrderID, input.StorageID, batch, input.Actor)
	c.metrics.ObserveCommit(commitErr == nil, time.Since(start))

	if commitErr != nil {
		// The working set survives a failed commit so the user can
		// rebind the rejected items and retry.
		session.MarkFailed()
		if saveErr := c.sessions.Save(ctx, session); saveErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, saveErr, "persist binding session")
		}
		if typed := pkgerrors.As(commitErr); typed != nil {
			return nil, commitErr
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeCommitFailure, commitErr, "commit boundary unreachable")
	}

	session.MarkCommitted()
	if err := c.sessions.Save(ctx, session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist binding session")
	}
	return c.view(session, order), nil
}

func (c *coordinator) findOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := c.orders.FindOrderWithItems(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (c *coordinator) loadOrStart(ctx context.Context, order *models.Order) (*Session, error) {
	session, err := c.sessions.Load(ctx, order.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist binding session")
	}
	if session == nil {
		session = NewSession(order.ID)
	}
	return session, nil
}

func (c *coordinator) view(session *Session, order *models.Order) *SessionView {
	return &SessionView{
		OrderID:        session.OrderID,
		State:          session.State,
		SelectedItemID: session.SelectedItemID,
		Bindings:       session.Bindings,
		Unresolved:     session.Unresolved(itemIDs(order)),
		UpdatedAt:      session.UpdatedAt,
	}
}

func itemOnOrder(order *models.Order, itemID uuid.UUID) (*models.OrderItem, error) {
	for i := range order.Items {
		if order.Items[i].ID == itemID {
			return &order.Items[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order item does not belong to the order").
		WithDetails(map[string]any{"order_id": order.ID, "item_id": itemID})
}

func itemIDs(order *models.Order) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, item.ID)
	}
	return ids
}
