package binding

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/mgoulart/sellerdesk-backend/internal/inventory"
	"github.com/mgoulart/sellerdesk-backend/internal/orders"
	"github.com/mgoulart/sellerdesk-backend/pkg/db/models"
	"github.com/mgoulart/sellerdesk-backend/pkg/enums"
	pkgerrors "github.com/mgoulart/sellerdesk-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CommitItem is one resolved (order item -> product) pair in a commit batch.
type CommitItem struct {
	OrderItemID uuid.UUID
	ProductID   uuid.UUID
	Quantity    int
}

// CommitFailure describes one product the stock recheck rejected.
type CommitFailure struct {
	ProductID uuid.UUID `json:"product_id"`
	Requested int       `json:"requested"`
	Available int       `json:"available"`
}

// Committer is the single write path a session commit goes through. The
// whole batch lands in one transaction: either every reservation and
// every bound-product write applies, or none do.
type Committer interface {
	CommitBindings(ctx context.Context, orderID, storageID uuid.UUID, items []CommitItem, actor *string) error
}

type committer struct {
	tx     txRunner
	stock  inventory.Repository
	orders orders.Repository
}

// NewCommitter wires the commit boundary with its repositories.
func NewCommitter(tx txRunner, stock inventory.Repository, orderRepo orders.Repository) (Committer, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if stock == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if orderRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &committer{tx: tx, stock: stock, orders: orderRepo}, nil
}

func (c *committer) CommitBindings(ctx context.Context, orderID, storageID uuid.UUID, items []CommitItem, actor *string) error {
	if len(items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "commit batch is empty").
			WithDetails(map[string]any{"order_id": orderID})
	}

	// A product bound to several items reserves the summed quantity once.
	totals := map[uuid.UUID]int{}
	for _, item := range items {
		totals[item.ProductID] += item.Quantity
	}
	productIDs := make([]uuid.UUID, 0, len(totals))
	for id := range totals {
		productIDs = append(productIDs, id)
	}
	// Stable lock order across concurrent commits.
	sort.Slice(productIDs, func(i, j int) bool {
		return productIDs[i].String() < productIDs[j].String()
	})

	return c.tx.WithTx(ctx, func(tx *gorm.DB) error {
		stock := c.stock.WithTx(tx)
		orderRepo := c.orders.WithTx(tx)

		var failures []CommitFailure
		var reserveErr error
		for _, productID := range productIDs {
			qty := totals[productID]
			if err := stock.EnsureRecord(ctx, productID, storageID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "ensure stock record")
			}
			// The whole batch reserves against one storage location, so
			// the row-level guard is the availability check. Splitting a
			// reservation across locations would need an aggregate guard.
			err := stock.Reserve(ctx, productID, storageID, qty)
			if err == nil {
				continue
			}
			if !errors.Is(err, inventory.ErrGuardFailed) {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reserve stock")
			}
			available := 0
			if record, findErr := stock.FindRecord(ctx, productID, storageID); findErr == nil {
				available = record.Available()
			}
			failures = append(failures, CommitFailure{ProductID: productID, Requested: qty, Available: available})
			reserveErr = multierr.Append(reserveErr,
				fmt.Errorf("product %s: requested %d, available %d", productID, qty, available))
		}
		if len(failures) > 0 {
			return pkgerrors.Wrap(pkgerrors.CodeCommitFailure, reserveErr, "stock recheck rejected the batch").
				WithDetails(map[string]any{"order_id": orderID, "failures": failures})
		}

		for _, item := range items {
			if err := orderRepo.SetBoundProduct(ctx, item.OrderItemID, item.ProductID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "bind order item")
			}
		}
		for _, productID := range productIDs {
			movement := &models.StockMovement{
				ID:        uuid.New(),
				ProductID: productID,
				StorageID: storageID,
				Type:      enums.StockMovementReservation,
				Quantity:  totals[productID],
				Actor:     actor,
			}
			if err := stock.CreateMovement(ctx, movement); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record reservation movement")
			}
		}
		return nil
	})
}
