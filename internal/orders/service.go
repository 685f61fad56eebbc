package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mgoulart/sellerdesk-backend/pkg/db"
	"github.com/mgoulart/sellerdesk-backend/pkg/db/models"
	pkgerrors "github.com/mgoulart/sellerdesk-backend/pkg/errors"
	"github.com/mgoulart/sellerdesk-backend/pkg/pagination"
)

// Service exposes the order ingestion and read operations used by the binding flow.
type Service interface {
	Ingest(ctx context.Context, input IngestOrderInput) (*OrderDetail, error)
	Get(ctx context.Context, orderID uuid.UUID) (*OrderDetail, error)
	List(ctx context.Context, params pagination.Params) (*OrderPage, error)
}

type service struct {
	repo Repository
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Ingest(ctx context.Context, input IngestOrderInput) (*OrderDetail, error) {
	order := &models.Order{
		ID:           uuid.New(),
		Channel:      input.Channel,
		ExternalRef:  input.ExternalRef,
		CustomerName: input.CustomerName,
	}
	for _, item := range input.Items {
		order.Items = append(order.Items, models.OrderItem{
			ID:        uuid.New(),
			Name:      item.Name,
			SKU:       item.SKU,
			Quantity:  item.Quantity,
			UnitValue: item.UnitValue,
		})
	}

	created, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "order already ingested").
				WithDetails(map[string]any{"channel": input.Channel, "external_ref": input.ExternalRef})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	detail := toOrderDetail(created)
	return &detail, nil
}

func (s *service) Get(ctx context.Context, orderID uuid.UUID) (*OrderDetail, error) {
	order, err := s.repo.FindOrderWithItems(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	detail := toOrderDetail(order)
	return &detail, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*OrderPage, error) {
	list, err := s.repo.ListOrders(ctx, params)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	page := &OrderPage{
		Orders:     make([]OrderDetail, 0, len(list.Orders)),
		NextCursor: list.NextCursor,
	}
	for i := range list.Orders {
		page.Orders = append(page.Orders, toOrderDetail(&list.Orders[i]))
	}
	return page, nil
}
