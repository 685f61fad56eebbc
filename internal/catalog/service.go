package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mgoulart/sellerdesk-backend/internal/inventory"
	"github.com/mgoulart/sellerdesk-backend/internal/variants"
	"github.com/mgoulart/sellerdesk-backend/pkg/db"
	"github.com/mgoulart/sellerdesk-backend/pkg/db/models"
	"github.com/mgoulart/sellerdesk-backend/pkg/enums"
	pkgerrors "github.com/mgoulart/sellerdesk-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// defaultSearchLimit bounds candidate searches when the caller does not
// pass a limit.
const defaultSearchLimit = 20

// Service exposes catalog operations to controllers and the binding flow.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductView, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductView, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductView, error)
	SearchCandidates(ctx context.Context, term string, limit int) ([]Candidate, error)
	GenerateVariants(ctx context.Context, parentID uuid.UUID, input GenerateVariantsInput) ([]ProductView, error)
}

type service struct {
	repo  Repository
	stock inventory.Repository
	tx    txRunner
}

// NewService wires the catalog service.
func NewService(repo Repository, stock inventory.Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if stock == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, stock: stock, tx: tx}, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductView, error) {
	kind, err := enums.ParseProductKind(input.Kind)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product kind").
			WithDetails(map[string]any{"kind": input.Kind})
	}
	// Variant items only come into being through generation under a parent.
	if kind == enums.ProductKindVariantItem {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant items are created by variant generation")
	}
	if kind == enums.ProductKindKit && len(input.KitComponents) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "kit requires at least one component")
	}

	product := &models.Product{
		ID:       uuid.New(),
		SKU:      input.SKU,
		Name:     input.Name,
		Kind:     kind,
		IsActive: true,
	}
	if kind == enums.ProductKindKit {
		for _, component := range input.KitComponents {
			product.KitComponents = append(product.KitComponents, models.KitComponent{
				ComponentProductID: component.ProductID,
				Quantity:           component.Quantity,
			})
		}
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "sku already in use").
				WithDetails(map[string]any{"sku": input.SKU})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	view := toProductView(created)
	return &view, nil
}

func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductView, error) {
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	view := toProductView(product)
	return &view, nil
}

func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductView, error) {
	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) > 0 {
		if _, err := s.findProduct(ctx, productID); err != nil {
			return nil, err
		}
		if err := s.repo.Update(ctx, productID, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
		}
	}
	return s.GetProduct(ctx, productID)
}

// SearchCandidates matches products for the binding picker and decorates
// each hit with its aggregate stock position.
func (s *service) SearchCandidates(ctx context.Context, term string, limit int) ([]Candidate, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	products, err := s.repo.Search(ctx, term, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search products")
	}

	candidates := make([]Candidate, 0, len(products))
	for _, product := range products {
		if !product.Kind.Stockable() {
			continue
		}
		records, err := s.stock.ListByProduct(ctx, product.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stock records")
		}
		summary := inventory.Aggregate(records)
		candidates = append(candidates, Candidate{
			ID:     product.ID,
			SKU:    product.SKU,
			Name:   product.Name,
			Kind:   product.Kind,
			Stock:  summary,
			Status: summary.Status(),
		})
	}
	return candidates, nil
}

// GenerateVariants expands the attribute selection into variant items
// under the parent, replacing any previously generated set.
func (s *service) GenerateVariants(ctx context.Context, parentID uuid.UUID, input GenerateVariantsInput) ([]ProductView, error) {
	parent, err := s.findProduct(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent.Kind != enums.ProductKindVariantParent {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "product is not a variant parent").
			WithDetails(map[string]any{"product_id": parentID, "kind": parent.Kind.String()})
	}

	generated := variants.Generate(input.Types)
	if len(generated) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no attribute options selected")
	}

	prefix := input.SKUPrefix
	if prefix == "" {
		prefix = parent.SKU
	}

	children := make([]models.Product, 0, len(generated))
	for i, g := range generated {
		children = append(children, models.Product{
			ID:       uuid.New(),
			SKU:      fmt.Sprintf("%s-%03d", prefix, i+1),
			Name:     parent.Name + " " + g.Name,
			Kind:     enums.ProductKindVariantItem,
			ParentID: &parent.ID,
			IsActive: true,
			Variant: &models.ProductVariant{
				Color:       g.Color,
				Size:        g.Size,
				Voltage:     g.Voltage,
				CustomName:  g.CustomName,
				CustomValue: g.CustomValue,
				CostPrice:   input.CostPrice,
			},
		})
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteChildren(ctx, parentID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear previous variants")
		}
		if err := repo.CreateBatch(ctx, children); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "generated sku already in use").
					WithDetails(map[string]any{"sku_prefix": prefix})
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist variants")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	persisted, err := s.repo.ListChildren(ctx, parentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list variants")
	}
	views := make([]ProductView, 0, len(persisted))
	for i := range persisted {
		views = append(views, toProductView(&persisted[i]))
	}
	return views, nil
}

func (s *service) findProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}
