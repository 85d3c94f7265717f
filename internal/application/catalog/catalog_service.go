// Package catalog serves product browsing and adding catalog products to a cart.
package catalog

import (
	"context"
	"strings"

	"github.com/shoplite/storefront/internal/domain/cart"
	"github.com/shoplite/storefront/internal/domain/catalog"
	"github.com/shoplite/storefront/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartAdder is the part of the cart store the product page uses
type CartAdder interface {
	Add(ctx context.Context, id cart.ProductID, name string, unitPrice decimal.Decimal) (cart.Cart, error)
}

// CatalogService serves product listings and the "add to cart" button
type CatalogService struct {
	products catalog.ProductGateway
	logger   *zap.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(products catalog.ProductGateway, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{products: products, logger: logger}
}

// List returns the products matching filter. Surrounding whitespace in the
// filter is ignored.
func (s *CatalogService) List(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "list")
	defer span.End()

	filter.Search = strings.TrimSpace(filter.Search)
	filter.Category = strings.TrimSpace(filter.Category)

	products, err := s.products.ListProducts(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttribute(span, "catalog.results", len(products))
	return products, nil
}

// Get returns one product
func (s *CatalogService) Get(ctx context.Context, id cart.ProductID) (*catalog.Product, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "get",
		telemetry.WithAttribute(telemetry.SpanAttrProductID, id.String()))
	defer span.End()

	p, err := s.products.GetProduct(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return p, nil
}

// AddToCart looks the product up and adds one unit to the cart with the
// catalog's current name and price.
func (s *CatalogService) AddToCart(ctx context.Context, store CartAdder, id cart.ProductID) (cart.Cart, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return cart.Cart{}, err
	}

	c, err := store.Add(ctx, p.ID, p.Name, p.Price)
	if err != nil {
		s.logger.Warn("Failed to add product to cart",
			zap.String("product_id", id.String()),
			zap.Error(err),
		)
		return cart.Cart{}, err
	}
	return c, nil
}
