// Package catalog describes the products the remote storefront API sells.
package catalog

import (
	"context"

	"github.com/shoplite/storefront/internal/domain/cart"
	"github.com/shoplite/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ErrProductNotFound is returned when the catalog has no product with the requested id
var ErrProductNotFound = shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")

// Product is a catalog entry as served by the storefront API
type Product struct {
	ID            cart.ProductID  `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	StockQuantity int             `json:"stock_quantity"`
	ReorderLevel  int             `json:"reorder_level"`
}

// IsLowStock reports whether stock is at or below the reorder level
func (p Product) IsLowStock() bool {
	return p.StockQuantity <= p.ReorderLevel
}

// ProductFilter narrows a product listing. Empty fields do not filter.
type ProductFilter struct {
	Search   string `json:"search,omitempty" form:"search"`
	Category string `json:"category,omitempty" form:"category"`
}

// ProductGateway reads the remote catalog
type ProductGateway interface {
	// ListProducts returns products matching filter in catalog order
	ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error)

	// GetProduct returns one product or an error wrapping ErrProductNotFound
	GetProduct(ctx context.Context, id cart.ProductID) (*Product, error)
}
