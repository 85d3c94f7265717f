package storefrontapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/shoplite/storefront/internal/domain/cart"
	"github.com/shoplite/storefront/internal/domain/catalog"
	"github.com/shoplite/storefront/internal/domain/integration"
)

// ListProducts calls GET /api/products. Empty filter fields are omitted.
func (c *Client) ListProducts(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, error) {
	query := url.Values{}
	if s := strings.TrimSpace(filter.Search); s != "" {
		query.Set("search", s)
	}
	if cat := strings.TrimSpace(filter.Category); cat != "" {
		query.Set("category", cat)
	}

	var products []catalog.Product
	if err := c.doJSON(ctx, http.MethodGet, "/api/products", query, nil, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []catalog.Product{}
	}
	return products, nil
}

// GetProduct calls GET /api/products/{id}
func (c *Client) GetProduct(ctx context.Context, id cart.ProductID) (*catalog.Product, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("%w: empty product id", catalog.ErrProductNotFound)
	}

	var product catalog.Product
	err := c.doJSON(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id.String()), nil, nil, &product)
	if errors.Is(err, integration.ErrAPINotFound) {
		return nil, fmt.Errorf("%w: %w", catalog.ErrProductNotFound, err)
	}
	if err != nil {
		return nil, err
	}
	if product.ID.IsZero() {
		return nil, fmt.Errorf("%w: product without id", integration.ErrAPIInvalidResponse)
	}
	return &product, nil
}

var _ catalog.ProductGateway = (*Client)(nil)
