package storefrontapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shoplite/storefront/internal/domain/catalog"
	"github.com/shoplite/storefront/internal/domain/integration"
	"github.com/shoplite/storefront/internal/domain/report"
)

func daysQuery(days int) url.Values {
	return url.Values{"days": []string{strconv.Itoa(days)}}
}

// TopProducts calls GET /api/reports/top-products?days=N
func (c *Client) TopProducts(ctx context.Context, days int) ([]report.ProductRevenue, error) {
	var rows []report.ProductRevenue
	if err := c.doJSON(ctx, http.MethodGet, "/api/reports/top-products", daysQuery(days), nil, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []report.ProductRevenue{}
	}
	return rows, nil
}

// DailySales calls GET /api/reports/daily-sales?days=N
func (c *Client) DailySales(ctx context.Context, days int) (*report.DailySales, error) {
	var sales report.DailySales
	if err := c.doJSON(ctx, http.MethodGet, "/api/reports/daily-sales", daysQuery(days), nil, &sales); err != nil {
		return nil, err
	}
	if err := sales.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrAPIInvalidResponse, err)
	}
	return &sales, nil
}

// LowStock calls GET /api/reports/low-stock
func (c *Client) LowStock(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := c.doJSON(ctx, http.MethodGet, "/api/reports/low-stock", nil, nil, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []catalog.Product{}
	}
	return products, nil
}

type messageResponse struct {
	Message string `json:"message"`
}

// RecomputeOrderTotals calls POST /api/tools/recompute-order-totals
func (c *Client) RecomputeOrderTotals(ctx context.Context) (string, error) {
	var resp messageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/tools/recompute-order-totals", nil, nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// RefreshSalesSummary calls POST /api/tools/refresh-90day-summary
func (c *Client) RefreshSalesSummary(ctx context.Context) (string, error) {
	var resp messageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/tools/refresh-90day-summary", nil, nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

var (
	_ report.ReportGateway    = (*Client)(nil)
	_ report.DataToolsGateway = (*Client)(nil)
)
