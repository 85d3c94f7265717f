package storefrontapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/shoplite/storefront/internal/domain/cart"
	"github.com/shoplite/storefront/internal/domain/integration"
	"github.com/shoplite/storefront/internal/domain/trade"
)

// orderRequest is the POST /api/order body. Items use the persisted cart
// layout: [{product_id, name, price, quantity}].
type orderRequest struct {
	Customer trade.Customer  `json:"customer"`
	Items    json.RawMessage `json:"items"`
}

type orderResponse struct {
	OrderID int64 `json:"order_id"`
}

// PlaceOrder calls POST /api/order. It is never retried: a repeated POST
// could record the order twice.
func (c *Client) PlaceOrder(ctx context.Context, customer trade.Customer, items cart.Cart) (int64, error) {
	encoded, err := cart.Encode(items)
	if err != nil {
		return 0, fmt.Errorf("storefrontapi: failed to encode cart: %w", err)
	}

	var resp orderResponse
	err = c.doJSON(ctx, http.MethodPost, "/api/order", nil,
		orderRequest{Customer: customer, Items: json.RawMessage(encoded)}, &resp)
	if errors.Is(err, integration.ErrAPIRequestFailed) {
		return 0, fmt.Errorf("%w: %w", trade.ErrOrderRejected, err)
	}
	if err != nil {
		return 0, err
	}
	if resp.OrderID <= 0 {
		return 0, fmt.Errorf("%w: missing order_id", integration.ErrAPIInvalidResponse)
	}
	return resp.OrderID, nil
}

// GetOrder calls GET /api/order/{id}
func (c *Client) GetOrder(ctx context.Context, id int64) (*trade.OrderDetail, error) {
	var detail trade.OrderDetail
	err := c.doJSON(ctx, http.MethodGet, "/api/order/"+strconv.FormatInt(id, 10), nil, nil, &detail)
	if errors.Is(err, integration.ErrAPINotFound) {
		return nil, fmt.Errorf("%w: %w", trade.ErrOrderNotFound, err)
	}
	if err != nil {
		return nil, err
	}
	if detail.Order.ID == 0 {
		return nil, fmt.Errorf("%w: order without id", integration.ErrAPIInvalidResponse)
	}
	if detail.Items == nil {
		detail.Items = []trade.OrderItem{}
	}
	return &detail, nil
}

var _ trade.OrderGateway = (*Client)(nil)
