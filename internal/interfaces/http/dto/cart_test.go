package dto

import (
	"encoding/json"
	"testing"

	"github.com/shoplite/storefront/internal/domain/cart"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCartResponse(t *testing.T) {
	c, err := cart.New(
		cart.Line{ProductID: cart.NumericProductID(1), Name: "Widget", UnitPrice: decimal.RequireFromString("9.99"), Quantity: 2},
		cart.Line{ProductID: cart.StringProductID("gadget"), Name: "Gadget", UnitPrice: decimal.RequireFromString("14.99"), Quantity: 1},
	)
	require.NoError(t, err)

	resp := NewCartResponse(c)

	require.Len(t, resp.Lines, 2)
	assert.Equal(t, 0, resp.Lines[0].Index)
	assert.Equal(t, "19.98", resp.Lines[0].Subtotal.StringFixed(2))
	assert.Equal(t, 1, resp.Lines[1].Index)
	assert.Equal(t, 3, resp.ItemCount)
	assert.Equal(t, "34.97", resp.Total.StringFixed(2))
}

func TestNewCartResponse_EmptyCartHasEmptyLines(t *testing.T) {
	body, err := json.Marshal(NewCartResponse(cart.Cart{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"lines":[],"item_count":0,"total":"0"}`, string(body))
}

func TestRawText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"number", `{"quantity": 3}`, "3"},
		{"string", `{"quantity": "4"}`, "4"},
		{"decimal number", `{"quantity": 2.5}`, "2.5"},
		{"null", `{"quantity": null}`, "null"},
		{"missing", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req SetQuantityRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, req.RawQuantity())
		})
	}
}

func TestAddCartItemRequest_RawPrice(t *testing.T) {
	var req AddCartItemRequest
	require.NoError(t, json.Unmarshal([]byte(`{"product_id": 5, "name": "Widget", "price": "9.99"}`), &req))

	assert.Equal(t, cart.NumericProductID(5), req.ProductID)
	assert.Equal(t, "9.99", req.RawPrice())
}
