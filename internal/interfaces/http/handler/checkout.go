package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	tradeapp "github.com/shoplite/storefront/internal/application/trade"
	"github.com/shoplite/storefront/internal/domain/trade"
	"github.com/shoplite/storefront/internal/interfaces/http/dto"
)

// CheckoutHandler places orders and shows order confirmations
type CheckoutHandler struct {
	BaseHandler
	stores   *CartStores
	checkout *tradeapp.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(stores *CartStores, checkout *tradeapp.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{stores: stores, checkout: checkout}
}

// Checkout godoc
// @ID           checkout
// @Summary      Place an order
// @Description  Submits the cart as an order. The cart is cleared once the order is accepted;
// @Description  cart_cleared is false if that clear failed.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request  body  dto.CheckoutRequest  true  "Customer details"
// @Router       /checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.checkout.PlaceOrder(c.Request.Context(), h.stores.ForRequest(c), req.Customer)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// GetOrder godoc
// @ID           getOrder
// @Summary      Get an order
// @Description  Returns the confirmation view of an order with its items
// @Tags         checkout
// @Produce      json
// @Param        id  path  int  true  "Order ID"
// @Router       /orders/{id} [get]
func (h *CheckoutHandler) GetOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.HandleError(c, trade.ErrOrderNotFound)
		return
	}

	order, err := h.checkout.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
