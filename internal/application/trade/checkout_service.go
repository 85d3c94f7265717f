// Package trade runs checkout: it submits the shopper's cart as an order and
// clears the cart once the order is accepted.
package trade

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shoplite/storefront/internal/domain/cart"
	"github.com/shoplite/storefront/internal/domain/trade"
	"github.com/shoplite/storefront/internal/infrastructure/logger"
	"github.com/shoplite/storefront/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// CartSession is the part of the cart store checkout needs
type CartSession interface {
	Load(ctx context.Context) (cart.Cart, error)
	Clear(ctx context.Context) error
}

// CheckoutService places orders from carts
type CheckoutService struct {
	orders   trade.OrderGateway
	validate *validator.Validate
	logger   *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(orders trade.OrderGateway, logger *zap.Logger) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		orders:   orders,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// PlaceOrder submits the cart in session as an order for customer.
//
// An empty cart or invalid customer is refused before any network call. If
// the order is not accepted the cart is left exactly as it was and nothing is
// retried. Once the order is accepted the cart is cleared; a failure to clear
// is logged and reported through CheckoutResult.CartCleared, never as an
// order failure.
func (s *CheckoutService) PlaceOrder(ctx context.Context, session CartSession, customer trade.Customer) (*CheckoutResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "checkout", "place_order")
	defer span.End()
	log := logger.WithLogger(ctx, s.logger)

	c, err := session.Load(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if c.IsEmpty() {
		return nil, trade.ErrEmptyCart
	}

	customer = normalizeCustomer(customer)
	if err := s.validate.Struct(customer); err != nil {
		return nil, invalidCustomer(err)
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrCartLines, c.Len(),
		telemetry.SpanAttrCartTotal, c.Total(),
	)

	orderID, err := s.orders.PlaceOrder(ctx, customer, c)
	if err != nil {
		telemetry.RecordError(span, err)
		log.Warn("Order submission failed, cart left unchanged",
			zap.Int("cart_lines", c.Len()),
			zap.Error(err),
		)
		return nil, err
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrOrderID, orderID)

	result := &CheckoutResult{OrderID: orderID, CartCleared: true}
	if err := session.Clear(ctx); err != nil {
		result.CartCleared = false
		log.Error("Order placed but cart could not be cleared",
			zap.Int64("order_id", orderID),
			zap.Error(err),
		)
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrCartCleared, result.CartCleared)

	log.Info("Order placed",
		zap.Int64("order_id", orderID),
		zap.Int("cart_lines", c.Len()),
		zap.String("total", c.Total().StringFixed(2)),
	)
	return result, nil
}

// GetOrder returns the confirmation view of an order
func (s *CheckoutService) GetOrder(ctx context.Context, id int64) (*OrderConfirmation, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "checkout", "get_order",
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, id))
	defer span.End()

	if id <= 0 {
		return nil, fmt.Errorf("%w: id %d", trade.ErrOrderNotFound, id)
	}
	d, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return ToOrderConfirmation(d), nil
}

func normalizeCustomer(c trade.Customer) trade.Customer {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Address = strings.TrimSpace(c.Address)
	c.City = strings.TrimSpace(c.City)
	c.State = strings.TrimSpace(c.State)
	c.Zip = strings.TrimSpace(c.Zip)
	return c
}

func invalidCustomer(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", trade.ErrInvalidCustomer, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", trade.ErrInvalidCustomer, strings.Join(fields, ", "))
}
