// Package cart provides the CartStore, the single owner of a shopper's
// persisted cart.
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/shoplite/storefront/internal/domain/cart"
	"github.com/shoplite/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// storageKey is the one entry the store reads and writes in the profile's
// storage. Nothing outside this package may touch it.
const storageKey = "cart"

// Operation names reported to the metrics recorder
const (
	OpAdd         = "add"
	OpSetQuantity = "set_quantity"
	OpRemove      = "remove"
	OpClear       = "clear"
)

// MetricsRecorder receives one call per attempted cart mutation.
// lines is the cart length after the mutation, or -1 when it failed.
type MetricsRecorder interface {
	RecordCartMutation(ctx context.Context, operation string, lines int, err error)
}

type noopRecorder struct{}

func (noopRecorder) RecordCartMutation(context.Context, string, int, error) {}

// CartStore maintains one shopper's cart in a profile-scoped key-value store.
//
// Every operation is a synchronous read-modify-write. Two stores over the same
// profile do not coordinate: the last write wins.
type CartStore struct {
	kv      shared.KeyValueStore
	logger  *zap.Logger
	metrics MetricsRecorder
}

// Option configures a CartStore
type Option func(*CartStore)

// WithLogger sets the logger used for decode and storage diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(s *CartStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the mutation recorder
func WithMetrics(m MetricsRecorder) Option {
	return func(s *CartStore) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewCartStore creates a CartStore over kv, which must already be scoped to a
// single shopper profile.
func NewCartStore(kv shared.KeyValueStore, opts ...Option) *CartStore {
	s := &CartStore{
		kv:      kv,
		logger:  zap.NewNop(),
		metrics: noopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the current cart. A missing or unreadable persisted value is an
// empty cart. Load never writes; the only error it returns wraps
// cart.ErrPersistenceUnavailable.
func (s *CartStore) Load(ctx context.Context) (cart.Cart, error) {
	raw, found, err := s.kv.Get(ctx, storageKey)
	if err != nil {
		return cart.Cart{}, unavailable(err)
	}
	if !found {
		return cart.Cart{}, nil
	}
	c, err := cart.Decode(raw)
	if err != nil {
		s.logger.Warn("Discarding unreadable persisted cart", zap.Error(err), zap.Int("bytes", len(raw)))
		return cart.Cart{}, nil
	}
	return c, nil
}

// Add puts one unit of a product in the cart. A product already in the cart
// gains one unit and keeps the name and price it was first added with.
func (s *CartStore) Add(ctx context.Context, id cart.ProductID, name string, unitPrice decimal.Decimal) (cart.Cart, error) {
	return s.mutate(ctx, OpAdd, func(c *cart.Cart) error {
		return c.Add(id, name, unitPrice)
	})
}

// AddRaw is Add with the price given as user input text
func (s *CartStore) AddRaw(ctx context.Context, id cart.ProductID, name, rawPrice string) (cart.Cart, error) {
	unitPrice, err := cart.ParsePrice(rawPrice)
	if err != nil {
		s.metrics.RecordCartMutation(ctx, OpAdd, -1, err)
		return cart.Cart{}, err
	}
	return s.Add(ctx, id, name, unitPrice)
}

// SetQuantity sets the quantity of the line at index from the raw text of a
// quantity field. Unparseable, zero or negative input sets the quantity to 1.
func (s *CartStore) SetQuantity(ctx context.Context, index int, rawQuantity string) (cart.Cart, error) {
	q := cart.ParseQuantity(rawQuantity)
	return s.mutate(ctx, OpSetQuantity, func(c *cart.Cart) error {
		return c.SetQuantity(index, q)
	})
}

// SetQuantityByProduct is SetQuantity addressed by product id
func (s *CartStore) SetQuantityByProduct(ctx context.Context, id cart.ProductID, rawQuantity string) (cart.Cart, error) {
	q := cart.ParseQuantity(rawQuantity)
	return s.mutate(ctx, OpSetQuantity, func(c *cart.Cart) error {
		return c.SetQuantityByProduct(id, q)
	})
}

// Remove deletes the line at index
func (s *CartStore) Remove(ctx context.Context, index int) (cart.Cart, error) {
	return s.mutate(ctx, OpRemove, func(c *cart.Cart) error {
		return c.Remove(index)
	})
}

// RemoveByProduct deletes the line for a product
func (s *CartStore) RemoveByProduct(ctx context.Context, id cart.ProductID) (cart.Cart, error) {
	return s.mutate(ctx, OpRemove, func(c *cart.Cart) error {
		return c.RemoveByProduct(id)
	})
}

// Clear deletes the persisted cart. Afterwards Load behaves as if no cart had
// ever been stored. Clearing an absent cart is not an error.
func (s *CartStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, storageKey); err != nil {
		err = unavailable(err)
		s.metrics.RecordCartMutation(ctx, OpClear, -1, err)
		return err
	}
	s.metrics.RecordCartMutation(ctx, OpClear, 0, nil)
	return nil
}

// Total returns the total of the current cart
func (s *CartStore) Total(ctx context.Context) (decimal.Decimal, error) {
	c, err := s.Load(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return c.Total(), nil
}

func (s *CartStore) mutate(ctx context.Context, op string, fn func(*cart.Cart) error) (cart.Cart, error) {
	c, err := s.Load(ctx)
	if err != nil {
		s.metrics.RecordCartMutation(ctx, op, -1, err)
		return cart.Cart{}, err
	}
	if err := fn(&c); err != nil {
		s.metrics.RecordCartMutation(ctx, op, -1, err)
		return cart.Cart{}, err
	}
	raw, err := cart.Encode(c)
	if err != nil {
		s.metrics.RecordCartMutation(ctx, op, -1, err)
		return cart.Cart{}, err
	}
	if err := s.kv.Set(ctx, storageKey, raw); err != nil {
		err = unavailable(err)
		s.metrics.RecordCartMutation(ctx, op, -1, err)
		return cart.Cart{}, err
	}
	s.metrics.RecordCartMutation(ctx, op, c.Len(), nil)
	return c, nil
}

func unavailable(err error) error {
	if errors.Is(err, cart.ErrPersistenceUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", cart.ErrPersistenceUnavailable, err)
}
