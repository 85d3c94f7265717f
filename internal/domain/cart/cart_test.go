package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestCart(t *testing.T) Cart {
	t.Helper()
	var c Cart
	require.NoError(t, c.Add(NumericProductID(1), "Widget", price("9.99")))
	require.NoError(t, c.Add(NumericProductID(2), "Gadget", price("5.00")))
	return c
}

func TestCart_ZeroValueIsEmpty(t *testing.T) {
	var c Cart
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.Len())
	assert.True(t, c.Total().IsZero())
	assert.Empty(t, c.Lines())
}

func TestCart_Add(t *testing.T) {
	t.Run("appends new product with quantity 1", func(t *testing.T) {
		var c Cart
		require.NoError(t, c.Add(NumericProductID(1), "Widget", price("9.99")))

		require.Equal(t, 1, c.Len())
		l, err := c.Line(0)
		require.NoError(t, err)
		assert.Equal(t, NumericProductID(1), l.ProductID)
		assert.Equal(t, "Widget", l.Name)
		assert.True(t, price("9.99").Equal(l.UnitPrice))
		assert.Equal(t, 1, l.Quantity)
	})

	t.Run("existing product increments and keeps captured name and price", func(t *testing.T) {
		c := newTestCart(t)
		require.NoError(t, c.Add(NumericProductID(1), "Renamed", price("1.00")))

		require.Equal(t, 2, c.Len())
		l, _ := c.Line(0)
		assert.Equal(t, 2, l.Quantity)
		assert.Equal(t, "Widget", l.Name)
		assert.True(t, price("9.99").Equal(l.UnitPrice))
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		c := newTestCart(t)
		require.NoError(t, c.Add(StringProductID("sku-9"), "Thing", price("2")))
		require.NoError(t, c.Add(NumericProductID(1), "Widget", price("9.99")))

		lines := c.Lines()
		require.Len(t, lines, 3)
		assert.Equal(t, "1", lines[0].ProductID.String())
		assert.Equal(t, "2", lines[1].ProductID.String())
		assert.Equal(t, "sku-9", lines[2].ProductID.String())
	})

	t.Run("numeric and string ids are distinct products", func(t *testing.T) {
		var c Cart
		require.NoError(t, c.Add(NumericProductID(7), "A", price("1")))
		require.NoError(t, c.Add(StringProductID("7"), "A", price("1")))
		assert.Equal(t, 2, c.Len())
	})

	t.Run("zero price is allowed", func(t *testing.T) {
		var c Cart
		require.NoError(t, c.Add(NumericProductID(1), "Freebie", decimal.Zero))
		assert.True(t, c.Total().IsZero())
	})

	t.Run("negative price is rejected and cart unchanged", func(t *testing.T) {
		c := newTestCart(t)
		err := c.Add(NumericProductID(3), "Bad", price("-1"))
		assert.ErrorIs(t, err, ErrInvalidPrice)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("invalid price is rejected for a product already in the cart", func(t *testing.T) {
		c := newTestCart(t)
		err := c.Add(NumericProductID(1), "Widget", price("-1"))
		assert.ErrorIs(t, err, ErrInvalidPrice)
		l, _ := c.Line(0)
		assert.Equal(t, 1, l.Quantity)
	})

	t.Run("out of bounds price is rejected", func(t *testing.T) {
		var c Cart
		err := c.Add(NumericProductID(1), "Widget", decimal.New(1, -20000000))
		assert.ErrorIs(t, err, ErrInvalidPrice)
		assert.True(t, c.IsEmpty())
	})

	t.Run("empty product id is rejected", func(t *testing.T) {
		var c Cart
		assert.ErrorIs(t, c.Add(ProductID{}, "x", price("1")), ErrInvalidProductID)
		assert.True(t, c.IsEmpty())
	})
}

func TestCart_SetQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		want     int
	}{
		{"positive", 3, 3},
		{"one", 1, 1},
		{"zero clamps to one", 0, 1},
		{"negative clamps to one", -4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCart(t)
			require.NoError(t, c.SetQuantity(1, tt.quantity))
			l, _ := c.Line(1)
			assert.Equal(t, tt.want, l.Quantity)
			first, _ := c.Line(0)
			assert.Equal(t, 1, first.Quantity)
		})
	}

	t.Run("out of range index", func(t *testing.T) {
		c := newTestCart(t)
		for _, idx := range []int{-1, 2, 10} {
			err := c.SetQuantity(idx, 5)
			assert.ErrorIs(t, err, ErrIndexOutOfRange)
		}
		assert.Equal(t, 2, c.ItemCount())
	})
}

func TestCart_SetQuantityByProduct(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.SetQuantityByProduct(NumericProductID(2), 4))
	l, _ := c.Line(1)
	assert.Equal(t, 4, l.Quantity)

	err := c.SetQuantityByProduct(NumericProductID(99), 4)
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestCart_Remove(t *testing.T) {
	t.Run("removes and shifts later lines", func(t *testing.T) {
		c := newTestCart(t)
		require.NoError(t, c.Add(NumericProductID(3), "Doohickey", price("1.50")))
		require.NoError(t, c.Remove(0))

		lines := c.Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, "2", lines[0].ProductID.String())
		assert.Equal(t, "3", lines[1].ProductID.String())
	})

	t.Run("out of range leaves cart intact", func(t *testing.T) {
		c := newTestCart(t)
		assert.ErrorIs(t, c.Remove(2), ErrIndexOutOfRange)
		assert.ErrorIs(t, c.Remove(-1), ErrIndexOutOfRange)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("removing does not alias earlier snapshots", func(t *testing.T) {
		c := newTestCart(t)
		snapshot := c
		require.NoError(t, c.Remove(0))
		assert.Equal(t, 2, snapshot.Len())
		first, _ := snapshot.Line(0)
		assert.Equal(t, "1", first.ProductID.String())
	})

	t.Run("by product", func(t *testing.T) {
		c := newTestCart(t)
		require.NoError(t, c.RemoveByProduct(NumericProductID(1)))
		assert.Equal(t, 1, c.Len())
		assert.ErrorIs(t, c.RemoveByProduct(NumericProductID(1)), ErrLineNotFound)
	})
}

func TestCart_Total(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.Add(NumericProductID(1), "Widget", price("9.99")))
	assert.Equal(t, "24.98", c.Total().StringFixed(2))

	require.NoError(t, c.SetQuantity(0, 3))
	assert.Equal(t, "34.97", Total(c).StringFixed(2))
	assert.Equal(t, 4, c.ItemCount())
}

func TestCart_TotalIsExactDecimal(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add(NumericProductID(1), "Dime", price("0.10")))
	require.NoError(t, c.Add(NumericProductID(2), "Fifth", price("0.20")))
	assert.True(t, price("0.3").Equal(c.Total()))
}

func TestCart_LinesReturnsCopy(t *testing.T) {
	c := newTestCart(t)
	lines := c.Lines()
	lines[0].Quantity = 50
	l, _ := c.Line(0)
	assert.Equal(t, 1, l.Quantity)
}

func TestNew(t *testing.T) {
	t.Run("valid lines", func(t *testing.T) {
		c, err := New(
			Line{ProductID: NumericProductID(1), Name: "A", UnitPrice: price("1"), Quantity: 2},
			Line{ProductID: NumericProductID(2), Name: "B", UnitPrice: price("2"), Quantity: 1},
		)
		require.NoError(t, err)
		assert.Equal(t, "4", c.Total().String())
	})

	tests := []struct {
		name  string
		lines []Line
	}{
		{"duplicate product", []Line{
			{ProductID: NumericProductID(1), UnitPrice: price("1"), Quantity: 1},
			{ProductID: NumericProductID(1), UnitPrice: price("1"), Quantity: 1},
		}},
		{"zero quantity", []Line{{ProductID: NumericProductID(1), UnitPrice: price("1"), Quantity: 0}}},
		{"negative price", []Line{{ProductID: NumericProductID(1), UnitPrice: price("-1"), Quantity: 1}}},
		{"empty id", []Line{{UnitPrice: price("1"), Quantity: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.lines...)
			assert.Error(t, err)
		})
	}
}
