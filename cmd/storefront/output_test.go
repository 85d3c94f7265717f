package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shoplite/storefront/internal/domain/cart"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "$2.50", money(decimal.RequireFromString("2.5")))
	assert.Equal(t, "$0.00", money(decimal.Zero))
	assert.Equal(t, "$34.97", money(decimal.RequireFromString("34.970")))
}

func TestPrintCart(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printCart(&buf, cart.Cart{}))
		assert.Equal(t, "Your cart is empty.\n", buf.String())
	})

	t.Run("numbers lines from one and ends with the total", func(t *testing.T) {
		var c cart.Cart
		require.NoError(t, c.Add(cart.NumericProductID(1), "Widget", decimal.RequireFromString("2.50")))
		require.NoError(t, c.Add(cart.StringProductID("sku-2"), "Gadget", decimal.RequireFromString("9.99")))

		var buf bytes.Buffer
		require.NoError(t, printCart(&buf, c))
		out := buf.String()

		widget := lineContaining(out, "Widget")
		assert.Contains(t, widget, " 1 ")
		assert.Contains(t, widget, "$2.50")
		assert.Contains(t, lineContaining(out, "Gadget"), "sku-2")
		assert.Contains(t, lineContaining(out, "TOTAL"), "$12.49")
	})
}

func TestRenderFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderFields(&buf, [][2]string{{"Name", "Widget"}, {"In stock", "12"}}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Name:"))
	assert.True(t, strings.HasSuffix(lines[0], "Widget"))
	assert.Equal(t, strings.Index(lines[0], "Widget"), strings.Index(lines[1], "12"), "values are aligned")
}

func lineContaining(out, s string) string {
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, s) {
			return line
		}
	}
	return ""
}
