package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shoplite/storefront/internal/domain/cart"
	"github.com/shopspring/decimal"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Bold(true).Width(13)
)

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// renderTable writes rows under headers as a bordered grid.
func renderTable(w io.Writer, headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// renderFields writes one "Label: value" pair per line with aligned values.
func renderFields(w io.Writer, fields [][2]string) error {
	var sb strings.Builder
	for _, f := range fields {
		sb.WriteString(labelStyle.Render(f[0] + ":"))
		sb.WriteString(f[1])
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// printCart renders the cart with 1-based line numbers, the numbers the
// set and rm commands take.
func printCart(w io.Writer, c cart.Cart) error {
	if c.IsEmpty() {
		_, err := fmt.Fprintln(w, "Your cart is empty.")
		return err
	}

	rows := make([][]string, 0, c.Len()+1)
	for i, line := range c.Lines() {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			line.ProductID.String(),
			line.Name,
			money(line.UnitPrice),
			strconv.Itoa(line.Quantity),
			money(line.Subtotal()),
		})
	}
	rows = append(rows, []string{"", "", "", "", "TOTAL", money(c.Total())})
	return renderTable(w, []string{"#", "PRODUCT", "NAME", "PRICE", "QTY", "SUBTOTAL"}, rows)
}
