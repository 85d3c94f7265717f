package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var reportDays int

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Sales reports",
}

var topProductsCmd = &cobra.Command{
	Use:   "top-products",
	Short: "Best selling products by revenue",
	Args:  cobra.NoArgs,
	RunE:  runTopProducts,
}

var dailySalesCmd = &cobra.Command{
	Use:   "daily-sales",
	Short: "Revenue per day with a 7-day moving average",
	Args:  cobra.NoArgs,
	RunE:  runDailySales,
}

var lowStockCmd = &cobra.Command{
	Use:   "low-stock",
	Short: "Products at or below their reorder level",
	Args:  cobra.NoArgs,
	RunE:  runLowStock,
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Data repair jobs on the storefront API",
}

var recomputeTotalsCmd = &cobra.Command{
	Use:   "recompute-totals",
	Short: "Recompute every order total from its items",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := app.tools.RecomputeOrderTotals(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

var refreshSummaryCmd = &cobra.Command{
	Use:   "refresh-summary",
	Short: "Rebuild the 90-day sales summary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := app.tools.RefreshSalesSummary(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

func init() {
	topProductsCmd.Flags().IntVar(&reportDays, "days", 0, "window in days (default 30)")
	dailySalesCmd.Flags().IntVar(&reportDays, "days", 0, "window in days (default 90)")

	reportsCmd.AddCommand(topProductsCmd, dailySalesCmd, lowStockCmd)
	toolsCmd.AddCommand(recomputeTotalsCmd, refreshSummaryCmd)
}

func runTopProducts(cmd *cobra.Command, args []string) error {
	rows, err := app.reports.TopProducts(cmd.Context(), reportDays)
	if err != nil {
		return err
	}

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{strconv.FormatInt(r.ProductID, 10), r.Name, money(r.Revenue)})
	}
	return renderTable(cmd.OutOrStdout(), []string{"ID", "NAME", "REVENUE"}, data)
}

func runDailySales(cmd *cobra.Command, args []string) error {
	sales, err := app.reports.DailySales(cmd.Context(), reportDays)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(sales.Dates))
	for i, date := range sales.Dates {
		rows = append(rows, []string{date, money(sales.Revenues[i]), money(sales.MovingAvg[i])})
	}
	return renderTable(cmd.OutOrStdout(), []string{"DATE", "REVENUE", "7-DAY AVG"}, rows)
}

func runLowStock(cmd *cobra.Command, args []string) error {
	products, err := app.reports.LowStock(cmd.Context())
	if err != nil {
		return err
	}
	if len(products) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No products are low on stock.")
		return nil
	}

	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{p.ID.String(), p.Name, strconv.Itoa(p.StockQuantity), strconv.Itoa(p.ReorderLevel)})
	}
	return renderTable(cmd.OutOrStdout(), []string{"ID", "NAME", "STOCK", "REORDER AT"}, rows)
}
