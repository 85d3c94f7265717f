package main

import (
	"fmt"
	"strconv"

	"github.com/shoplite/storefront/internal/domain/cart"
	"github.com/shoplite/storefront/internal/domain/catalog"
	"github.com/spf13/cobra"
)

var (
	productSearch   string
	productCategory string
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse the catalog",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	Args:  cobra.NoArgs,
	RunE:  runProductsList,
}

var productsShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsShow,
}

func init() {
	productsListCmd.Flags().StringVar(&productSearch, "search", "", "search term")
	productsListCmd.Flags().StringVar(&productCategory, "category", "", "category")
	productsCmd.AddCommand(productsListCmd, productsShowCmd)
}

func runProductsList(cmd *cobra.Command, args []string) error {
	products, err := app.catalog.List(cmd.Context(), catalog.ProductFilter{
		Search:   productSearch,
		Category: productCategory,
	})
	if err != nil {
		return err
	}
	if len(products) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No products found.")
		return nil
	}

	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{p.ID.String(), p.Name, p.Category, money(p.Price), strconv.Itoa(p.StockQuantity)})
	}
	return renderTable(cmd.OutOrStdout(), []string{"ID", "NAME", "CATEGORY", "PRICE", "STOCK"}, rows)
}

func runProductsShow(cmd *cobra.Command, args []string) error {
	p, err := app.catalog.Get(cmd.Context(), cart.ParseProductID(args[0]))
	if err != nil {
		return err
	}

	fields := [][2]string{
		{"ID", p.ID.String()},
		{"Name", p.Name},
		{"Category", p.Category},
		{"Price", money(p.Price)},
		{"In stock", strconv.Itoa(p.StockQuantity)},
	}
	if p.Description != "" {
		fields = append(fields, [2]string{"Description", p.Description})
	}
	return renderFields(cmd.OutOrStdout(), fields)
}
