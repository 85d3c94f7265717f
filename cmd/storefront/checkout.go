package main

import (
	"fmt"
	"strconv"

	"github.com/shoplite/storefront/internal/domain/trade"
	"github.com/spf13/cobra"
)

var customer trade.Customer

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order for everything in the cart",
	Long: `Place an order for everything in the cart.

The cart is emptied once the order is accepted. If the order fails the cart
is left as it was and nothing is retried.`,
	Args: cobra.NoArgs,
	RunE: runCheckout,
}

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Look up placed orders",
}

var orderShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show an order confirmation",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrderShow,
}

func init() {
	f := checkoutCmd.Flags()
	f.StringVar(&customer.Name, "name", "", "your name (required)")
	f.StringVar(&customer.Email, "email", "", "email address")
	f.StringVar(&customer.Address, "address", "", "street address")
	f.StringVar(&customer.City, "city", "", "city")
	f.StringVar(&customer.State, "state", "", "state")
	f.StringVar(&customer.Zip, "zip", "", "zip code")

	orderCmd.AddCommand(orderShowCmd)
}

func runCheckout(cmd *cobra.Command, args []string) error {
	result, err := app.checkout.PlaceOrder(cmd.Context(), app.cart, customer)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Order #%d placed.\n", result.OrderID)
	if !result.CartCleared {
		fmt.Fprintln(out, "The cart could not be emptied; run \"storefront cart clear\".")
	}
	return nil
}

func runOrderShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return trade.ErrOrderNotFound
	}
	order, err := app.checkout.GetOrder(cmd.Context(), id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Order #%d for %s\n\n", order.OrderID, order.CustomerName)
	rows := make([][]string, 0, len(order.Items)+1)
	for _, it := range order.Items {
		rows = append(rows, []string{it.Name, strconv.Itoa(it.Quantity), money(it.UnitPrice), money(it.LineTotal)})
	}
	rows = append(rows, []string{"", "", "TOTAL", money(order.Total)})
	return renderTable(out, []string{"NAME", "QTY", "PRICE", "TOTAL"}, rows)
}
