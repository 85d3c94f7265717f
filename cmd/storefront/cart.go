package main

import (
	"fmt"
	"strconv"

	"github.com/shoplite/storefront/internal/domain/cart"
	"github.com/spf13/cobra"
)

var (
	addName  string
	addPrice string
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show and change your cart",
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cart and its total",
	Args:  cobra.NoArgs,
	RunE:  runCartShow,
}

var cartAddCmd = &cobra.Command{
	Use:   "add ID",
	Short: "Add one unit of a product",
	Long: `Add one unit of a product to the cart.

Without --price the product's name and price are looked up in the catalog.
With --price the line is added as given, which works offline.`,
	Args: cobra.ExactArgs(1),
	RunE: runCartAdd,
}

var cartSetCmd = &cobra.Command{
	Use:   "set LINE QTY",
	Short: "Set the quantity of a cart line",
	Long: `Set the quantity of the cart line numbered LINE in "cart show".

A quantity that is not a positive whole number is stored as 1.`,
	Args: cobra.ExactArgs(2),
	RunE: runCartSet,
}

var cartRmCmd = &cobra.Command{
	Use:     "rm LINE",
	Aliases: []string{"remove"},
	Short:   "Remove a cart line",
	Args:    cobra.ExactArgs(1),
	RunE:    runCartRm,
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	Args:  cobra.NoArgs,
	RunE:  runCartClear,
}

func init() {
	cartAddCmd.Flags().StringVar(&addName, "name", "", "product name (with --price)")
	cartAddCmd.Flags().StringVar(&addPrice, "price", "", "unit price; skips the catalog lookup")
	cartCmd.AddCommand(cartShowCmd, cartAddCmd, cartSetCmd, cartRmCmd, cartClearCmd)
}

func runCartShow(cmd *cobra.Command, args []string) error {
	c, err := app.cart.Load(cmd.Context())
	if err != nil {
		return err
	}
	return printCart(cmd.OutOrStdout(), c)
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	id := cart.ParseProductID(args[0])

	var (
		c   cart.Cart
		err error
	)
	if addPrice != "" {
		c, err = app.cart.AddRaw(cmd.Context(), id, addName, addPrice)
	} else {
		c, err = app.catalog.AddToCart(cmd.Context(), app.cart, id)
	}
	if err != nil {
		return err
	}
	return printCart(cmd.OutOrStdout(), c)
}

func runCartSet(cmd *cobra.Command, args []string) error {
	index, err := lineIndex(args[0])
	if err != nil {
		return err
	}
	c, err := app.cart.SetQuantity(cmd.Context(), index, args[1])
	if err != nil {
		return err
	}
	return printCart(cmd.OutOrStdout(), c)
}

func runCartRm(cmd *cobra.Command, args []string) error {
	index, err := lineIndex(args[0])
	if err != nil {
		return err
	}
	c, err := app.cart.Remove(cmd.Context(), index)
	if err != nil {
		return err
	}
	return printCart(cmd.OutOrStdout(), c)
}

func runCartClear(cmd *cobra.Command, args []string) error {
	if err := app.cart.Clear(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Cart cleared.")
	return nil
}

// lineIndex converts a 1-based line number to a cart index
func lineIndex(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("line must be a number, got %q", raw)
	}
	return n - 1, nil
}
