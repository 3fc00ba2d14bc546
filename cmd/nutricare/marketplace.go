package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pribylovaa/nutricare-client/internal/models"
)

func cartCmd(a *app) *cobra.Command {
	list := &cobra.Command{
		Use:   "list",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := a.api.Marketplace.Cart(cmd.Context())
			return printResult(a, items, err)
		},
	}

	var addQty int
	add := &cobra.Command{
		Use:   "add <food-id>",
		Short: "Add a food to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := a.api.Marketplace.AddToCart(cmd.Context(), args[0], addQty)
			return printResult(a, item, err)
		},
	}
	add.Flags().IntVarP(&addQty, "quantity", "q", 1, "quantity")

	var updQty int
	update := &cobra.Command{
		Use:   "update <item-id>",
		Short: "Change the quantity of a cart item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := a.api.Marketplace.UpdateCartItem(cmd.Context(), args[0], updQty)
			return printResult(a, item, err)
		},
	}
	update.Flags().IntVarP(&updQty, "quantity", "q", 0, "new quantity")
	_ = update.MarkFlagRequired("quantity")

	remove := &cobra.Command{
		Use:     "remove <item-id>",
		Aliases: []string{"rm"},
		Short:   "Remove an item from the cart",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.api.Marketplace.RemoveCartItem(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintln(cmd.ErrOrStderr(), "removed")
			return nil
		},
	}

	return group("cart", "Shopping cart", list, add, update, remove)
}

func ordersCmd(a *app) *cobra.Command {
	list := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orders, err := a.api.Marketplace.Orders(cmd.Context())
			return printResult(a, orders, err)
		},
	}

	var in models.CreateOrderRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Place an order for the cart contents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			order, err := a.api.Marketplace.CreateOrder(cmd.Context(), in)
			return printResult(a, order, err)
		},
	}
	create.Flags().StringVar(&in.DeliveryAddress, "address", "", "delivery address")
	create.Flags().StringVar(&in.Notes, "notes", "", "notes for the courier")

	return group("orders", "Orders", list, create)
}
