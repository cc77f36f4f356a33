package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/storefront/internal/cart"
)

var checkoutInfo cart.CheckoutInfo

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order for the current cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireUser(); err != nil {
			return err
		}

		app.Cart.Refresh(cmd.Context())
		if app.Cart.TotalItems() == 0 {
			return fmt.Errorf("cart is empty")
		}

		order, err := app.Cart.CreateOrder(cmd.Context(), checkoutInfo)
		if err != nil {
			return err
		}
		app.Cart.Clear(cmd.Context())

		fmt.Printf("Order %s placed: %d item(s), total ₹%.2f\n",
			order.OrderID, len(order.Items), order.Total)
		return nil
	},
}

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Show order history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireUser(); err != nil {
			return err
		}

		orders, err := app.Cart.Orders(cmd.Context())
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			fmt.Println("No orders yet")
			return nil
		}
		for _, o := range orders {
			fmt.Printf("%-10s %s  %d item(s)  ₹%-10.2f %s\n",
				o.OrderID, o.OrderDate, len(o.Items), o.Total, o.Status)
		}
		return nil
	},
}

func init() {
	checkoutCmd.Flags().StringVar(&checkoutInfo.FullName, "name", "", "full name for delivery")
	checkoutCmd.Flags().StringVar(&checkoutInfo.Phone, "phone", "", "contact phone")
	checkoutCmd.Flags().StringVar(&checkoutInfo.Address, "address", "", "shipping address")
	checkoutCmd.Flags().StringVar(&checkoutInfo.State, "state", "", "shipping state")
	checkoutCmd.Flags().StringVar(&checkoutInfo.Pincode, "pincode", "", "shipping pincode")
	checkoutCmd.Flags().StringVar(&checkoutInfo.CardNumber, "card", "", "card number")
	checkoutCmd.Flags().StringVar(&checkoutInfo.CardName, "card-name", "", "name on card")
	checkoutCmd.MarkFlagRequired("name")
	checkoutCmd.MarkFlagRequired("address")
	checkoutCmd.MarkFlagRequired("card")

	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(ordersCmd)
}
