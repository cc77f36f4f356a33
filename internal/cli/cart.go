package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the cart",
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add one unit of a product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireUser(); err != nil {
			return err
		}

		product, err := app.Catalog.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		app.Cart.Refresh(cmd.Context())
		if err := app.Cart.Add(cmd.Context(), *product); err != nil {
			return err
		}
		fmt.Printf("%s added to cart (quantity %d)\n", product.Name, app.Cart.Quantity(product.ID))
		return nil
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "rm <product-id>",
	Short: "Remove a product from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireUser(); err != nil {
			return err
		}

		app.Cart.Refresh(cmd.Context())
		app.Cart.Remove(cmd.Context(), args[0])
		fmt.Println("Removed from cart")
		return nil
	},
}

var cartQtyCmd = &cobra.Command{
	Use:   "qty <product-id> <quantity>",
	Short: "Set the quantity of a cart line (0 removes it)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireUser(); err != nil {
			return err
		}

		quantity, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("quantity must be a number: %w", err)
		}

		app.Cart.Refresh(cmd.Context())
		app.Cart.UpdateQuantity(cmd.Context(), args[0], quantity)
		fmt.Printf("Quantity set to %d\n", app.Cart.Quantity(args[0]))
		return nil
	},
}

var cartListCmd = &cobra.Command{
	Use:   "ls",
	Short: "Show the cart",
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
		lines := app.Cart.Lines()
		if len(lines) == 0 {
			fmt.Println("Cart is empty")
			return nil
		}
		for _, l := range lines {
			fmt.Printf("%-8s %-30s ₹%-10.2f x%d\n", l.ProductID, l.Name, l.Price, l.Quantity)
		}
		fmt.Printf("Items: %d  Total: ₹%.2f\n", app.Cart.TotalItems(), app.Cart.TotalPrice())
		return nil
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
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
		app.Cart.Clear(cmd.Context())
		fmt.Println("Cart cleared")
		return nil
	},
}

func init() {
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartQtyCmd)
	cartCmd.AddCommand(cartListCmd)
	cartCmd.AddCommand(cartClearCmd)
	rootCmd.AddCommand(cartCmd)
}
