package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var wishlistCmd = &cobra.Command{
	Use:   "wishlist",
	Short: "Manage the wishlist",
}

var wishlistAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product to the wishlist",
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

		app.Wishlist.Refresh(cmd.Context())
		added, err := app.Wishlist.Add(cmd.Context(), *product)
		if err != nil {
			return err
		}
		if !added {
			fmt.Printf("%s is already on the wishlist\n", product.Name)
			return nil
		}
		fmt.Printf("%s added to wishlist\n", product.Name)
		return nil
	},
}

var wishlistRemoveCmd = &cobra.Command{
	Use:   "rm <product-id>",
	Short: "Remove a product from the wishlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireUser(); err != nil {
			return err
		}

		app.Wishlist.Refresh(cmd.Context())
		app.Wishlist.Remove(cmd.Context(), args[0])
		fmt.Println("Removed from wishlist")
		return nil
	},
}

var wishlistListCmd = &cobra.Command{
	Use:   "ls",
	Short: "Show the wishlist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireUser(); err != nil {
			return err
		}

		app.Wishlist.Refresh(cmd.Context())
		entries := app.Wishlist.Entries()
		if len(entries) == 0 {
			fmt.Println("Wishlist is empty")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%-8s %-30s ₹%.2f\n", e.ProductID, e.Name, e.Price)
		}
		fmt.Printf("%d item(s)\n", app.Wishlist.Count())
		return nil
	},
}

func init() {
	wishlistCmd.AddCommand(wishlistAddCmd)
	wishlistCmd.AddCommand(wishlistRemoveCmd)
	wishlistCmd.AddCommand(wishlistListCmd)
	rootCmd.AddCommand(wishlistCmd)
}
