package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	productsSearch   string
	productsCategory string
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the product catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		products, err := app.Catalog.Search(cmd.Context(), productsSearch, productsCategory)
		if err != nil {
			return err
		}

		if len(products) == 0 {
			fmt.Println("No products found")
			return nil
		}
		for _, p := range products {
			fmt.Printf("%-8s %-30s ₹%-10.2f %s\n", p.ID, p.Name, p.Price, p.Category)
		}
		return nil
	},
}

func init() {
	productsCmd.Flags().StringVarP(&productsSearch, "search", "s", "", "filter by name or description")
	productsCmd.Flags().StringVarP(&productsCategory, "category", "c", "all", "filter by category")
	rootCmd.AddCommand(productsCmd)
}
